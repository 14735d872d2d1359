package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/infra/httpx"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/telemetry"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "api-gateway")
	telemetry.InitLogger(serviceName, getEnv("LOG_LEVEL", "info"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
		ServiceName: serviceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment: getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
		Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
	})
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	timeout, err := time.ParseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "10s"))
	if err != nil {
		slog.Error("invalid HTTP_CLIENT_TIMEOUT", "error", err)
		os.Exit(1)
	}

	ordersURL := getEnv("ORDERS_SERVICE_URL", "http://localhost:8082")
	orderService := service.NewHTTPOrderClient(remote.New(ordersURL, remote.NewHTTPClient(timeout)))

	router := httpx.NewRouter(httpx.NewHandler(orderService))
	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           otelhttp.NewHandler(router, "api-gateway"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("API Gateway running", "addr", srv.Addr, "orders_service", ordersURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
