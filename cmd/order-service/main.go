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

	"github.com/jcmexdev/footballstore-orders/internal/coordinator/sagalog/sqlite"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/clients"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/httpx"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/store/memory"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/store/postgres"
	sqlitestore "github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/store/sqlite"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/app"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/config"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/cache"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.ServiceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("order service stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	shutdownTracer, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OtelEndpoint,
		Environment: cfg.Environment,
		Enabled:     cfg.OtelEnabled,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	httpClient := remote.NewHTTPClient(cfg.ClientTimeout)
	apparels := clients.NewApparelClient(remote.New(cfg.ApparelsURL, httpClient))
	deps := app.Deps{
		Store:      store,
		Inventory:  apparels,
		Catalog:    apparels,
		Customers:  clients.NewCustomerClient(remote.New(cfg.CustomersURL, httpClient)),
		Warehouses: clients.NewWarehouseClient(remote.New(cfg.WarehousesURL, httpClient)),
	}

	var opts []app.Option
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, "order")
		defer redisCache.Close()
		opts = append(opts, app.WithIdempotencyCache(redisCache, cfg.IdempotencyTTL))
	}
	if cfg.SagaLogPath != "" {
		sagaLog, err := sqlite.Open(cfg.SagaLogPath)
		if err != nil {
			return err
		}
		defer sagaLog.Close()
		opts = append(opts, app.WithSagaLog(sagaLog))
	}

	orders := app.NewOrderService(deps, opts...)
	router := httpx.NewRouter(httpx.NewHandler(orders))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, "order-service"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("order service HTTP running", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down order service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (ports.OrderStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		s, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.StorePostgres:
		s, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}
