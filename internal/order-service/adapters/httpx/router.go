package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/footballstore-orders/internal/pkg/interceptors"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(interceptors.RequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1/customers/{customerId}/orders", func(r chi.Router) {
		r.Get("/", handler.ListOrders)
		r.Post("/", handler.CreateOrder)
		r.Get("/{orderId}", handler.GetOrder)
		r.Put("/{orderId}", handler.UpdateOrder)
		r.Delete("/{orderId}", handler.CancelOrder)
	})
	return r
}
