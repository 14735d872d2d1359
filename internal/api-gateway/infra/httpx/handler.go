package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/core/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/interceptors"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

// maxBodyBytes caps a forwarded order request body.
const maxBodyBytes = 1 << 20

// Handler exposes the customer order routes and forwards them to the
// orders service.
type Handler struct {
	orderService ports.OrderService
}

func NewHandler(os ports.OrderService) *Handler {
	return &Handler{orderService: os}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		h.relayError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "customerId"), chi.URLParam(r, "orderId"))
	if err != nil {
		h.relayError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	customerID := chi.URLParam(r, "customerId")
	slog.InfoContext(r.Context(), "forwarding order creation",
		"request_id", interceptors.RequestID(r.Context()),
		"customer_id", customerID,
	)

	order, err := h.orderService.CreateOrder(r.Context(), customerID, req)
	if err != nil {
		h.relayError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.UpdateOrder(r.Context(), chi.URLParam(r, "customerId"), chi.URLParam(r, "orderId"), req)
	if err != nil {
		h.relayError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.CancelOrder(r.Context(), chi.URLParam(r, "customerId"), chi.URLParam(r, "orderId")); err != nil {
		h.relayError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// relayError answers with the orders service's own status and envelope.
// Classified errors are re-encoded, unexpected statuses are copied through
// verbatim and transport failures become 502.
func (h *Handler) relayError(w http.ResponseWriter, r *http.Request, err error) {
	if se, ok := remote.AsStatusError(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(se.StatusCode)
		_, _ = w.Write(se.Body)
		return
	}

	code := apperr.Code(err)
	if code == "internal_error" {
		slog.ErrorContext(r.Context(), "orders service unreachable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "order_service_error", err.Error())
		return
	}
	writeError(w, apperr.HTTPStatus(err), code, err.Error())
}

func decodeOrderRequest(w http.ResponseWriter, r *http.Request) (entity.OrderRequest, bool) {
	var req entity.OrderRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_input",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return req, false
		}
		writeError(w, http.StatusUnprocessableEntity, "invalid_input", "malformed request body: "+err.Error())
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
