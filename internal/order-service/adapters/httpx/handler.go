// Package httpx exposes the order orchestrator over HTTP.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/httpx/dto"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/httpx/mappers"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/interceptors"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

// OrderService is what the handler needs from the orchestrator.
type OrderService interface {
	CreateOrder(ctx context.Context, customerID, idempotencyKey string, req domain.OrderRequest) (*domain.Order, error)
	UpdateOrder(ctx context.Context, customerID, orderID string, req domain.OrderRequest) (*domain.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID string) error
	GetOrder(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error)
}

// maxBodyBytes caps an order request body.
const maxBodyBytes = 1 << 20

type Handler struct {
	orders OrderService
}

func NewHandler(orders OrderService) *Handler {
	return &Handler{orders: orders}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "customerId")
	if !ok {
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), customerID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.OrdersToResponse(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	customerID, orderID, ok := orderPath(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), customerID, orderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.OrderToResponse(order))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := pathID(w, r, "customerId")
	if !ok {
		return
	}
	req, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	slog.InfoContext(r.Context(), "creating order",
		"request_id", interceptors.RequestID(r.Context()),
		"customer_id", customerID,
	)

	order, err := h.orders.CreateOrder(r.Context(), customerID, interceptors.IdempotencyKey(r.Context()), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mappers.OrderToResponse(order))
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	customerID, orderID, ok := orderPath(w, r)
	if !ok {
		return
	}
	req, ok := decodeOrderRequest(w, r)
	if !ok {
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), customerID, orderID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mappers.OrderToResponse(order))
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	customerID, orderID, ok := orderPath(w, r)
	if !ok {
		return
	}

	if err := h.orders.CancelOrder(r.Context(), customerID, orderID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail writes the error envelope for err. Unclassified collaborator
// answers become 502, unknown failures 500 with a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if se, ok := remote.AsStatusError(err); ok {
		slog.ErrorContext(r.Context(), "collaborator returned unexpected status",
			"url", se.URL, "status", se.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}

	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, apperr.Code(err), "internal error")
		return
	}
	writeError(w, status, apperr.Code(err), err.Error())
}

func orderPath(w http.ResponseWriter, r *http.Request) (customerID, orderID string, ok bool) {
	if customerID, ok = pathID(w, r, "customerId"); !ok {
		return "", "", false
	}
	if orderID, ok = pathID(w, r, "orderId"); !ok {
		return "", "", false
	}
	return customerID, orderID, true
}

// pathID reads a UUID path parameter, answering 422 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil || len(raw) != 36 {
		writeError(w, http.StatusUnprocessableEntity, apperr.Code(apperr.ErrInvalidInput), "Invalid "+name+": "+raw)
		return "", false
	}
	return raw, true
}

func decodeOrderRequest(w http.ResponseWriter, r *http.Request) (domain.OrderRequest, bool) {
	var body dto.OrderRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, apperr.Code(apperr.ErrInvalidInput),
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return domain.OrderRequest{}, false
		}
		writeError(w, http.StatusUnprocessableEntity, apperr.Code(apperr.ErrInvalidInput), "malformed request body: "+err.Error())
		return domain.OrderRequest{}, false
	}
	return mappers.OrderRequestFromDTO(body), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
