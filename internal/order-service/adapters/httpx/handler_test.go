package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/httpx/dto"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

const (
	customerID = "6f1c2a7e-3b0d-4f5e-9a8b-1c2d3e4f5a6b"
	orderID    = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

type stubOrders struct {
	order   *domain.Order
	orders  []*domain.Order
	err     error
	lastKey string
	lastReq domain.OrderRequest
}

func (s *stubOrders) CreateOrder(_ context.Context, _, key string, req domain.OrderRequest) (*domain.Order, error) {
	s.lastKey, s.lastReq = key, req
	return s.order, s.err
}

func (s *stubOrders) UpdateOrder(_ context.Context, _, _ string, req domain.OrderRequest) (*domain.Order, error) {
	s.lastReq = req
	return s.order, s.err
}

func (s *stubOrders) CancelOrder(context.Context, string, string) error { return s.err }

func (s *stubOrders) GetOrder(context.Context, string, string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrders) ListOrders(context.Context, string) ([]*domain.Order, error) {
	return s.orders, s.err
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		ID:         orderID,
		CustomerID: customerID,
		Items: []domain.OrderItem{{
			ID:        "i-1",
			Apparel:   domain.ApparelSnapshot{ApparelID: "A"},
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("10"),
			LineTotal: decimal.RequireFromString("20"),
		}},
		TotalPrice: domain.Money{Amount: decimal.RequireFromString("20"), Currency: "USD"},
		Status:     domain.StatusCreated,
		OrderDate:  time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC),
	}
}

func serve(t *testing.T, svc OrderService, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	NewRouter(NewHandler(svc)).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const ordersPath = "/api/v1/customers/" + customerID + "/orders"

func TestCreateOrder(t *testing.T) {
	svc := &stubOrders{order: sampleOrder()}
	body := `{"warehouseId":"w-1","items":[{"apparelId":"A","quantity":2,"unitPrice":10.00,"discount":0,"currency":"USD"}]}`

	rec := serve(t, svc, http.MethodPost, ordersPath, body, map[string]string{"X-Idempotency-Key": "k-1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "k-1", svc.lastKey)
	assert.Equal(t, "w-1", svc.lastReq.WarehouseID)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var got dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, orderID, got.OrderID)
	assert.Equal(t, "20.00", got.TotalAmount.String())
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "CREATED", got.OrderStatus)
}

func TestGetListUpdateCancel(t *testing.T) {
	svc := &stubOrders{order: sampleOrder(), orders: []*domain.Order{sampleOrder()}}

	rec := serve(t, svc, http.MethodGet, ordersPath+"/"+orderID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, svc, http.MethodGet, ordersPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = serve(t, svc, http.MethodPut, ordersPath+"/"+orderID,
		`{"items":[{"apparelId":"A","quantity":1,"unitPrice":1,"currency":"USD"}],"paymentStatus":"CAPTURED"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaymentCaptured, svc.lastReq.PaymentStatus)

	rec = serve(t, svc, http.MethodDelete, ordersPath+"/"+orderID, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestListEmptyIsArray(t *testing.T) {
	rec := serve(t, &stubOrders{orders: []*domain.Order{}}, http.MethodGet, ordersPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMalformedIDs(t *testing.T) {
	svc := &stubOrders{order: sampleOrder()}

	rec := serve(t, svc, http.MethodGet, "/api/v1/customers/not-a-uuid/orders", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_input", decodeError(t, rec).Error)

	rec = serve(t, svc, http.MethodDelete, ordersPath+"/123", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "orderId")
}

func TestMalformedBody(t *testing.T) {
	rec := serve(t, &stubOrders{}, http.MethodPost, ordersPath, `{"items":`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_input", decodeError(t, rec).Error)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	svc := &stubOrders{order: sampleOrder()}
	body := `{"warehouseId":"` + strings.Repeat("w", maxBodyBytes) + `","items":[]}`

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		path := ordersPath
		if method == http.MethodPut {
			path += "/" + orderID
		}
		rec := serve(t, svc, method, path, body, nil)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code, method)
		assert.Equal(t, "invalid_input", decodeError(t, rec).Error, method)
	}
	assert.Empty(t, svc.lastReq.WarehouseID)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"not found", apperr.NotFound("Order not found: x"), http.StatusNotFound, "not_found", "Order not found: x"},
		{"invalid", apperr.InvalidInput("at least one item is required"), http.StatusUnprocessableEntity, "invalid_input", "at least one item is required"},
		{"stock", apperr.StockExceeded("A", 10, 5), http.StatusUnprocessableEntity, "stock_exceeded", "not enough stock for A: requested 10, available 5"},
		{"conflict", apperr.OrderStateConflict("Order x is COMPLETED"), http.StatusConflict, "order_state_conflict", "Order x is COMPLETED"},
		{"upstream", &remote.StatusError{Method: "GET", URL: "http://apparels/x", StatusCode: 503}, http.StatusBadGateway, "upstream_error", ""},
		{"internal", errors.New("disk full"), http.StatusInternalServerError, "internal_error", "internal error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &stubOrders{err: tc.err}, http.MethodGet, ordersPath+"/"+orderID, "", nil)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tc.code, body.Error)
			if tc.msg != "" {
				assert.Equal(t, tc.msg, body.Message)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	rec := serve(t, &stubOrders{}, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
