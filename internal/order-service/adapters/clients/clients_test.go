package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

func newRemote(t *testing.T, mux *http.ServeMux) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return remote.New(srv.URL, srv.Client())
}

func TestCustomerClientMapsFlatAddress(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/customers/c-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"customerId":"c-1","firstName":"Ada","lastName":"Lovelace","email":"ada@example.com",
			"phone":"555","street":"1 Main St","city":"London","state":"LDN","country":"UK",
			"postalCode":"N1","registrationDate":"2024-01-02","preferredContact":"EMAIL"
		}`))
	})

	got, err := NewCustomerClient(newRemote(t, mux)).GetCustomer(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "1 Main St", got.Address.Street)
	assert.Equal(t, "N1", got.Address.PostalCode)
	assert.Equal(t, "EMAIL", got.PreferredContact)
}

func TestCustomerClientNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Customer not found"}`))
	})

	_, err := NewCustomerClient(newRemote(t, mux)).GetCustomer(context.Background(), "c-9")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "not_found", apperr.Code(err))
}

func TestWarehouseClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/warehouses/w-1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"warehouseId":"w-1","locationName":"North","address":"2 Dock Rd","capacity":500}`))
	})

	got, err := NewWarehouseClient(newRemote(t, mux)).GetWarehouse(context.Background(), "w-1")
	require.NoError(t, err)
	assert.Equal(t, "North", got.LocationName)
	assert.Equal(t, 500, got.Capacity)
}

func TestApparelClientCatalogAndStock(t *testing.T) {
	var adjustments []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/apparels/A", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apparelId":"A","itemName":"Home Jersey","brand":"Umbro","price":49.99,"cost":20,"stock":7,"apparelType":"JERSEY","sizeOption":"M"}`))
	})
	mux.HandleFunc("GET /api/v1/apparels/A/stock", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`7`))
	})
	mux.HandleFunc("PATCH /api/v1/apparels/A/stock/{direction}", func(w http.ResponseWriter, r *http.Request) {
		adjustments = append(adjustments, r.PathValue("direction")+":"+r.URL.Query().Get("quantity"))
		w.WriteHeader(http.StatusOK)
	})

	c := NewApparelClient(newRemote(t, mux))
	ctx := context.Background()

	snap, err := c.GetApparel(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "Home Jersey", snap.ItemName)
	assert.True(t, snap.Price.Equal(decimal.RequireFromString("49.99")))

	stock, err := c.GetStock(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	require.NoError(t, c.DecreaseStock(ctx, "A", 2))
	require.NoError(t, c.IncreaseStock(ctx, "A", 1))
	assert.Equal(t, []string{"decrease:2", "increase:1"}, adjustments)
}

func TestApparelClientRejectedDecrease(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/v1/apparels/A/stock/decrease", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"Insufficient stock"}`))
	})

	err := NewApparelClient(newRemote(t, mux)).DecreaseStock(context.Background(), "A", 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
