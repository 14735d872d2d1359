package mappers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/httpx/dto"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
)

func TestOrderToResponseFlattensSnapshots(t *testing.T) {
	o := &domain.Order{
		ID:         "o-1",
		CustomerID: "c-1",
		Customer: domain.CustomerSnapshot{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
			Address: domain.Address{Street: "1 Main St", City: "London", PostalCode: "N1"},
		},
		WarehouseID: "w-1",
		Warehouse:   domain.WarehouseSnapshot{LocationName: "North", Address: "2 Dock Rd", Capacity: 500},
		Items: []domain.OrderItem{{
			ID:        "i-1",
			Apparel:   domain.ApparelSnapshot{ApparelID: "A", ItemName: "Jersey", Brand: "Umbro", Cost: decimal.RequireFromString("4")},
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("10"),
			Discount:  decimal.Zero,
			LineTotal: decimal.RequireFromString("20"),
		}},
		TotalPrice:    domain.Money{Amount: decimal.RequireFromString("20"), Currency: "USD"},
		Status:        domain.StatusCreated,
		PaymentStatus: domain.PaymentPending,
		OrderDate:     time.Date(2026, 5, 17, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 5, 17, 14, 30, 0, 0, time.UTC),
	}

	raw, err := json.Marshal(OrderToResponse(o))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Ada", got["firstName"])
	assert.Equal(t, "London", got["city"])
	assert.Equal(t, "2 Dock Rd", got["warehouseAddress"])
	assert.Equal(t, "USD", got["currency"])
	assert.Equal(t, "2026-05-17", got["orderDate"])
	assert.Contains(t, string(raw), `"totalAmount":20.00`)
	assert.Contains(t, string(raw), `"lineTotal":20.00`)

	items := got["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Jersey", items[0].(map[string]any)["itemName"])
}

func TestOrderRequestFromDTO(t *testing.T) {
	var req dto.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"warehouseId":"w-1",
		"items":[{"apparelId":"A","quantity":2,"unitPrice":10.5,"discount":"1","currency":"USD"}],
		"orderStatus":"PROCESSING"
	}`), &req))

	got := OrderRequestFromDTO(req)
	assert.Equal(t, "w-1", got.WarehouseID)
	assert.Equal(t, domain.StatusProcessing, got.OrderStatus)
	assert.Empty(t, got.PaymentStatus)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, got.Items[0].Discount.Equal(decimal.NewFromInt(1)))
}
