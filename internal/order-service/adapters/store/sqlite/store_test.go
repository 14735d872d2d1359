package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleOrder(id, customerID string) *domain.Order {
	return &domain.Order{
		ID:          id,
		CustomerID:  customerID,
		WarehouseID: "w-1",
		Items: []domain.OrderItem{{
			ID:        "i-" + id,
			Apparel:   domain.ApparelSnapshot{ApparelID: "A", ItemName: "Scarf"},
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("12.50"),
			Discount:  decimal.RequireFromString("2.50"),
			LineTotal: decimal.RequireFromString("35.00"),
		}},
		TotalPrice:    domain.Money{Amount: decimal.RequireFromString("35.00"), Currency: "EUR"},
		Status:        domain.StatusCreated,
		PaymentStatus: domain.PaymentPending,
		OrderDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleOrder("o-1", "c-1")))

	got, err := s.Get(ctx, "c-1", "o-1")
	require.NoError(t, err)
	assert.Equal(t, "w-1", got.WarehouseID)
	assert.Equal(t, "Scarf", got.Items[0].Apparel.ItemName)
	assert.True(t, got.TotalPrice.Amount.Equal(decimal.RequireFromString("35")))
	assert.True(t, got.OrderDate.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGetWrongCustomerIsNotFound(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleOrder("o-1", "c-1")))

	_, err := s.Get(ctx, "c-2", "o-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpsertKeepsListPosition(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, sampleOrder("o-1", "c-1")))
	require.NoError(t, s.Save(ctx, sampleOrder("o-2", "c-1")))

	changed := sampleOrder("o-1", "c-1")
	changed.Status = domain.StatusCancelled
	require.NoError(t, s.Save(ctx, changed))

	list, err := s.ListByCustomer(ctx, "c-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "o-1", list[0].ID)
	assert.Equal(t, domain.StatusCancelled, list[0].Status)
	assert.Equal(t, "o-2", list[1].ID)
}

func TestListUnknownCustomer(t *testing.T) {
	list, err := openStore(t).ListByCustomer(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
