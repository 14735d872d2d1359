// Package ports declares what the order orchestrator needs from the outside
// world. Adapters live under internal/order-service/adapters.
package ports

import (
	"context"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
)

// Inventory is the remote apparel stock. It performs no locking: callers
// own the check-then-act sequence and accept the race between requests.
type Inventory interface {
	GetStock(ctx context.Context, apparelID string) (int, error)
	DecreaseStock(ctx context.Context, apparelID string, quantity int) error
	IncreaseStock(ctx context.Context, apparelID string, quantity int) error
}

type CustomerDirectory interface {
	GetCustomer(ctx context.Context, customerID string) (domain.CustomerSnapshot, error)
}

type WarehouseDirectory interface {
	GetWarehouse(ctx context.Context, warehouseID string) (domain.WarehouseSnapshot, error)
}

type Catalog interface {
	GetApparel(ctx context.Context, apparelID string) (domain.ApparelSnapshot, error)
}

// OrderStore persists order aggregates. Save is an upsert keyed by order id;
// there is no version check, the last write wins.
type OrderStore interface {
	Save(ctx context.Context, order *domain.Order) error
	// Get returns an apperr.ErrNotFound error when no order matches the pair.
	Get(ctx context.Context, customerID, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
}
