package ports

import (
	"context"

	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/core/domain/entity"
)

// OrderService is the orders backend as seen from the gateway. The caller's
// request id and idempotency key travel in ctx.
type OrderService interface {
	ListOrders(ctx context.Context, customerID string) ([]entity.Order, error)
	GetOrder(ctx context.Context, customerID, orderID string) (*entity.Order, error)
	CreateOrder(ctx context.Context, customerID string, req entity.OrderRequest) (*entity.Order, error)
	UpdateOrder(ctx context.Context, customerID, orderID string, req entity.OrderRequest) (*entity.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID string) error
}
