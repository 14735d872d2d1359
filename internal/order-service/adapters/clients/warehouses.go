package clients

import (
	"context"
	"net/url"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

var _ ports.WarehouseDirectory = (*WarehouseClient)(nil)

type WarehouseClient struct {
	remote *remote.Client
}

func NewWarehouseClient(c *remote.Client) *WarehouseClient {
	return &WarehouseClient{remote: c}
}

// The warehouses service uses the same field names as the snapshot.
func (c *WarehouseClient) GetWarehouse(ctx context.Context, warehouseID string) (domain.WarehouseSnapshot, error) {
	var w domain.WarehouseSnapshot
	if err := c.remote.Get(ctx, "/api/v1/warehouses/"+url.PathEscape(warehouseID), &w); err != nil {
		return domain.WarehouseSnapshot{}, err
	}
	return w, nil
}
