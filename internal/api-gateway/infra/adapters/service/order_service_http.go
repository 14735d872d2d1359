package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/footballstore-orders/internal/api-gateway/core/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

var _ ports.OrderService = (*HTTPOrderClient)(nil)

// HTTPOrderClient forwards order calls to the orders service.
type HTTPOrderClient struct {
	remote *remote.Client
}

func NewHTTPOrderClient(c *remote.Client) *HTTPOrderClient {
	return &HTTPOrderClient{remote: c}
}

func (c *HTTPOrderClient) ListOrders(ctx context.Context, customerID string) ([]entity.Order, error) {
	orders := []entity.Order{}
	if err := c.remote.Get(ctx, ordersPath(customerID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPOrderClient) GetOrder(ctx context.Context, customerID, orderID string) (*entity.Order, error) {
	var o entity.Order
	if err := c.remote.Get(ctx, orderPath(customerID, orderID), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPOrderClient) CreateOrder(ctx context.Context, customerID string, req entity.OrderRequest) (*entity.Order, error) {
	var o entity.Order
	if err := c.remote.Do(ctx, http.MethodPost, ordersPath(customerID), nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPOrderClient) UpdateOrder(ctx context.Context, customerID, orderID string, req entity.OrderRequest) (*entity.Order, error) {
	var o entity.Order
	if err := c.remote.Do(ctx, http.MethodPut, orderPath(customerID, orderID), nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *HTTPOrderClient) CancelOrder(ctx context.Context, customerID, orderID string) error {
	return c.remote.Do(ctx, http.MethodDelete, orderPath(customerID, orderID), nil, nil, nil)
}

func ordersPath(customerID string) string {
	return "/api/v1/customers/" + url.PathEscape(customerID) + "/orders"
}

func orderPath(customerID, orderID string) string {
	return ordersPath(customerID) + "/" + url.PathEscape(orderID)
}
