package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

var (
	_ ports.Catalog   = (*ApparelClient)(nil)
	_ ports.Inventory = (*ApparelClient)(nil)
)

type apparelDTO struct {
	ApparelID   string          `json:"apparelId"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	ApparelType string          `json:"apparelType"`
	SizeOption  string          `json:"sizeOption"`
}

// ApparelClient talks to the apparels service, which owns both the catalog
// and the stock counters.
type ApparelClient struct {
	remote *remote.Client
}

func NewApparelClient(c *remote.Client) *ApparelClient {
	return &ApparelClient{remote: c}
}

func (c *ApparelClient) GetApparel(ctx context.Context, apparelID string) (domain.ApparelSnapshot, error) {
	var dto apparelDTO
	if err := c.remote.Get(ctx, apparelPath(apparelID), &dto); err != nil {
		return domain.ApparelSnapshot{}, err
	}
	return domain.ApparelSnapshot{
		ApparelID:   dto.ApparelID,
		ItemName:    dto.ItemName,
		Description: dto.Description,
		Brand:       dto.Brand,
		Price:       dto.Price,
		Cost:        dto.Cost,
		ApparelType: dto.ApparelType,
		SizeOption:  dto.SizeOption,
	}, nil
}

func (c *ApparelClient) GetStock(ctx context.Context, apparelID string) (int, error) {
	var stock int
	if err := c.remote.Get(ctx, apparelPath(apparelID)+"/stock", &stock); err != nil {
		return 0, err
	}
	return stock, nil
}

func (c *ApparelClient) DecreaseStock(ctx context.Context, apparelID string, quantity int) error {
	return c.adjust(ctx, apparelID, "decrease", quantity)
}

func (c *ApparelClient) IncreaseStock(ctx context.Context, apparelID string, quantity int) error {
	return c.adjust(ctx, apparelID, "increase", quantity)
}

func (c *ApparelClient) adjust(ctx context.Context, apparelID, direction string, quantity int) error {
	query := url.Values{"quantity": {strconv.Itoa(quantity)}}
	path := apparelPath(apparelID) + "/stock/" + direction
	return c.remote.Do(ctx, http.MethodPatch, path, query, nil, nil)
}

func apparelPath(apparelID string) string {
	return "/api/v1/apparels/" + url.PathEscape(apparelID)
}
