package domain

import (
	"github.com/shopspring/decimal"

	"github.com/jcmexdev/footballstore-orders/internal/pkg/apperr"
)

// MaxQuantity bounds both a single line and the merged quantity of one
// apparel across all lines of a request.
const MaxQuantity = 1_000_000

// OrderRequest is the caller's desired order content for create and update.
// Empty statuses mean "not supplied".
type OrderRequest struct {
	WarehouseID   string
	Items         []ItemRequest
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
}

type ItemRequest struct {
	ApparelID string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	Currency  string
}

// Validate checks the request shape. requireWarehouse is true for creates.
func (r OrderRequest) Validate(requireWarehouse bool) error {
	if requireWarehouse && r.WarehouseID == "" {
		return apperr.InvalidInput("warehouseId is required")
	}
	if len(r.Items) == 0 {
		return apperr.InvalidInput("at least one item is required")
	}
	merged := make(map[string]int, len(r.Items))
	for i, it := range r.Items {
		switch {
		case it.ApparelID == "":
			return apperr.InvalidInput("items[%d]: apparelId is required", i)
		case it.Quantity <= 0:
			return apperr.InvalidInput("items[%d]: quantity must be positive, got %d", i, it.Quantity)
		case it.Quantity > MaxQuantity:
			return apperr.InvalidInput("items[%d]: quantity must not exceed %d, got %d", i, MaxQuantity, it.Quantity)
		case it.UnitPrice.IsNegative():
			return apperr.InvalidInput("items[%d]: unitPrice must not be negative", i)
		case it.Discount.IsNegative():
			return apperr.InvalidInput("items[%d]: discount must not be negative", i)
		case it.Currency == "":
			return apperr.InvalidInput("items[%d]: currency is required", i)
		}
		if LineTotal(it.UnitPrice, it.Quantity, it.Discount).IsNegative() {
			return apperr.InvalidInput("items[%d]: discount exceeds line amount", i)
		}
		// Both operands are at most MaxQuantity, so the sum cannot overflow.
		merged[it.ApparelID] += it.Quantity
		if merged[it.ApparelID] > MaxQuantity {
			return apperr.InvalidInput("apparel %s: total quantity must not exceed %d", it.ApparelID, MaxQuantity)
		}
	}
	if r.OrderStatus != "" && !r.OrderStatus.Valid() {
		return apperr.InvalidInput("unknown orderStatus %q", r.OrderStatus)
	}
	if r.PaymentStatus != "" && !r.PaymentStatus.Valid() {
		return apperr.InvalidInput("unknown paymentStatus %q", r.PaymentStatus)
	}
	return nil
}

// Quantities merges the requested lines per apparel. Callers validate
// first so the merged totals stay within MaxQuantity.
func (r OrderRequest) Quantities() *Quantities {
	q := NewQuantities()
	for _, it := range r.Items {
		q.Add(it.ApparelID, it.Quantity)
	}
	return q
}

// Currency is the currency of the first line; mixed reports whether any
// later line disagrees with it.
func (r OrderRequest) Currency() (currency string, mixed bool) {
	for _, it := range r.Items {
		if currency == "" {
			currency = it.Currency
			continue
		}
		if it.Currency != currency {
			mixed = true
		}
	}
	return currency, mixed
}
