package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root persisted by the order store. Customer,
// warehouse and apparel data are snapshots copied at the time of the
// operation, never live references.
type Order struct {
	ID            string            `json:"orderId"`
	CustomerID    string            `json:"customerId"`
	Customer      CustomerSnapshot  `json:"customer"`
	WarehouseID   string            `json:"warehouseId"`
	Warehouse     WarehouseSnapshot `json:"warehouse"`
	Items         []OrderItem       `json:"items"`
	TotalPrice    Money             `json:"totalPrice"`
	Status        OrderStatus       `json:"orderStatus"`
	PaymentStatus PaymentStatus     `json:"paymentStatus"`
	OrderDate     time.Time         `json:"orderDate"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// OrderItem is owned by exactly one Order. Quantity is the stock currently
// reserved against the order for this line.
type OrderItem struct {
	ID        string          `json:"orderItemId"`
	Apparel   ApparelSnapshot `json:"apparel"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// ReservedQuantities sums item quantities per apparel. An order holding the
// same apparel on several lines reports their total.
func (o *Order) ReservedQuantities() *Quantities {
	q := NewQuantities()
	for _, it := range o.Items {
		q.Add(it.Apparel.ApparelID, it.Quantity)
	}
	return q
}

type OrderStatus string

const (
	StatusCreated    OrderStatus = "CREATED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// Terminal reports whether no further mutation is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusCreated, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentAuthorized PaymentStatus = "AUTHORIZED"
	PaymentCaptured   PaymentStatus = "CAPTURED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentAuthorized, PaymentCaptured, PaymentRefunded:
		return true
	}
	return false
}
