// Package dto holds the JSON shapes of the orders HTTP API.
package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type OrderRequest struct {
	WarehouseID   string             `json:"warehouseId"`
	Items         []OrderItemRequest `json:"items"`
	OrderStatus   string             `json:"orderStatus,omitempty"`
	PaymentStatus string             `json:"paymentStatus,omitempty"`
}

type OrderItemRequest struct {
	ApparelID string          `json:"apparelId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Currency  string          `json:"currency"`
}

// OrderResponse is the denormalized view of an order: customer and
// warehouse snapshot fields are flattened next to the order fields.
// Money values are JSON numbers with two decimals.
type OrderResponse struct {
	OrderID          string `json:"orderId"`
	CustomerID       string `json:"customerId"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Street           string `json:"street"`
	City             string `json:"city"`
	State            string `json:"state"`
	Country          string `json:"country"`
	PostalCode       string `json:"postalCode"`
	RegistrationDate string `json:"registrationDate,omitempty"`
	PreferredContact string `json:"preferredContact,omitempty"`

	WarehouseID      string `json:"warehouseId"`
	LocationName     string `json:"locationName"`
	WarehouseAddress string `json:"warehouseAddress"`
	Capacity         int    `json:"capacity"`

	Items         []OrderItemResponse `json:"items"`
	TotalAmount   json.Number         `json:"totalAmount"`
	Currency      string              `json:"currency"`
	OrderStatus   string              `json:"orderStatus"`
	PaymentStatus string              `json:"paymentStatus"`
	OrderDate     string              `json:"orderDate"`
	UpdatedAt     string              `json:"updatedAt"`
}

type OrderItemResponse struct {
	OrderItemID string      `json:"orderItemId"`
	ApparelID   string      `json:"apparelId"`
	ItemName    string      `json:"itemName"`
	Description string      `json:"description"`
	Brand       string      `json:"brand"`
	ApparelType string      `json:"apparelType,omitempty"`
	SizeOption  string      `json:"sizeOption,omitempty"`
	UnitPrice   json.Number `json:"unitPrice"`
	Cost        json.Number `json:"cost"`
	Quantity    int         `json:"quantity"`
	Discount    json.Number `json:"discount"`
	LineTotal   json.Number `json:"lineTotal"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
