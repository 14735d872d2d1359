// Package entity is the gateway's view of an order. Field names follow the
// orders service JSON contract; money stays a decimal literal end to end.
package entity

import "encoding/json"

type OrderRequest struct {
	WarehouseID   string        `json:"warehouseId,omitempty"`
	Items         []OrderItemIn `json:"items"`
	OrderStatus   string        `json:"orderStatus,omitempty"`
	PaymentStatus string        `json:"paymentStatus,omitempty"`
}

type OrderItemIn struct {
	ApparelID string      `json:"apparelId"`
	Quantity  int         `json:"quantity"`
	UnitPrice json.Number `json:"unitPrice"`
	Discount  json.Number `json:"discount,omitempty"`
	Currency  string      `json:"currency"`
}

type Order struct {
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

	Items         []OrderItem `json:"items"`
	TotalAmount   json.Number `json:"totalAmount"`
	Currency      string      `json:"currency"`
	OrderStatus   string      `json:"orderStatus"`
	PaymentStatus string      `json:"paymentStatus"`
	OrderDate     string      `json:"orderDate"`
	UpdatedAt     string      `json:"updatedAt"`
}

type OrderItem struct {
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
