package domain

import "github.com/shopspring/decimal"

type CustomerSnapshot struct {
	CustomerID       string  `json:"customerId"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	RegistrationDate string  `json:"registrationDate,omitempty"`
	PreferredContact string  `json:"preferredContact,omitempty"`
	Address          Address `json:"address"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type WarehouseSnapshot struct {
	WarehouseID  string `json:"warehouseId"`
	LocationName string `json:"locationName"`
	Address      string `json:"address"`
	Capacity     int    `json:"capacity"`
}

type ApparelSnapshot struct {
	ApparelID   string          `json:"apparelId"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	ApparelType string          `json:"apparelType,omitempty"`
	SizeOption  string          `json:"sizeOption,omitempty"`
}
