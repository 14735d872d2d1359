package mappers

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/adapters/httpx/dto"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
)

const dateLayout = "2006-01-02"

func OrderRequestFromDTO(req dto.OrderRequest) domain.OrderRequest {
	items := make([]domain.ItemRequest, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.ItemRequest{
			ApparelID: it.ApparelID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Currency:  it.Currency,
		}
	}
	return domain.OrderRequest{
		WarehouseID:   req.WarehouseID,
		Items:         items,
		OrderStatus:   domain.OrderStatus(req.OrderStatus),
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
	}
}

func OrderToResponse(o *domain.Order) dto.OrderResponse {
	c, w := o.Customer, o.Warehouse
	return dto.OrderResponse{
		OrderID:          o.ID,
		CustomerID:       o.CustomerID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Phone:            c.Phone,
		Street:           c.Address.Street,
		City:             c.Address.City,
		State:            c.Address.State,
		Country:          c.Address.Country,
		PostalCode:       c.Address.PostalCode,
		RegistrationDate: c.RegistrationDate,
		PreferredContact: c.PreferredContact,
		WarehouseID:      o.WarehouseID,
		LocationName:     w.LocationName,
		WarehouseAddress: w.Address,
		Capacity:         w.Capacity,
		Items:            mapItemsToResponse(o.Items),
		TotalAmount:      money(o.TotalPrice.Amount),
		Currency:         o.TotalPrice.Currency,
		OrderStatus:      string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		OrderDate:        o.OrderDate.UTC().Format(dateLayout),
		UpdatedAt:        o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToResponse(orders []*domain.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = OrderToResponse(o)
	}
	return out
}

func mapItemsToResponse(items []domain.OrderItem) []dto.OrderItemResponse {
	out := make([]dto.OrderItemResponse, len(items))
	for i, it := range items {
		out[i] = dto.OrderItemResponse{
			OrderItemID: it.ID,
			ApparelID:   it.Apparel.ApparelID,
			ItemName:    it.Apparel.ItemName,
			Description: it.Apparel.Description,
			Brand:       it.Apparel.Brand,
			ApparelType: it.Apparel.ApparelType,
			SizeOption:  it.Apparel.SizeOption,
			UnitPrice:   money(it.UnitPrice),
			Cost:        money(it.Apparel.Cost),
			Quantity:    it.Quantity,
			Discount:    money(it.Discount),
			LineTotal:   money(it.LineTotal),
		}
	}
	return out
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
