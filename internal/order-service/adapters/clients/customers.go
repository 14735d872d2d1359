// Package clients adapts the apparel, customer and warehouse services to the
// order service ports. Remote errors are returned as classified by
// internal/pkg/remote so NotFound and InvalidInput reach the caller intact.
package clients

import (
	"context"
	"net/url"

	"github.com/jcmexdev/footballstore-orders/internal/order-service/domain"
	"github.com/jcmexdev/footballstore-orders/internal/order-service/ports"
	"github.com/jcmexdev/footballstore-orders/internal/pkg/remote"
)

var _ ports.CustomerDirectory = (*CustomerClient)(nil)

// customerDTO is the customers service representation; the address is
// flattened into the customer record.
type customerDTO struct {
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
	RegistrationDate string `json:"registrationDate"`
	PreferredContact string `json:"preferredContact"`
}

type CustomerClient struct {
	remote *remote.Client
}

func NewCustomerClient(c *remote.Client) *CustomerClient {
	return &CustomerClient{remote: c}
}

func (c *CustomerClient) GetCustomer(ctx context.Context, customerID string) (domain.CustomerSnapshot, error) {
	var dto customerDTO
	if err := c.remote.Get(ctx, "/api/v1/customers/"+url.PathEscape(customerID), &dto); err != nil {
		return domain.CustomerSnapshot{}, err
	}
	return domain.CustomerSnapshot{
		CustomerID:       dto.CustomerID,
		FirstName:        dto.FirstName,
		LastName:         dto.LastName,
		Email:            dto.Email,
		Phone:            dto.Phone,
		RegistrationDate: dto.RegistrationDate,
		PreferredContact: dto.PreferredContact,
		Address: domain.Address{
			Street:     dto.Street,
			City:       dto.City,
			State:      dto.State,
			Country:    dto.Country,
			PostalCode: dto.PostalCode,
		},
	}, nil
}
