package endato

import (
	"context"

	"solar-leads/models"
)

// PropertyAPI looks up the people registered at an address.
type PropertyAPI interface {
	GetPropertyDetails(ctx context.Context, address models.StreetAddress) (*models.AddressResponse, error)
}
