package endato

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"solar-leads/models"
)

//go:embed resources/address_response.json
var addressResponseFixture []byte

// EndatoApiClientMock answers every lookup with a recorded response.
type EndatoApiClientMock struct {
}

func NewEndatoApiClientMock() *EndatoApiClientMock {
	return &EndatoApiClientMock{}
}

func (c *EndatoApiClientMock) GetPropertyDetails(ctx context.Context, address models.StreetAddress) (*models.AddressResponse, error) {
	var response models.AddressResponse
	if err := json.Unmarshal(addressResponseFixture, &response); err != nil {
		return nil, fmt.Errorf("could not read address response fixture: %w", err)
	}
	return &response, nil
}
