package endato

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"solar-leads/api"
	"solar-leads/models"
)

const (
	ADDRESS_ID_ENDPOINT = "/Address/Id"
	SEARCH_TYPE         = "DevAPIAddressID"
	EXACT_MATCH         = "CurrentOwner"
)

// EndatoApiClient embeds the common HTTPClient
type EndatoApiClient struct {
	*api.HTTPClient
	apiName     string
	apiPassword string
	logger      *zap.Logger
}

func NewEndatoApiClient(httpClient *api.HTTPClient, apiName, apiPassword string, logger *zap.Logger) *EndatoApiClient {
	return &EndatoApiClient{
		HTTPClient:  httpClient,
		apiName:     apiName,
		apiPassword: apiPassword,
		logger:      logger.Named("EndatoApiClient"),
	}
}

// GetPropertyDetails returns the current owners found at address.
func (c *EndatoApiClient) GetPropertyDetails(ctx context.Context, address models.StreetAddress) (*models.AddressResponse, error) {
	headers := map[string]string{
		"galaxy-ap-name":     c.apiName,
		"galaxy-ap-password": c.apiPassword,
		"galaxy-search-type": SEARCH_TYPE,
	}
	body := models.AddressIDRequest{
		AddressLine1: address.Line1,
		AddressLine2: address.Line2,
		ExactMatch:   EXACT_MATCH,
	}

	var response models.AddressResponse
	if err := c.Request(ctx, http.MethodPost, ADDRESS_ID_ENDPOINT, nil, headers, body, &response); err != nil {
		return nil, fmt.Errorf("address lookup failed: %w", err)
	}
	c.logger.Debug("address lookup", zap.Int("persons", len(response.Persons)))
	return &response, nil
}
