package solar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solar-leads/api"
	"solar-leads/models"
)

const (
	DATA_LAYERS_ENDPOINT       = "/v1/dataLayers:get"
	BUILDING_INSIGHTS_ENDPOINT = "/v1/buildingInsights:findClosest"
	REQUIRED_QUALITY           = "LOW"
	PIXEL_SIZE_METERS          = "0.1"
)

// SolarApiClient embeds the common HTTPClient
type SolarApiClient struct {
	*api.HTTPClient
	apiKey     string
	downloader *GeoTiffDownloader
	logger     *zap.Logger
}

// NewSolarApiClient creates a new instance of SolarApiClient. apiKey is used
// for data layer requests and layer downloads.
func NewSolarApiClient(httpClient *api.HTTPClient, apiKey string, downloader *GeoTiffDownloader, logger *zap.Logger) *SolarApiClient {
	return &SolarApiClient{
		HTTPClient: httpClient,
		apiKey:     apiKey,
		downloader: downloader,
		logger:     logger.Named("SolarApiClient"),
	}
}

// GetDataLayers requests the layer locators around center and downloads the
// requested layers concurrently. The first failed download cancels the rest.
func (c *SolarApiClient) GetDataLayers(ctx context.Context, center models.LatLng, radiusMeters float64, view models.DataLayerView, layers []models.LayerID) (*models.DataLayers, error) {
	query := locationQuery(center)
	query.Set("radiusMeters", strconv.FormatFloat(radiusMeters, 'f', -1, 64))
	query.Set("requiredQuality", REQUIRED_QUALITY)
	query.Set("view", string(view))
	query.Set("pixelSizeMeters", PIXEL_SIZE_METERS)
	query.Set("key", c.apiKey)

	var response models.DataLayersResponse
	if err := c.Request(ctx, http.MethodGet, DATA_LAYERS_ENDPOINT, query, nil, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get data layers: %w", err)
	}

	for _, id := range layers {
		if id != models.LayerHourlyShade && response.URL(id) == "" {
			return nil, fmt.Errorf("data layers response has no url for layer %q", id)
		}
	}

	result := &models.DataLayers{DataLayersResponse: response}
	single := make([]*models.GeoRaster, len(layers))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range layers {
		if id == models.LayerHourlyShade {
			result.HourlyShade = make([]*models.GeoRaster, len(response.HourlyShadeURLs))
			for m, u := range response.HourlyShadeURLs {
				g.Go(func() error {
					raster, err := c.downloader.Download(gctx, u)
					if err != nil {
						return fmt.Errorf("hourly shade month %d: %w", m, err)
					}
					result.HourlyShade[m] = raster
					return nil
				})
			}
			continue
		}

		u := response.URL(id)
		g.Go(func() error {
			raster, err := c.downloader.Download(gctx, u)
			if err != nil {
				return fmt.Errorf("layer %s: %w", id, err)
			}
			single[i] = raster
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, id := range layers {
		if single[i] != nil {
			result.Set(id, single[i])
		}
	}
	c.logger.Debug("downloaded data layers", zap.Int("layers", len(layers)), zap.String("imageryQuality", response.ImageryQuality))
	return result, nil
}

// FindClosestBuildingInsights retrieves the insights of the building closest
// to point using the given API key.
func (c *SolarApiClient) FindClosestBuildingInsights(ctx context.Context, point models.LatLng, key string) (*models.BuildingInsights, error) {
	query := locationQuery(point)
	query.Set("key", key)

	var response models.BuildingInsights
	if err := c.Request(ctx, http.MethodGet, BUILDING_INSIGHTS_ENDPOINT, query, nil, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to find closest building insights: %w", err)
	}
	return &response, nil
}

func locationQuery(point models.LatLng) url.Values {
	query := url.Values{}
	query.Set("location.latitude", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	query.Set("location.longitude", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	return query
}
