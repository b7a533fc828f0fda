package solar

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"solar-leads/api"
	"solar-leads/models"
)

const SOLAR_API_HOST = "solar.googleapis.com"

// Decoder turns the bytes of a GeoTIFF into a georeferenced raster.
type Decoder interface {
	Decode(data []byte) (*models.GeoRaster, error)
}

// GeoTiffDownloader fetches data layer GeoTIFFs and decodes them.
type GeoTiffDownloader struct {
	httpClient *api.HTTPClient
	apiKey     string
	decoder    Decoder
	logger     *zap.Logger
}

func NewGeoTiffDownloader(httpClient *api.HTTPClient, apiKey string, decoder Decoder, logger *zap.Logger) *GeoTiffDownloader {
	return &GeoTiffDownloader{
		httpClient: httpClient,
		apiKey:     apiKey,
		decoder:    decoder,
		logger:     logger.Named("GeoTiffDownloader"),
	}
}

// Download fetches the layer at rawURL. Solar API locators need the API key
// appended; other hosts are fetched as given.
func (d *GeoTiffDownloader) Download(ctx context.Context, rawURL string) (*models.GeoRaster, error) {
	d.logger.Debug("downloading data layer", zap.String("url", rawURL))

	target := rawURL
	if strings.Contains(rawURL, SOLAR_API_HOST) {
		target = rawURL + "&key=" + d.apiKey
	}

	data, err := d.httpClient.Download(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", rawURL, err)
	}

	raster, err := d.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", rawURL, err)
	}
	return raster, nil
}
