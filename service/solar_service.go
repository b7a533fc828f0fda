package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"solar-leads/api/solar"
	"solar-leads/config"
	"solar-leads/metrics"
	"solar-leads/models"
	"solar-leads/raster"
)

// SolarService serves single-building insights and rendered data layers.
type SolarService struct {
	solarAPI solar.SolarAPI
	fetcher  *solar.InsightFetcher
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewSolarService(solarAPI solar.SolarAPI, fetcher *solar.InsightFetcher, m *metrics.Metrics, logger *zap.Logger) *SolarService {
	return &SolarService{
		solarAPI: solarAPI,
		fetcher:  fetcher,
		metrics:  m,
		logger:   logger.Named("SolarService"),
	}
}

// GetBuildingInsights returns the insights of the building closest to point.
func (s *SolarService) GetBuildingInsights(ctx context.Context, point models.LatLng) (*models.BuildingInsights, error) {
	insights, err := s.fetcher.FetchClosestInsight(ctx, point, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch building insights: %w", err)
	}
	return insights, nil
}

// GetDataLayers downloads the given layers of the area around center.
func (s *SolarService) GetDataLayers(ctx context.Context, center models.LatLng, layers []models.LayerID) (*models.DataLayers, error) {
	start := time.Now()
	result, err := s.solarAPI.GetDataLayers(ctx, center, config.AREA_RADIUS_METERS, viewFor(layers...), layers)
	s.metrics.ObserveCall(metrics.CollaboratorDataLayers, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data layers: %w", err)
	}
	return result, nil
}

// RenderLayer renders image frame of layer id around center as PNG. The
// mask is always fetched since every layer is placed by it.
func (s *SolarService) RenderLayer(ctx context.Context, center models.LatLng, id models.LayerID, opts raster.RenderOptions, frame int) ([]byte, error) {
	wanted := []models.LayerID{models.LayerMask}
	if id != models.LayerMask {
		wanted = append(wanted, id)
	}
	layers, err := s.GetDataLayers(ctx, center, wanted)
	if err != nil {
		return nil, err
	}

	layer, err := raster.GetLayer(id, &layers.LayerSet)
	if err != nil {
		return nil, err
	}
	images, err := layer.Render(opts)
	if err != nil {
		return nil, err
	}
	if frame < 0 || frame >= len(images) {
		return nil, fmt.Errorf("%w: frame %d of %d", raster.ErrUnsupportedLayer, frame, len(images))
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, images[frame]); err != nil {
		return nil, err
	}
	s.logger.Debug("rendered layer", zap.String("layer", string(id)), zap.Int("frame", frame), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// viewFor returns the smallest view that includes every layer.
func viewFor(layers ...models.LayerID) models.DataLayerView {
	view := models.ViewDSMLayer
	for _, id := range layers {
		var v models.DataLayerView
		switch id {
		case models.LayerMask, models.LayerDSM, models.LayerRGB:
			v = models.ViewImageryLayers
		case models.LayerAnnualFlux:
			v = models.ViewImageryAndAnnualFlux
		case models.LayerMonthlyFlux:
			v = models.ViewImageryAndAllFluxLayers
		default:
			v = models.ViewFullLayers
		}
		if viewRank[v] > viewRank[view] {
			view = v
		}
	}
	return view
}

var viewRank = map[models.DataLayerView]int{
	models.ViewDSMLayer:                0,
	models.ViewImageryLayers:           1,
	models.ViewImageryAndAnnualFlux:    2,
	models.ViewImageryAndAllFluxLayers: 3,
	models.ViewFullLayers:              4,
}
