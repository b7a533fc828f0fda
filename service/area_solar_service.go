package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"solar-leads/api/mapbox"
	"solar-leads/api/overpass"
	"solar-leads/api/solar"
	"solar-leads/config"
	"solar-leads/dao/redis"
	"solar-leads/geometry"
	"solar-leads/metrics"
	"solar-leads/models"
)

// Skip reasons.
const (
	SKIP_ADDRESS = "address"
	SKIP_INSIGHT = "insight"
)

// AreaSolarService runs area searches: it fetches the raster layers and
// building footprints around a point, then streams per-building insights
// in footprint area order.
type AreaSolarService struct {
	solarAPI   solar.SolarAPI
	footprints overpass.OverpassAPI
	geocoder   mapbox.Geocoder
	fetcher    *solar.InsightFetcher
	insightDao *redis.RedisInsightDAO
	metrics    *metrics.Metrics
	logger     *zap.Logger

	radiusMeters float64
	maxBuildings int
}

// NewAreaSolarService constructs a new AreaSolarService. The fetcher carries
// the process wide throttle and must be shared with other services.
func NewAreaSolarService(
	solarAPI solar.SolarAPI,
	footprints overpass.OverpassAPI,
	geocoder mapbox.Geocoder,
	fetcher *solar.InsightFetcher,
	insightDao *redis.RedisInsightDAO,
	m *metrics.Metrics,
	logger *zap.Logger) *AreaSolarService {

	return &AreaSolarService{
		solarAPI:     solarAPI,
		footprints:   footprints,
		geocoder:     geocoder,
		fetcher:      fetcher,
		insightDao:   insightDao,
		metrics:      m,
		logger:       logger.Named("AreaSolarService"),
		radiusMeters: config.AREA_RADIUS_METERS,
		maxBuildings: config.MAX_RANKED_BUILDINGS,
	}
}

// StreamAreaInsights fetches the primary layers and footprints around
// center. If either fails nothing is streamed and the error is returned.
// Otherwise the returned channel yields the layers+features payload first,
// then one summary per ranked building that could be fetched, and is closed
// when the run ends. Cancelling ctx stops the run; the summary of a
// cancelled run is not cached.
func (s *AreaSolarService) StreamAreaInsights(ctx context.Context, center models.LatLng, userID string) (<-chan models.StreamChunk, error) {
	logger := s.logger.With(zap.String("run_id", uuid.NewString()), zap.String("user", userID))

	bounds := geometry.BoundsFromCenter(center, s.radiusMeters)
	logger.Info("starting area search",
		zap.Float64("latitude", center.Latitude), zap.Float64("longitude", center.Longitude), zap.Any("bounds", bounds))

	primary, footprints, err := s.fetchPrimary(ctx, center, bounds, logger)
	if err != nil {
		logger.Error("area search aborted", zap.Error(err))
		s.metrics.PipelineRun(metrics.OutcomeAborted)
		return nil, err
	}

	out := make(chan models.StreamChunk)
	go s.iterate(ctx, logger, userID, primary, footprints, out)
	return out, nil
}

// fetchPrimary downloads the raster layers and the footprints concurrently.
func (s *AreaSolarService) fetchPrimary(ctx context.Context, center models.LatLng, bounds models.Bounds, logger *zap.Logger) (*models.LayersAndFeaturesResponse, []models.BuildingFootprint, error) {
	var layers *models.DataLayers
	var features *geojson.FeatureCollection

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		layers, err = s.solarAPI.GetDataLayers(gctx, center, s.radiusMeters, config.DATA_LAYERS_VIEW, config.PrimaryLayers)
		s.metrics.ObserveCall(metrics.CollaboratorDataLayers, start, err)
		if err != nil {
			return fmt.Errorf("failed to fetch data layers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		var err error
		features, err = s.footprints.GetBuildingsInBounds(gctx, bounds)
		s.metrics.ObserveCall(metrics.CollaboratorFootprints, start, err)
		if err != nil {
			return fmt.Errorf("failed to fetch building footprints: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if features == nil {
		features = geojson.NewFeatureCollection()
	}
	footprints := RankFootprints(features, s.maxBuildings, logger)
	logger.Info("primary data fetched",
		zap.Int("features", len(features.Features)), zap.Int("ranked", len(footprints)))

	return &models.LayersAndFeaturesResponse{
		Type:             models.LayersAndFeaturesType,
		DataLayers:       layers,
		BuildingFeatures: features,
	}, footprints, nil
}

func (s *AreaSolarService) iterate(ctx context.Context, logger *zap.Logger, userID string, primary models.StreamChunk, footprints []models.BuildingFootprint, out chan<- models.StreamChunk) {
	defer close(out)

	if !send(ctx, out, primary) {
		s.cancelled(logger, 0, len(footprints))
		return
	}

	rows := make([]models.CondensedInsight, 0, len(footprints))
	for i, fp := range footprints {
		if ctx.Err() != nil {
			s.cancelled(logger, i, len(footprints))
			return
		}

		summary, err := s.fetchBuilding(ctx, fp, i)
		if err != nil {
			if ctx.Err() != nil {
				s.cancelled(logger, i, len(footprints))
				return
			}
			logger.Warn("skipping building", zap.Int("index", i), zap.Any("centroid", fp.Centroid), zap.Error(err))
			s.metrics.BuildingSkipped(skipReason(err))
			continue
		}

		row := summary.Condense()
		rows = append(rows, row)
		s.indexBuilding(ctx, logger, row, summary.Center)

		if !send(ctx, out, summary) {
			s.cancelled(logger, i, len(footprints))
			return
		}
		s.metrics.InsightStreamed()
	}

	report, err := BuildSummaryCSV(rows)
	if err != nil {
		logger.Error("failed to build summary", zap.Error(err))
	} else if err := s.insightDao.SetSummary(ctx, userID, report); err != nil {
		logger.Error("failed to cache summary", zap.Error(err))
	}

	logger.Info("area search done", zap.Int("streamed", len(rows)), zap.Int("ranked", len(footprints)))
	s.metrics.PipelineRun(metrics.OutcomeDone)
}

// fetchBuilding resolves the address and the insights of one footprint
// concurrently and returns the address-enriched summary.
func (s *AreaSolarService) fetchBuilding(ctx context.Context, fp models.BuildingFootprint, index int) (*models.BuildingInsightsSummary, error) {
	var address models.StreetAddress
	var insights *models.BuildingInsights

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var err error
		address, err = s.geocoder.ReverseGeocode(gctx, fp.Centroid)
		s.metrics.ObserveCall(metrics.CollaboratorGeocoder, start, err)
		if err != nil {
			return &stageError{stage: SKIP_ADDRESS, err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		insights, err = s.fetcher.FetchClosestInsight(gctx, fp.Centroid, index)
		if err != nil {
			return &stageError{stage: SKIP_INSIGHT, err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	insights.StreetAddress = address
	return insights.Summarize(), nil
}

func (s *AreaSolarService) indexBuilding(ctx context.Context, logger *zap.Logger, row models.CondensedInsight, center models.LatLng) {
	if row.ID == "" {
		return
	}
	if err := s.insightDao.UpsertBuilding(ctx, redis.IndexedBuilding{CondensedInsight: row, Center: center}); err != nil {
		logger.Warn("failed to index building", zap.String("id", row.ID), zap.Error(err))
	}
}

func (s *AreaSolarService) cancelled(logger *zap.Logger, at, total int) {
	logger.Info("area search cancelled", zap.Int("at", at), zap.Int("ranked", total))
	s.metrics.PipelineRun(metrics.OutcomeCancelled)
}

func send(ctx context.Context, out chan<- models.StreamChunk, chunk models.StreamChunk) bool {
	select {
	case out <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}

type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.stage + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func skipReason(err error) string {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return "unknown"
}
