package solar

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"solar-leads/metrics"
	"solar-leads/models"
)

var ErrNoAPIKeys = errors.New("no building insights api keys configured")

// InsightFetcher fetches building insights through the shared Throttle,
// spreading calls over a pool of API keys.
type InsightFetcher struct {
	api      SolarAPI
	keys     []string
	throttle *Throttle
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewInsightFetcher(solarAPI SolarAPI, keys []string, throttle *Throttle, m *metrics.Metrics, logger *zap.Logger) *InsightFetcher {
	return &InsightFetcher{
		api:      solarAPI,
		keys:     keys,
		throttle: throttle,
		metrics:  m,
		logger:   logger.Named("InsightFetcher"),
	}
}

// FetchClosestInsight returns the insights of the building closest to
// point, using key keyIndex mod len(keys), tagged as a building insight.
func (f *InsightFetcher) FetchClosestInsight(ctx context.Context, point models.LatLng, keyIndex int) (*models.BuildingInsights, error) {
	if len(f.keys) == 0 {
		return nil, ErrNoAPIKeys
	}
	i := keyIndex % len(f.keys)
	if i < 0 {
		i += len(f.keys)
	}
	key := f.keys[i]

	waitStart := time.Now()
	if err := f.throttle.Wait(ctx); err != nil {
		return nil, err
	}
	f.metrics.ObserveThrottleWait(time.Since(waitStart))

	start := time.Now()
	insights, err := f.api.FindClosestBuildingInsights(ctx, point, key)
	f.metrics.ObserveCall(metrics.CollaboratorBuildingInsights, start, err)
	if err != nil {
		return nil, err
	}

	insights.Type = models.BuildingInsightsType
	f.logger.Debug("fetched building insights", zap.String("name", insights.Name), zap.Int("keyIndex", keyIndex))
	return insights, nil
}
