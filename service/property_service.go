package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"solar-leads/api/endato"
	"solar-leads/config"
	"solar-leads/dao/redis"
	"solar-leads/metrics"
	"solar-leads/models"
)

// PropertyService looks up property owners and the results of earlier area
// searches.
type PropertyService struct {
	propertyAPI endato.PropertyAPI
	insightDao  *redis.RedisInsightDAO
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewPropertyService(propertyAPI endato.PropertyAPI, insightDao *redis.RedisInsightDAO, m *metrics.Metrics, logger *zap.Logger) *PropertyService {
	return &PropertyService{
		propertyAPI: propertyAPI,
		insightDao:  insightDao,
		metrics:     m,
		logger:      logger.Named("PropertyService"),
	}
}

func (s *PropertyService) GetPropertyDetails(ctx context.Context, address models.StreetAddress) (*models.AddressResponse, error) {
	start := time.Now()
	details, err := s.propertyAPI.GetPropertyDetails(ctx, address)
	s.metrics.ObserveCall(metrics.CollaboratorPropertyDetails, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property details: %w", err)
	}
	return details, nil
}

// GetSummary returns the CSV summary of the user's last completed area
// search, or redis.ErrSummaryNotFound.
func (s *PropertyService) GetSummary(ctx context.Context, userID string) (string, error) {
	return s.insightDao.GetSummary(ctx, userID)
}

// ListSummaryUsers returns the users with a cached area summary.
func (s *PropertyService) ListSummaryUsers(ctx context.Context) ([]string, error) {
	return s.insightDao.ListSummaryUsers(ctx)
}

// DeleteSummary drops the user's cached area summary, or returns
// redis.ErrSummaryNotFound.
func (s *PropertyService) DeleteSummary(ctx context.Context, userID string) error {
	if err := s.insightDao.DeleteSummary(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("deleted summary", zap.String("user", userID))
	return nil
}

// GetNearbyBuildings returns indexed buildings within radiusMeters of
// center, nearest first. A non-positive radius uses the default and larger
// radii are capped.
func (s *PropertyService) GetNearbyBuildings(ctx context.Context, center models.LatLng, radiusMeters float64) ([]redis.IndexedBuilding, error) {
	if radiusMeters <= 0 {
		radiusMeters = config.DEFAULT_NEARBY_RADIUS_METERS
	}
	if radiusMeters > config.MAX_NEARBY_RADIUS_METERS {
		radiusMeters = config.MAX_NEARBY_RADIUS_METERS
	}
	buildings, err := s.insightDao.GetNearbyBuildings(ctx, center, radiusMeters)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("nearby buildings", zap.Float64("radius", radiusMeters), zap.Int("count", len(buildings)))
	return buildings, nil
}
