package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"solar-leads/db"
	"solar-leads/models"
)

const BUILDINGS_GEO_KEY_V1 = "buildings_geo_v1"
const BUILDINGS_GEO_MEMBER_FORMAT_V1 = "buildings_geo_member_v1:%s"

// SOLAR_INSIGHTS_KEY_FORMAT holds the condensed summary of a user's last
// area search.
const SOLAR_INSIGHTS_KEY_FORMAT = "solar-insights-%s"

// ErrSummaryNotFound is returned when a user has no cached summary.
var ErrSummaryNotFound = errors.New("summary not found")

// IndexedBuilding is a discovered building stored in the geo index.
type IndexedBuilding struct {
	models.CondensedInsight
	Center models.LatLng `json:"center"`
}

// RedisInsightDAO handles the insight cache and the building geo index.
type RedisInsightDAO struct {
	client db.RedisClient
	logger *zap.Logger
}

// NewRedisInsightDAO initializes a RedisInsightDAO with the Redis client.
func NewRedisInsightDAO(client db.RedisClient, logger *zap.Logger) *RedisInsightDAO {
	return &RedisInsightDAO{client: client, logger: logger.Named("RedisInsightDAO")}
}

// SetSummary overwrites the cached summary of userID.
func (dao *RedisInsightDAO) SetSummary(ctx context.Context, userID, summary string) error {
	key := fmt.Sprintf(SOLAR_INSIGHTS_KEY_FORMAT, userID)
	if err := dao.client.Set(ctx, key, summary); err != nil {
		return fmt.Errorf("failed to set summary %s: %w", key, err)
	}
	dao.logger.Info("stored summary", zap.String("key", key), zap.Int("bytes", len(summary)))
	return nil
}

// GetSummary returns the cached summary of userID or ErrSummaryNotFound.
func (dao *RedisInsightDAO) GetSummary(ctx context.Context, userID string) (string, error) {
	key := fmt.Sprintf(SOLAR_INSIGHTS_KEY_FORMAT, userID)
	summary, err := dao.client.Get(ctx, key)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrSummaryNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get summary %s: %w", key, err)
	}
	return summary, nil
}

// UpsertBuilding stores the building at its center in the geo index.
func (dao *RedisInsightDAO) UpsertBuilding(ctx context.Context, b IndexedBuilding) error {
	if b.ID == "" {
		return fmt.Errorf("building has no id")
	}
	member := fmt.Sprintf(BUILDINGS_GEO_MEMBER_FORMAT_V1, b.ID)
	return dao.client.AddLocationWithJSON(ctx, BUILDINGS_GEO_KEY_V1, member, b.Center.Latitude, b.Center.Longitude, b)
}

// GetNearbyBuildings retrieves indexed buildings within radius meters.
func (dao *RedisInsightDAO) GetNearbyBuildings(ctx context.Context, center models.LatLng, radius float64) ([]IndexedBuilding, error) {
	buildingsJSON, err := dao.client.GetLocationsWithinRadius(ctx, BUILDINGS_GEO_KEY_V1, center.Latitude, center.Longitude, radius)
	if err != nil {
		return nil, fmt.Errorf("failed to get buildings: %w", err)
	}

	buildings := make([]IndexedBuilding, len(buildingsJSON))
	for i, buildingJSON := range buildingsJSON {
		if err := json.Unmarshal([]byte(buildingJSON), &buildings[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal building JSON: %w", err)
		}
	}
	return buildings, nil
}

// ListSummaryUsers returns the users that have a cached summary.
func (dao *RedisInsightDAO) ListSummaryUsers(ctx context.Context) ([]string, error) {
	prefix := fmt.Sprintf(SOLAR_INSIGHTS_KEY_FORMAT, "")
	keys, err := dao.client.Keys(ctx, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list summary keys: %w", err)
	}
	users := make([]string, 0, len(keys))
	for _, k := range keys {
		users = append(users, strings.TrimPrefix(k, prefix))
	}
	return users, nil
}

// DeleteSummary removes the cached summary of userID, or returns
// ErrSummaryNotFound when there is none.
func (dao *RedisInsightDAO) DeleteSummary(ctx context.Context, userID string) error {
	if _, err := dao.GetSummary(ctx, userID); err != nil {
		return err
	}
	key := fmt.Sprintf(SOLAR_INSIGHTS_KEY_FORMAT, userID)
	if err := dao.client.Del(ctx, key); err != nil {
		return fmt.Errorf("failed to delete summary %s: %w", key, err)
	}
	return nil
}
