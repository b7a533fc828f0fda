package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"solar-leads/api/mapbox"
	"solar-leads/api/solar"
	"solar-leads/dao/redis"
	"solar-leads/db"
	"solar-leads/metrics"
	"solar-leads/models"
)

var errUpstream = errors.New("upstream unavailable")

var chicago = models.LatLng{Latitude: 41.8387, Longitude: -87.6553}

type fakeFootprints struct {
	fc  *geojson.FeatureCollection
	err error
}

func (f *fakeFootprints) GetBuildingsInBounds(ctx context.Context, bounds models.Bounds) (*geojson.FeatureCollection, error) {
	return f.fc, f.err
}

// fakeSolarAPI serves mock data layers and echoes the requested point as
// the building center. Points listed in fail return errUpstream.
type fakeSolarAPI struct {
	*solar.SolarApiClientMock
	layersErr error

	mu    sync.Mutex
	fail  map[models.LatLng]bool
	calls int
}

func newFakeSolarAPI() *fakeSolarAPI {
	return &fakeSolarAPI{SolarApiClientMock: solar.NewSolarApiClientMock(), fail: map[models.LatLng]bool{}}
}

func (f *fakeSolarAPI) GetDataLayers(ctx context.Context, center models.LatLng, radiusMeters float64, view models.DataLayerView, layers []models.LayerID) (*models.DataLayers, error) {
	if f.layersErr != nil {
		return nil, f.layersErr
	}
	return f.SolarApiClientMock.GetDataLayers(ctx, center, radiusMeters, view, layers)
}

func (f *fakeSolarAPI) FindClosestBuildingInsights(ctx context.Context, point models.LatLng, key string) (*models.BuildingInsights, error) {
	f.mu.Lock()
	f.calls++
	fail := f.fail[point]
	f.mu.Unlock()

	if fail {
		return nil, errUpstream
	}
	return &models.BuildingInsights{
		Name:   fmt.Sprintf("buildings/%.6f,%.6f", point.Latitude, point.Longitude),
		Center: point,
		SolarPotential: models.SolarPotential{
			MaxArrayPanelsCount: 10,
		},
	}, nil
}

// square is a polygon footprint of half-side halfDeg centered at
// (lon, lat).
func square(id string, lon, lat, halfDeg float64) *geojson.Feature {
	ring := orb.Ring{
		{lon - halfDeg, lat - halfDeg},
		{lon + halfDeg, lat - halfDeg},
		{lon + halfDeg, lat + halfDeg},
		{lon - halfDeg, lat + halfDeg},
		{lon - halfDeg, lat - halfDeg},
	}
	f := geojson.NewFeature(orb.Polygon{ring})
	f.ID = id
	return f
}

// growingSquares returns n footprints, footprint i being larger than
// footprint i-1.
func growingSquares(n int) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := 0; i < n; i++ {
		fc.Append(square(fmt.Sprintf("way/%d", i), chicago.Longitude+float64(i)*0.0005, chicago.Latitude, 0.00001*float64(i+1)))
	}
	return fc
}

type fixture struct {
	solar      *fakeSolarAPI
	footprints *fakeFootprints
	dao        *redis.RedisInsightDAO
	service    *AreaSolarService
}

func newFixture(logger *zap.Logger, fc *geojson.FeatureCollection) *fixture {
	solarAPI := newFakeSolarAPI()
	footprints := &fakeFootprints{fc: fc}
	dao := redis.NewRedisInsightDAO(db.NewMockRedisClient(), logger)
	m := metrics.New()
	fetcher := solar.NewInsightFetcher(solarAPI, []string{"k1", "k2"}, solar.NewThrottle(1000, time.Millisecond), m, logger)

	return &fixture{
		solar:      solarAPI,
		footprints: footprints,
		dao:        dao,
		service:    NewAreaSolarService(solarAPI, footprints, mapbox.NewMapboxApiClientMock(), fetcher, dao, m, logger),
	}
}

func drain(ch <-chan models.StreamChunk) []models.StreamChunk {
	var chunks []models.StreamChunk
	for c := range ch {
		chunks = append(chunks, c)
	}
	return chunks
}
