package overpass

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solar-leads/api"
	"solar-leads/geometry"
	"solar-leads/models"
)

const interpreterResponse = `{
  "version": 0.6,
  "generator": "Overpass API",
  "elements": [
    {
      "type": "way", "id": 101, "tags": {"building": "house", "addr:housenumber": "2400"},
      "geometry": [
        {"lat": 41.8385, "lon": -87.6555}, {"lat": 41.8385, "lon": -87.6551},
        {"lat": 41.8389, "lon": -87.6551}, {"lat": 41.8389, "lon": -87.6555},
        {"lat": 41.8385, "lon": -87.6555}
      ]
    },
    {
      "type": "way", "id": 102, "tags": {"building": "wall"},
      "geometry": [{"lat": 41.8380, "lon": -87.6560}, {"lat": 41.8381, "lon": -87.6561}]
    },
    {"type": "node", "id": 103, "lat": 41.8386, "lon": -87.6552, "tags": {"building": "yes"}},
    {
      "type": "relation", "id": 104, "tags": {"building": "yes", "type": "multipolygon"},
      "members": [
        {"type": "way", "ref": 1, "role": "outer", "geometry": [
          {"lat": 41.8390, "lon": -87.6550}, {"lat": 41.8390, "lon": -87.6548},
          {"lat": 41.8392, "lon": -87.6548}, {"lat": 41.8390, "lon": -87.6550}
        ]},
        {"type": "way", "ref": 2, "role": "inner", "geometry": [
          {"lat": 41.8391, "lon": -87.6549}, {"lat": 41.8391, "lon": -87.6549},
          {"lat": 41.8391, "lon": -87.6549}, {"lat": 41.8391, "lon": -87.6549}
        ]}
      ]
    }
  ]
}`

func TestBuildingsQuery(t *testing.T) {
	q := BuildingsQuery(models.Bounds{North: 41.84, South: 41.83, East: -87.65, West: -87.66})
	assert.Equal(t, "[out:json][timeout:25];\n(nwr[\"building\"](41.83,-87.66,41.84,-87.65););\nout geom;", q)
}

func TestOverpassApiClient_GetBuildingsInBounds(t *testing.T) {
	bounds := models.Bounds{North: 41.8396, South: 41.8378, East: -87.6541, West: -87.6565}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, INTERPRETER_ENDPOINT, r.URL.Path)
		assert.Equal(t, BuildingsQuery(bounds), r.URL.Query().Get("data"))
		w.Write([]byte(interpreterResponse))
	}))
	defer srv.Close()

	client := NewOverpassApiClient(api.NewHTTPClient(srv.URL), zaptest.NewLogger(t))
	fc, err := client.GetBuildingsInBounds(context.Background(), bounds)
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	house := fc.Features[0]
	assert.Equal(t, "way/101", house.ID)
	assert.Equal(t, "2400", house.Properties["addr:housenumber"])
	require.IsType(t, orb.Polygon{}, house.Geometry)
	area, err := geometry.Area(house)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.0004*0.0004, area, 1e-6)

	assert.IsType(t, orb.LineString{}, fc.Features[1].Geometry)
	assert.IsType(t, orb.Point{}, fc.Features[2].Geometry)

	mp, ok := fc.Features[3].Geometry.(orb.MultiPolygon)
	require.True(t, ok)
	assert.Len(t, mp, 1)
}

func TestOverpassApiClient_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOverpassApiClient(api.NewHTTPClient(srv.URL), zaptest.NewLogger(t))
	_, err := client.GetBuildingsInBounds(context.Background(), models.Bounds{})

	var statusErr *api.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestOverpassApiClientMock(t *testing.T) {
	bounds := geometry.BoundsFromCenter(models.LatLng{Latitude: 41.8387, Longitude: -87.6553}, 100)
	fc, err := NewOverpassApiClientMock().GetBuildingsInBounds(context.Background(), bounds)
	require.NoError(t, err)
	require.Len(t, fc.Features, MOCK_BUILDINGS)

	prev := 0.0
	for _, f := range fc.Features {
		area, err := geometry.Area(f)
		require.NoError(t, err)
		assert.Greater(t, area, prev)
		prev = area

		c, err := geometry.Centroid(f)
		require.NoError(t, err)
		assert.True(t, c.Latitude > bounds.South && c.Latitude < bounds.North)
		assert.True(t, c.Longitude > bounds.West && c.Longitude < bounds.East)
	}
}
