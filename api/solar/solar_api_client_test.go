package solar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solar-leads/api"
	"solar-leads/models"
)

// stubDecoder reads the downloaded body as the raster's single value.
type stubDecoder struct {
	mu   sync.Mutex
	seen []string
}

func (d *stubDecoder) Decode(data []byte) (*models.GeoRaster, error) {
	d.mu.Lock()
	d.seen = append(d.seen, string(data))
	d.mu.Unlock()
	if string(data) == "corrupt" {
		return nil, errors.New("not a tiff")
	}
	return &models.GeoRaster{Width: 1, Height: 1, Rasters: [][]float64{{float64(len(data))}}}, nil
}

func newSolarServer(t *testing.T) *httptest.Server {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == DATA_LAYERS_ENDPOINT:
			q := r.URL.Query()
			assert.Equal(t, "41.8387", q.Get("location.latitude"))
			assert.Equal(t, "-87.6553", q.Get("location.longitude"))
			assert.Equal(t, "100", q.Get("radiusMeters"))
			assert.Equal(t, "LOW", q.Get("requiredQuality"))
			assert.Equal(t, "0.1", q.Get("pixelSizeMeters"))
			assert.Equal(t, string(models.ViewFullLayers), q.Get("view"))
			assert.Equal(t, "layers-key", q.Get("key"))

			hourly := make([]string, 12)
			for i := range hourly {
				hourly[i] = srv.URL + "/tiles/hourly?m=" + strings.Repeat("x", i+1)
			}
			json.NewEncoder(w).Encode(models.DataLayersResponse{
				MaskURL:         srv.URL + "/tiles/mask?id=a",
				DSMURL:          srv.URL + "/tiles/dsm?id=b",
				AnnualFluxURL:   srv.URL + "/tiles/corrupt?id=c",
				HourlyShadeURLs: hourly,
				ImageryQuality:  "HIGH",
			})
		case r.URL.Path == "/tiles/corrupt":
			w.Write([]byte("corrupt"))
		case strings.HasPrefix(r.URL.Path, "/tiles/"):
			w.Write([]byte(r.URL.RawQuery))
		case r.URL.Path == BUILDING_INSIGHTS_ENDPOINT:
			assert.Equal(t, "pool-key", r.URL.Query().Get("key"))
			w.Write(buildingInsightsFixture)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string, decoder Decoder) *SolarApiClient {
	logger := zaptest.NewLogger(t)
	httpClient := api.NewHTTPClient(baseURL)
	return NewSolarApiClient(httpClient, "layers-key", NewGeoTiffDownloader(httpClient, "layers-key", decoder, logger), logger)
}

func TestSolarApiClient_GetDataLayers(t *testing.T) {
	srv := newSolarServer(t)
	decoder := &stubDecoder{}
	client := newTestClient(t, srv.URL, decoder)

	center := models.LatLng{Latitude: 41.8387, Longitude: -87.6553}
	layers, err := client.GetDataLayers(context.Background(), center, 100, models.ViewFullLayers,
		[]models.LayerID{models.LayerMask, models.LayerDSM, models.LayerHourlyShade})
	require.NoError(t, err)

	assert.Equal(t, "HIGH", layers.ImageryQuality)
	require.NotNil(t, layers.Mask)
	require.NotNil(t, layers.DSM)
	assert.Nil(t, layers.AnnualFlux)
	assert.Equal(t, float64(len("id=a")), layers.Mask.Rasters[0][0])

	require.Len(t, layers.HourlyShade, 12)
	for m, r := range layers.HourlyShade {
		require.NotNil(t, r, "month %d", m)
		assert.Equal(t, float64(len("m=")+m+1), r.Rasters[0][0], "month %d", m)
	}
	assert.Len(t, decoder.seen, 14)
}

func TestSolarApiClient_GetDataLayers_DecodeFailure(t *testing.T) {
	srv := newSolarServer(t)
	client := newTestClient(t, srv.URL, &stubDecoder{})

	_, err := client.GetDataLayers(context.Background(), models.LatLng{Latitude: 41.8387, Longitude: -87.6553}, 100,
		models.ViewFullLayers, []models.LayerID{models.LayerMask, models.LayerAnnualFlux})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annualFlux")
}

func TestSolarApiClient_GetDataLayers_MissingURL(t *testing.T) {
	srv := newSolarServer(t)
	client := newTestClient(t, srv.URL, &stubDecoder{})

	_, err := client.GetDataLayers(context.Background(), models.LatLng{Latitude: 41.8387, Longitude: -87.6553}, 100,
		models.ViewFullLayers, []models.LayerID{models.LayerRGB})
	assert.Error(t, err)
}

func TestSolarApiClient_GetDataLayers_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()
	client := newTestClient(t, srv.URL, &stubDecoder{})

	_, err := client.GetDataLayers(context.Background(), models.LatLng{}, 100, models.ViewDSMLayer, []models.LayerID{models.LayerMask})

	var statusErr *api.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "PERMISSION_DENIED")
	assert.Contains(t, err.Error(), "PERMISSION_DENIED")
}

func TestSolarApiClient_FindClosestBuildingInsights(t *testing.T) {
	srv := newSolarServer(t)
	client := newTestClient(t, srv.URL, &stubDecoder{})

	insights, err := client.FindClosestBuildingInsights(context.Background(), models.LatLng{Latitude: 41.8387, Longitude: -87.6553}, "pool-key")
	require.NoError(t, err)
	assert.Equal(t, "buildings/ChIJh0CMPQ7nAGARMDYHMDewPcM", insights.Name)
	assert.Equal(t, 64, insights.SolarPotential.MaxArrayPanelsCount)
	assert.Len(t, insights.SolarPotential.SolarPanelConfigs, 2)
}

func TestGeoTiffDownloader_AppendsKeyForSolarHost(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte("tiff"))
	}))
	defer srv.Close()

	logger := zaptest.NewLogger(t)
	downloader := NewGeoTiffDownloader(api.NewHTTPClient(""), "secret", &stubDecoder{}, logger)

	_, err := downloader.Download(context.Background(), srv.URL+"/v1/geoTiff:get?id=abc")
	require.NoError(t, err)
	assert.Equal(t, "id=abc", gotQuery)

	// only the host name is matched, so it can ride in the path here
	_, err = downloader.Download(context.Background(), srv.URL+"/solar.googleapis.com/v1/geoTiff:get?id=abc")
	require.NoError(t, err)
	assert.Equal(t, "id=abc&key=secret", gotQuery)
}
