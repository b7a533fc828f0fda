package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"solar-leads/api/solar"
	"solar-leads/config"
	"solar-leads/db"
)

func devConfig() *config.Config {
	return &config.Config{
		Env:                  "dev",
		HTTPAddr:             "127.0.0.1:0",
		InsightsRateLimit:    100,
		InsightsRateInterval: time.Second,
		HTTPClientTimeout:    time.Second,
		ShutdownTimeout:      time.Second,
	}
}

func TestNewContainer_Dev(t *testing.T) {
	c, err := NewContainer(context.Background(), devConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &db.MockRedisClient{}, c.RedisClient)
	assert.IsType(t, &solar.SolarApiClientMock{}, c.SolarAPI)
	assert.NotNil(t, c.Throttle)
	assert.NotNil(t, c.SolarHttpServer)

	c.Router.RegisterRoutes()
	rr := httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/area-solar-details?location.latitude=41.8387&location.longitude=-87.6553", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"layers+features"`)
	assert.Contains(t, rr.Body.String(), `"type":"buildingInsights"`)

	rr = httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/area-solar-details/summary", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	c.MuxRouter.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `solar_leads_area_pipeline_runs_total{outcome="done"}`)
}

func TestNewContainer_ProdRequiresRedis(t *testing.T) {
	cfg := devConfig()
	cfg.Env = config.ENV_PROD
	cfg.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewContainer(ctx, cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
