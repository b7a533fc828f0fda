package di

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"solar-leads/api"
	"solar-leads/api/endato"
	"solar-leads/api/mapbox"
	"solar-leads/api/overpass"
	"solar-leads/api/solar"
	"solar-leads/config"
	"solar-leads/dao/redis"
	"solar-leads/db"
	"solar-leads/metrics"
	"solar-leads/server"
	"solar-leads/server/handlers"
	services "solar-leads/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient      db.RedisClient
	RedisInsightDao  *redis.RedisInsightDAO
	Metrics          *metrics.Metrics
	Throttle         *solar.Throttle
	SolarAPI         solar.SolarAPI
	FootprintsAPI    overpass.OverpassAPI
	Geocoder         mapbox.Geocoder
	PropertyAPI      endato.PropertyAPI
	InsightFetcher   *solar.InsightFetcher
	AreaSolarService *services.AreaSolarService
	SolarService     *services.SolarService
	PropertyService  *services.PropertyService
	AreaSolarHandler *handlers.AreaSolarHandler
	SolarHandler     *handlers.SolarHandler
	PropertyHandler  *handlers.PropertyHandler
	AreaPlotHandler  *handlers.AreaPlotHandler
	MuxRouter        *mux.Router
	Router           *server.Router
	SolarHttpServer  *server.SolarHttpServer

	closers []func() error
}

// NewContainer initializes and wires up all dependencies. Outside prod the
// external APIs are mocked and the cache is kept in memory.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	logger = logger.Named("Container")
	logger.Info("initializing container", zap.String("env", cfg.Env))
	c := &Container{}

	if cfg.IsProd() {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		redisClient, err := db.NewGeoRedisClient(ctx, redisInternalClient, logger)
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.RedisClient = redisClient
		c.closers = append(c.closers, redisInternalClient.Close)
	} else {
		logger.Info("using in-memory redis")
		c.RedisClient = db.NewMockRedisClient()
	}
	c.RedisInsightDao = redis.NewRedisInsightDAO(c.RedisClient, logger)
	c.Metrics = metrics.New()

	if cfg.IsProd() {
		logger.Info("using prod apis")
		newHTTPClient := func(baseURL string) *api.HTTPClient {
			return api.NewHTTPClientWithTimeout(baseURL, cfg.HTTPClientTimeout)
		}
		solarHTTPClient := newHTTPClient(cfg.SolarBaseURL)
		downloader := solar.NewGeoTiffDownloader(solarHTTPClient, cfg.GoogleMapsAPIKey, solar.NewGodalDecoder(), logger)
		c.SolarAPI = solar.NewSolarApiClient(solarHTTPClient, cfg.GoogleMapsAPIKey, downloader, logger)
		c.FootprintsAPI = overpass.NewOverpassApiClient(newHTTPClient(cfg.OverpassBaseURL), logger)
		c.Geocoder = mapbox.NewMapboxApiClient(newHTTPClient(cfg.MapboxBaseURL), cfg.MapboxAccessToken, logger)
		c.PropertyAPI = endato.NewEndatoApiClient(newHTTPClient(cfg.EndatoBaseURL), cfg.EndatoKey, cfg.EndatoPass, logger)
	} else {
		logger.Info("using mock apis")
		c.SolarAPI = solar.NewSolarApiClientMock()
		c.FootprintsAPI = overpass.NewOverpassApiClientMock()
		c.Geocoder = mapbox.NewMapboxApiClientMock()
		c.PropertyAPI = endato.NewEndatoApiClientMock()
	}

	// one throttle for the whole process
	c.Throttle = solar.NewThrottle(cfg.InsightsRateLimit, cfg.InsightsRateInterval)
	keys := cfg.GoogleMapsAPIKeys
	if len(keys) == 0 && !cfg.IsProd() {
		keys = []string{"mock"}
	}
	c.InsightFetcher = solar.NewInsightFetcher(c.SolarAPI, keys, c.Throttle, c.Metrics, logger)

	c.AreaSolarService = services.NewAreaSolarService(c.SolarAPI, c.FootprintsAPI, c.Geocoder, c.InsightFetcher, c.RedisInsightDao, c.Metrics, logger)
	c.SolarService = services.NewSolarService(c.SolarAPI, c.InsightFetcher, c.Metrics, logger)
	c.PropertyService = services.NewPropertyService(c.PropertyAPI, c.RedisInsightDao, c.Metrics, logger)

	c.AreaSolarHandler = handlers.NewAreaSolarHandler(c.AreaSolarService, c.PropertyService, logger)
	c.SolarHandler = handlers.NewSolarHandler(c.SolarService, logger)
	c.PropertyHandler = handlers.NewPropertyHandler(c.PropertyService, logger)
	c.AreaPlotHandler = handlers.NewAreaPlotHandler(c.FootprintsAPI, logger)

	c.MuxRouter = mux.NewRouter()
	c.Router = server.NewRouter(c.AreaSolarHandler, c.SolarHandler, c.PropertyHandler, c.AreaPlotHandler, c.Metrics.Handler(), c.MuxRouter, logger)
	c.SolarHttpServer = server.NewSolarHttpServer(c.Router, c.MuxRouter, cfg.HTTPAddr, cfg.ShutdownTimeout, logger)

	return c, nil
}

// Close releases the connections opened by NewContainer.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
