package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// GoogleMapsAPIKey is used for data layers; GoogleMapsAPIKeys is the
	// round robin pool for building insights.
	GoogleMapsAPIKey  string
	GoogleMapsAPIKeys []string
	MapboxAccessToken string
	EndatoKey         string
	EndatoPass        string

	SolarBaseURL    string
	OverpassBaseURL string
	MapboxBaseURL   string
	EndatoBaseURL   string

	InsightsRateLimit    int
	InsightsRateInterval time.Duration
	HTTPClientTimeout    time.Duration
	ShutdownTimeout      time.Duration

	LogLevel  string
	LogFormat string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SOLAR_API_BASE_URL", SOLAR_API_BASE_URL)
	v.SetDefault("OVERPASS_API_BASE_URL", OVERPASS_API_BASE_URL)
	v.SetDefault("MAPBOX_API_BASE_URL", MAPBOX_API_BASE_URL)
	v.SetDefault("ENDATO_API_BASE_URL", ENDATO_API_BASE_URL)
	v.SetDefault("INSIGHTS_RATE_LIMIT", 1)
	v.SetDefault("INSIGHTS_RATE_INTERVAL", time.Second)
	v.SetDefault("HTTP_CLIENT_TIMEOUT", 30*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	return v
}

// Load reads envFile into the process environment when it exists, then
// builds and validates the Config. An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", envFile, err)
		}
	}

	v := newViper()
	cfg := &Config{
		Env:                  v.GetString("APP_ENV"),
		HTTPAddr:             v.GetString("HTTP_ADDR"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		GoogleMapsAPIKey:     v.GetString("GOOGLE_MAPS_API_KEY"),
		GoogleMapsAPIKeys:    splitList(v.GetString("GOOGLE_MAPS_API_KEYS")),
		MapboxAccessToken:    v.GetString("MAPBOX_ACCESS_TOKEN"),
		EndatoKey:            v.GetString("ENDATO_KEY"),
		EndatoPass:           v.GetString("ENDATO_PASS"),
		SolarBaseURL:         v.GetString("SOLAR_API_BASE_URL"),
		OverpassBaseURL:      v.GetString("OVERPASS_API_BASE_URL"),
		MapboxBaseURL:        v.GetString("MAPBOX_API_BASE_URL"),
		EndatoBaseURL:        v.GetString("ENDATO_API_BASE_URL"),
		InsightsRateLimit:    v.GetInt("INSIGHTS_RATE_LIMIT"),
		InsightsRateInterval: v.GetDuration("INSIGHTS_RATE_INTERVAL"),
		HTTPClientTimeout:    v.GetDuration("HTTP_CLIENT_TIMEOUT"),
		ShutdownTimeout:      v.GetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
	}
	if len(cfg.GoogleMapsAPIKeys) == 0 && cfg.GoogleMapsAPIKey != "" {
		cfg.GoogleMapsAPIKeys = []string{cfg.GoogleMapsAPIKey}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.Env == ENV_PROD
}

// Validate checks the settings. Credentials are only required in prod,
// where the real collaborators are used.
func (c *Config) Validate() error {
	var errs []error
	if c.InsightsRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("INSIGHTS_RATE_LIMIT must be positive, got %d", c.InsightsRateLimit))
	}
	if c.InsightsRateInterval <= 0 {
		errs = append(errs, fmt.Errorf("INSIGHTS_RATE_INTERVAL must be positive, got %s", c.InsightsRateInterval))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	if c.IsProd() {
		if c.GoogleMapsAPIKey == "" {
			errs = append(errs, errors.New("GOOGLE_MAPS_API_KEY is required"))
		}
		if len(c.GoogleMapsAPIKeys) == 0 {
			errs = append(errs, errors.New("GOOGLE_MAPS_API_KEYS is required"))
		}
		if c.MapboxAccessToken == "" {
			errs = append(errs, errors.New("MAPBOX_ACCESS_TOKEN is required"))
		}
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
