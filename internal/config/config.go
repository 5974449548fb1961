package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the wildfire and weather alert service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8982"`

	// OpenWeatherMap configuration
	WeatherAPIKey string `env:"WEATHER_API_KEY,required"`
	WeatherURL    string `env:"WEATHER_URL,default=https://api.openweathermap.org/data/2.5/weather"`

	// Environment Canada battleboard feed (fixed regional feed, not queried
	// by geography)
	AlertFeedURL string `env:"ALERT_FEED_URL,default=https://weather.gc.ca/rss/battleboard/bc_e.xml"`

	// BC Wildfire Service feature service (primary wildfire source)
	WildfirePrimaryURL string `env:"WILDFIRE_PRIMARY_URL,default=https://services6.arcgis.com/ubm4tcTYICKBpist/arcgis/rest/services/BCWS_ActiveFires_PublicView/FeatureServer/0/query"`

	// BC Geographic Warehouse WFS endpoint (fallback wildfire source)
	WildfireFallbackURL      string `env:"WILDFIRE_FALLBACK_URL,default=https://openmaps.gov.bc.ca/geo/pub/ows"`
	WildfireFallbackTypeName string `env:"WILDFIRE_FALLBACK_TYPENAME,default=pub:WHSE_LAND_AND_NATURAL_RESOURCE.PROT_CURRENT_FIRE_PNTS_SP"`

	// Default map center used until a location fix arrives (downtown Vancouver)
	DefaultLatitude  float64 `env:"DEFAULT_LATITUDE,default=49.2827"`
	DefaultLongitude float64 `env:"DEFAULT_LONGITUDE,default=-123.1207"`

	// OpenAI configuration (optional; the summary panel skips the outlook
	// paragraph when no key is set)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4o-mini"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
