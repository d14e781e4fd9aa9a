// Package config defines the global configuration structure for the
// TripCircle service. Configuration is loaded once at process start and is
// immutable thereafter. It follows 12-Factor principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (highest) -> Dotenv file
//
// Any missing required value or invalid format causes startup to fail fast.
package config

import (
	"time"
)

// Config is the top-level configuration struct for the TripCircle service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"tripcircle-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain configurations
	Server   ServerConfig
	Database DatabaseConfig
	Weather  WeatherConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL string `envconfig:"DATABASE_URL" validate:"required,url"`

	MaxConns          int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns          int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	HealthCheckPeriod time.Duration `envconfig:"DB_HEALTH_CHECK_PERIOD" default:"1m"`
}

// WeatherConfig holds the third-party weather data source configuration.
type WeatherConfig struct {
	APIKey    string        `envconfig:"WEATHER_API_KEY" validate:"required"`
	BaseURL   string        `envconfig:"WEATHER_API_BASE_URL"` // empty selects the production endpoint
	Timeout   time.Duration `envconfig:"WEATHER_API_TIMEOUT" default:"10s"`
	UserAgent string        `envconfig:"WEATHER_USER_AGENT" default:"TripCircle/1.0"`
}
