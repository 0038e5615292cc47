package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServiceName string `mapstructure:"SERVICE_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	DBSource        string        `mapstructure:"DB_SOURCE"`
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	CORSOrigins     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// An empty address disables the geocode cache.
	RedisAddress    string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	GeocodeCacheTTL time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`
	GeocoderEnabled bool          `mapstructure:"GEOCODER_ENABLED"`

	LocationTimeout time.Duration `mapstructure:"LOCATION_TIMEOUT"`
	LocationMaxAge  time.Duration `mapstructure:"LOCATION_MAX_AGE"`
	TieBandKm       float64       `mapstructure:"TIE_BAND_KM"`
	RatingBatchSize int           `mapstructure:"RATING_BATCH_SIZE"`
}

var defaults = map[string]any{
	"ENVIRONMENT":          "development",
	"SERVICE_NAME":         "provider-match-api",
	"LOG_LEVEL":            "info",
	"DB_SOURCE":            "",
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"SHUTDOWN_TIMEOUT":     "10s",
	"CORS_ALLOWED_ORIGINS": "*",
	"REDIS_ADDRESS":        "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"GEOCODE_CACHE_TTL":    "24h",
	"GEOCODER_ENABLED":     true,
	"LOCATION_TIMEOUT":     "10s",
	"LOCATION_MAX_AGE":     "5m",
	"TIE_BAND_KM":          5.0,
	"RATING_BATCH_SIZE":    30,
}

// LoadConfig reads configuration from app.env in path, overridden by environment variables.
// A local .env file is loaded into the environment first when present.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.DBSource == "":
		return errors.New("config: DB_SOURCE is required")
	case c.ServerAddress == "":
		return errors.New("config: SERVER_ADDRESS is required")
	case c.LocationTimeout <= 0:
		return fmt.Errorf("config: LOCATION_TIMEOUT must be positive, got %s", c.LocationTimeout)
	case c.LocationMaxAge < 0:
		return fmt.Errorf("config: LOCATION_MAX_AGE must not be negative, got %s", c.LocationMaxAge)
	case c.TieBandKm <= 0:
		return fmt.Errorf("config: TIE_BAND_KM must be positive, got %g", c.TieBandKm)
	case c.RatingBatchSize <= 0:
		return fmt.Errorf("config: RATING_BATCH_SIZE must be positive, got %d", c.RatingBatchSize)
	case len(c.AllowedOrigins()) == 0:
		return errors.New("config: CORS_ALLOWED_ORIGINS must list at least one origin")
	case c.RedisAddress != "" && c.GeocodeCacheTTL <= 0:
		return fmt.Errorf("config: GEOCODE_CACHE_TTL must be positive, got %s", c.GeocodeCacheTTL)
	}
	return nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
