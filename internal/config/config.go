package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`

	SheetsSource    string        `mapstructure:"SHEETS_SOURCE"`
	SheetsBaseURL   string        `mapstructure:"SHEETS_BASE_URL"`
	SheetsAPIKey    string        `mapstructure:"SHEETS_API_KEY"`
	SpreadsheetID   string        `mapstructure:"SPREADSHEET_ID"`
	SheetsXLSXPath  string        `mapstructure:"SHEETS_XLSX_PATH"`
	PlacesRange     string        `mapstructure:"PLACES_RANGE"`
	ImagesRange     string        `mapstructure:"IMAGES_RANGE"`
	VideosRange     string        `mapstructure:"VIDEOS_RANGE"`
	HTTPTimeout     time.Duration `mapstructure:"HTTP_TIMEOUT"`
	FetchRetries    uint64        `mapstructure:"FETCH_RETRIES"`
	FetchRetryDelay time.Duration `mapstructure:"FETCH_RETRY_DELAY"`

	CacheTTL        time.Duration `mapstructure:"CACHE_TTL"`
	CacheServeStale bool          `mapstructure:"CACHE_SERVE_STALE"`

	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	CalendarURL string `mapstructure:"CALENDAR_URL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SHEETS_SOURCE", "api")
	v.SetDefault("SHEETS_BASE_URL", "https://sheets.googleapis.com")
	v.SetDefault("SHEETS_API_KEY", "")
	v.SetDefault("SPREADSHEET_ID", "")
	v.SetDefault("SHEETS_XLSX_PATH", "")
	v.SetDefault("PLACES_RANGE", "Sheet1!A1:Z600000")
	v.SetDefault("IMAGES_RANGE", "ImageMapping!A1:Z100000")
	v.SetDefault("VIDEOS_RANGE", "YouTube Links!A1:Z10000")
	v.SetDefault("HTTP_TIMEOUT", "15s")
	v.SetDefault("FETCH_RETRIES", 2)
	v.SetDefault("FETCH_RETRY_DELAY", "500ms")

	v.SetDefault("CACHE_TTL", "24h")
	v.SetDefault("CACHE_SERVE_STALE", true)

	v.SetDefault("STORE_DRIVER", "memory")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CALENDAR_URL", "https://augmentic.in/calendar_data/calendar_api.json")
}

// LoadConfig reads configuration from app.env in path, then overrides it with environment variables.
// A missing app.env is not an error.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	return config, config.Validate()
}

// Validate checks the combinations the rest of the program relies on.
func (c Config) Validate() error {
	switch c.SheetsSource {
	case "api":
		if c.SpreadsheetID == "" {
			return errors.New("config: SPREADSHEET_ID is required when SHEETS_SOURCE=api")
		}
	case "xlsx":
		if c.SheetsXLSXPath == "" {
			return errors.New("config: SHEETS_XLSX_PATH is required when SHEETS_SOURCE=xlsx")
		}
	default:
		return fmt.Errorf("config: unknown SHEETS_SOURCE %q", c.SheetsSource)
	}

	switch c.StoreDriver {
	case "memory", "redis":
	case "postgres":
		if c.DBSource == "" {
			return errors.New("config: DB_SOURCE is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.FetchRetries < 1 {
		return errors.New("config: FETCH_RETRIES must be at least 1")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("config: CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	return nil
}
