package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string
	// APIKey guards /api/v1 when set.
	APIKey string

	SlotDriver    string // sqlite|redis|memory
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	RatesFile string
	NotifyTTL time.Duration

	WeatherEndpoint string
	WeatherAPIKey   string
	MarketURL       string

	ExportArchive     string // none|fs|s3
	ExportDir         string
	ExportS3Bucket    string
	ExportS3Region    string
	ExportS3Endpoint  string
	ExportS3PathStyle bool

	// EnvFileErr is set when a .env file exists but could not be read.
	EnvFileErr error
}

func Load() AppConfig {
	// Load .env file if it exists
	envErr := godotenv.Load()
	if envErr != nil && os.IsNotExist(envErr) {
		envErr = nil
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:      get("PORT", "8080"),
		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: get("LOG_FORMAT", "json"),
		APIKey:    get("API_KEY", ""),

		SlotDriver:    strings.ToLower(get("SLOT_DRIVER", "sqlite")),
		DBPath:        get("DB_PATH", "agrimanage.db"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       atoi(get("REDIS_DB", "0"), 0),
		RedisPrefix:   get("SLOT_REDIS_PREFIX", "agrimanage:"),

		RatesFile: get("RATES_FILE", ""),
		NotifyTTL: duration(get("NOTIFY_TTL", "3s"), 3*time.Second),

		WeatherEndpoint: get("WEATHER_ENDPOINT", "https://api.openweathermap.org"),
		WeatherAPIKey:   get("WEATHER_API_KEY", ""),
		MarketURL:       get("MARKET_URL", ""),

		ExportArchive:     strings.ToLower(get("EXPORT_ARCHIVE", "none")),
		ExportDir:         get("EXPORT_DIR", "exports"),
		ExportS3Bucket:    get("EXPORT_S3_BUCKET", ""),
		ExportS3Region:    get("EXPORT_S3_REGION", "us-east-1"),
		ExportS3Endpoint:  get("EXPORT_S3_ENDPOINT", ""),
		ExportS3PathStyle: get("EXPORT_S3_PATH_STYLE", "false") == "true",

		EnvFileErr: envErr,
	}
	return cfg
}

// Redacted is the config as it may be logged.
func (c AppConfig) Redacted() AppConfig {
	if c.WeatherAPIKey != "" {
		c.WeatherAPIKey = "***"
	}
	if c.APIKey != "" {
		c.APIKey = "***"
	}
	if c.RedisPassword != "" {
		c.RedisPassword = "***"
	}
	return c
}

func atoi(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

func duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
