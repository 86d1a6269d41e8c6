package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	// Shopwire storefront API.
	ShopwireURL     string
	ShopwireToken   string
	ShopwireStoreID string
	ShopwireContact string

	// DefaultLocale drives localized-name resolution.
	DefaultLocale string

	// DBPath is the embedded sqlite file for operator-saved configuration.
	DBPath string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:         getenv("APP_SERVICE", "storewatch"),
		AppVersion:      getenv("APP_VERSION", "0.1.0"),
		Environment:     getenv("ENVIRONMENT", "development"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShopwireURL:     strings.TrimRight(getenv("SHOPWIRE_API_URL", "https://api.shopwire.test/v1"), "/"),
		ShopwireToken:   strings.TrimSpace(getenv("SHOPWIRE_TOKEN", "")),
		ShopwireStoreID: strings.TrimSpace(getenv("SHOPWIRE_STORE_ID", "")),
		ShopwireContact: getenv("SHOPWIRE_CONTACT", "storewatch (ops@storewatch.local)"),
		DefaultLocale:   getenv("DEFAULT_LOCALE", "es"),
		DBPath:          getenv("DB_PATH", "storewatch.db"),
	}
}

// Module wires the application config and the fee schedule holder.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewFeeConfigHolder),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
