package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	orderpostgres "github.com/Apurer/go-gin-shop-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/application"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	BatchFetchSize    int
	DefaultPageLimit  int
	SeedSampleData    bool
	AutoMigrate       bool
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SeedSampleData:    isTruthy(os.Getenv("SEED_SAMPLE_DATA")),
		AutoMigrate:       !isFalsy(os.Getenv("AUTO_MIGRATE")),
	}
	var err error
	if cfg.BatchFetchSize, err = positiveInt("ORDER_BATCH_FETCH_SIZE", orderpostgres.DefaultBatchFetchSize); err != nil {
		return Config{}, err
	}
	if cfg.DefaultPageLimit, err = positiveInt("ORDER_PAGE_LIMIT", application.DefaultPageLimit); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func isFalsy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "0" || value == "false" || value == "no"
}
