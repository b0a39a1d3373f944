package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required"`
	AdminID       int64  `env:"ADMIN_ID,required"`

	GeocoderAPIKey  string        `env:"GEOCODER_API_KEY,required"`
	GeocoderURL     string        `env:"GEOCODER_URL" envDefault:"https://geocode-maps.yandex.ru/1.x/"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`

	WarehouseLat      float64 `env:"WAREHOUSE_LAT" envDefault:"53.136631"`
	WarehouseLon      float64 `env:"WAREHOUSE_LON" envDefault:"25.805957"`
	DeliveryCostPerKm float64 `env:"DELIVERY_COST_PER_KM" envDefault:"1.0"`

	// Optional JSON price list overriding the built-in catalog.
	CatalogPath string `env:"CATALOG_PATH"`

	// Drafts live in memory unless a Redis address is configured.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisTTL      time.Duration `env:"REDIS_TTL" envDefault:"24h"`

	// The order archive is enabled only when DB_HOST is set.
	DBHost            string        `env:"DB_HOST"`
	DBPort            int           `env:"DB_PORT" envDefault:"5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.AdminID == 0 {
		return nil, fmt.Errorf("admin ID must be non-zero")
	}
	if cfg.DeliveryCostPerKm < 0 {
		return nil, fmt.Errorf("delivery cost per km must be non-negative")
	}
	if cfg.DBHost != "" && (cfg.DBUser == "" || cfg.DBName == "") {
		return nil, fmt.Errorf("DB_USER and DB_NAME are required when DB_HOST is set")
	}

	return &cfg, nil
}

// ArchiveEnabled reports whether completed orders should be written to
// Postgres.
func (c *Config) ArchiveEnabled() bool {
	return c.DBHost != ""
}
