package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv   string
	LogLevel string

	ClientHTTPPort int
	AdminHTTPPort  int

	Postgres PostgresConfig

	JWTSecret       string
	TokenTTLMinutes int

	ShippingFlat decimal.Decimal
	TaxRate      decimal.Decimal
}

type PostgresConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	DB      string
	SSLMode string
}

func Load() Config {
	return Config{
		AppEnv:         getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ClientHTTPPort: getEnvInt("CLIENT_HTTP_PORT", 8080),
		AdminHTTPPort:  getEnvInt("ADMIN_HTTP_PORT", 8081),
		Postgres: PostgresConfig{
			Host:    getEnv("POSTGRES_HOST", "localhost"),
			Port:    getEnvInt("POSTGRES_PORT", 5432),
			User:    getEnv("POSTGRES_USER", "shoeshop"),
			Pass:    getEnv("POSTGRES_PASSWORD", "shoeshoppassword"),
			DB:      getEnv("POSTGRES_DB", "shoeshop_db"),
			SSLMode: getEnv("POSTGRES_SSLMODE", "disable"),
		},
		JWTSecret:       getEnv("JWT_SECRET", "dev-only-secret"),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),
		ShippingFlat:    getEnvDecimal("SHIPPING_FLAT", "10.00"),
		TaxRate:         getEnvDecimal("TAX_RATE", "0.08"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDecimal(key, def string) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(def)
	}

	return d
}
