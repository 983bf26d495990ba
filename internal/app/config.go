package app

import (
	"os"
	"strings"

	"go-taxcalc/internal/shared/connection"
)

type Config struct {
	Port               string
	Postgres           connection.PostgresConfig
	RedisAddr          string
	KafkaBroker        string
	TaxRatesFile       string
	CORSAllowedOrigins []string
}

// LoadConfig reads process settings from the environment; call
// godotenv.Load first to pick up a .env file.
func LoadConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	return Config{
		Port: port,
		Postgres: connection.PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
			Port:     os.Getenv("DB_PORT"),
			SSLMode:  os.Getenv("DB_SSLMODE"),
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		TaxRatesFile:       os.Getenv("TAX_RATES_FILE"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
