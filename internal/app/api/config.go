package api

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	PostgresDSN       string
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	StripeAPIKey      string
	AMQPURL           string
	AuthSecret        string
}

// LoadConfig reads a local .env file when present, then the environment,
// applying defaults.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		StripeAPIKey:      strings.TrimSpace(os.Getenv("STRIPE_API_KEY")),
		AMQPURL:           strings.TrimSpace(os.Getenv("AMQP_URL")),
		AuthSecret:        envDefault("AUTH_TOKEN_SECRET", "dev-secret"),
	}
	return cfg, nil
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
