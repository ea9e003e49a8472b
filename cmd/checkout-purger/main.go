package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	orderspostgres "github.com/johithjpr-lab/ecommerce-platform/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/johithjpr-lab/ecommerce-platform/internal/platform/postgres"
)

// checkout-purger removes expired checkout idempotency keys and finished
// placement attempts. Meant to run on a schedule (cron or a Kubernetes
// CronJob).
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge checkout records")
	}

	keys := orderspostgres.NewIdempotencyStore(db)
	purgedKeys, err := keys.PurgeExpired(ctx, keyTTLFromEnv())
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}

	attempts := orderspostgres.NewAttemptStore(db)
	purgedAttempts, err := attempts.PurgeFinished(ctx, attemptRetentionFromEnv())
	if err != nil {
		log.Fatalf("failed to purge placement attempts: %v", err)
	}

	log.Printf("checkout purge completed: %d idempotency keys, %d attempts", purgedKeys, purgedAttempts)
}

func keyTTLFromEnv() time.Duration {
	return hoursFromEnv("IDEMPOTENCY_KEY_TTL_HOURS", orderspostgres.DefaultKeyTTL)
}

func attemptRetentionFromEnv() time.Duration {
	return hoursFromEnv("ATTEMPT_RETENTION_HOURS", orderspostgres.DefaultAttemptRetention)
}

func hoursFromEnv(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return fallback
	}
	return time.Duration(hours) * time.Hour
}
