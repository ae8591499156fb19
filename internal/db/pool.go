package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectAttempts  = 5
	connectBaseWait  = time.Second
	perAttemptBudget = 5 * time.Second
)

// NewPool connects to Postgres with bounded startup retries, doubling the
// wait between attempts. Ingestion and query traffic share one pool;
// per-record upsert atomicity comes from the ON CONFLICT clauses in the
// repository, not from pool-level locking.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// Search traffic is read-heavy and mostly cache-absorbed; ingestion
	// writes in short bursts. A small pool is enough.
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	wait := connectBaseWait
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, perAttemptBudget)
		pool, err := connect(attemptCtx, config)
		cancel()
		if err == nil {
			log.Println("database connected")
			return pool, nil
		}
		lastErr = err

		log.Printf("database connection attempt %d/%d failed: %v", attempt, connectAttempts, err)
		if attempt < connectAttempts {
			select {
			case <-time.After(wait):
				wait *= 2
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("database connection failed after %d attempts: %w", connectAttempts, lastErr)
}

func connect(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
