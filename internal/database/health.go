package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker reports whether the backing stores answer within a short deadline.
type Checker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewChecker creates a Checker.
func NewChecker(pool *pgxpool.Pool, rdb *redis.Client) *Checker {
	return &Checker{pool: pool, rdb: rdb}
}

// Check pings PostgreSQL and Redis and returns a per-store status map.
// The error is non-nil when any store is down.
func (c *Checker) Check(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"postgres": "ok", "redis": "ok"}
	var firstErr error

	if err := c.pool.Ping(ctx); err != nil {
		status["postgres"] = "down"
		firstErr = fmt.Errorf("ping postgres: %w", err)
	}
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
		if firstErr == nil {
			firstErr = fmt.Errorf("ping redis: %w", err)
		}
	}
	return status, firstErr
}
