package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const retryInterval = 2 * time.Second

// PoolSettings controls connection pool sizing and startup retry behavior.
// Zero values fall back to defaults suited to the report workload: short
// bursts of writes during a generation run, mostly-idle otherwise.
type PoolSettings struct {
	MaxConns       int32
	MinConns       int32
	ConnectRetries int
}

func (s PoolSettings) withDefaults() PoolSettings {
	if s.MaxConns < 1 {
		s.MaxConns = 10
	}
	if s.MinConns < 1 {
		s.MinConns = 2
	}
	if s.ConnectRetries < 1 {
		s.ConnectRetries = 5
	}
	return s
}

// poolConfig parses the database URL and applies the pool settings.
func poolConfig(databaseURL string, settings PoolSettings) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	settings = settings.withDefaults()
	config.MaxConns = settings.MaxConns
	config.MinConns = settings.MinConns
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	return config, nil
}

// NewPool connects to the report store, retrying while the database comes up
// (the server is typically scheduled alongside Postgres).
func NewPool(ctx context.Context, databaseURL string, settings PoolSettings) (*pgxpool.Pool, error) {
	config, err := poolConfig(databaseURL, settings)
	if err != nil {
		return nil, err
	}

	retries := settings.withDefaults().ConnectRetries

	var pool *pgxpool.Pool
	for attempt := 1; attempt <= retries; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				log.Printf("report store connected (pool max=%d min=%d)", config.MaxConns, config.MinConns)
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}

		log.Printf("report store connection attempt %d/%d failed: %v", attempt, retries, err)
		if attempt < retries {
			time.Sleep(retryInterval)
		}
	}

	return nil, fmt.Errorf("report store connection failed after %d attempts: %w", retries, err)
}
