package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvector "github.com/pgvector/pgvector-go/pgx"
)

const (
	defaultMaxConns = 10
	defaultMinConns = 2
)

// PoolConfig holds tunable parameters for the PostgreSQL connection pool.
// Zero values fall back to the defaults above.
type PoolConfig struct {
	MaxConns int
	MinConns int
}

// buildPoolConfig parses the DSN and applies pool sizing and the
// pgvector type registration hook.
func buildPoolConfig(dsn string, pc PoolConfig) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if pc.MaxConns > 0 {
		config.MaxConns = int32(pc.MaxConns)
	} else {
		config.MaxConns = defaultMaxConns
	}
	if pc.MinConns > 0 {
		config.MinConns = int32(pc.MinConns)
	} else {
		config.MinConns = defaultMinConns
	}

	config.MaxConnLifetime = 1 * time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	// Every connection must speak the vector type used by the document
	// embeddings.
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	return config, nil
}

// NewPostgresDB creates the document store connection pool and verifies
// connectivity with a ping.
func NewPostgresDB(ctx context.Context, dsn string, pc PoolConfig) (*pgxpool.Pool, error) {
	config, err := buildPoolConfig(dsn, pc)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return pool, nil
}
