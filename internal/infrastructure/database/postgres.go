// Package database manages the PostgreSQL connection pool and schema
// migrations for the record store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/rlcurrall/collection-example/internal/infrastructure/database/migrations"
	"github.com/rlcurrall/collection-example/pkg/logger"
)

const (
	connectAttempts = 5
	connectBaseWait = time.Second
	connectTimeout  = 10 * time.Second
)

// PostgresDB wraps a pgx connection pool. Concurrency safety of the pool is
// pgx's contract; callers just issue queries with a context.
type PostgresDB struct {
	Pool *pgxpool.Pool

	url      string
	maxConns int32
	minConns int32
}

// NewPostgresDB prepares a database handle; Connect establishes the pool.
func NewPostgresDB(url string, maxConns, minConns int32) *PostgresDB {
	return &PostgresDB{url: url, maxConns: maxConns, minConns: minConns}
}

// Connect configures the pool and establishes it, retrying with exponential
// backoff so a briefly unavailable database does not kill startup.
func (db *PostgresDB) Connect(ctx context.Context) error {
	cfg, err := pgxpool.ParseConfig(db.url)
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}
	cfg.MaxConns = db.maxConns
	cfg.MinConns = db.minConns
	cfg.ConnConfig.ConnectTimeout = connectTimeout

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
		cancel()

		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				db.Pool = pool
				logger.Info("database connected", map[string]interface{}{
					"attempt":   attempt,
					"max_conns": db.maxConns,
					"min_conns": db.minConns,
				})
				return nil
			}
			pool.Close()
		}
		lastErr = err

		if attempt < connectAttempts {
			delay := connectBaseWait * time.Duration(1<<uint(attempt-1))
			logger.Warn("database connection failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", connectAttempts, lastErr)
}

// Migrate applies the embedded goose migrations. goose works against
// database/sql, so a short-lived stdlib connection is opened just for this.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	sqlDB, err := sql.Open("pgx", db.url)
	if err != nil {
		return fmt.Errorf("migration db open error: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect error: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// HealthCheck verifies the pool can reach the database.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close shuts down the pool. Safe to call more than once.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}
	db.Pool.Close()
	db.Pool = nil
}
