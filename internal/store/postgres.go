package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a Backend in a PostgreSQL table.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres applies migrations and establishes a connection pool to the database
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if err := RunMigrations(pgxMigrateURL(databaseURL)); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Get implements Backend.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var content string
	err := p.pool.QueryRow(ctx, `SELECT content FROM saved_plans WHERE key = $1`, key).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved plan: %w", err)
	}
	return []byte(content), nil
}

// Put implements Backend.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO saved_plans (key, content, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET content = $2, updated_at = NOW()`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to write saved plan: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM saved_plans WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete saved plan: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
