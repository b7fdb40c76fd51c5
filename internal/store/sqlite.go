package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite is a Backend in a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates the database file if needed, applies migrations and opens it.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := RunMigrations("sqlite://" + path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Get implements Backend.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var content string
	err := s.db.QueryRowContext(ctx, `SELECT content FROM saved_plans WHERE key = ?`, key).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved plan: %w", err)
	}
	return []byte(content), nil
}

// Put implements Backend.
func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_plans (key, content, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET content = excluded.content, updated_at = CURRENT_TIMESTAMP`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to write saved plan: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saved_plans WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete saved plan: %w", err)
	}
	return nil
}

// Close implements Backend.
func (s *SQLite) Close() error {
	return s.db.Close()
}
