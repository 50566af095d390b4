// Package storage is the local persistence adapter: a durable key-value
// store backed by an on-disk SQLite database. Each key holds a
// directly-serialized snapshot of one store's collection.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var ErrKeyNotFound = errors.New("key not found")

// Well-known keys persisted by the state stores
const (
	KeyAuthToken = "auth_token"
	KeyCartItems = "cart_items"
	KeyWishlist  = "wishlist"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// KV is a durable key-value store
type KV struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at dir/state.db and ensures
// the schema exists
func Open(dir string) (*KV, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sqlx.Open("sqlite3", filepath.Join(dir, "state.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open local state database: %w", err)
	}

	// SQLite handles one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local state schema: %w", err)
	}

	return &KV{db: db}, nil
}

// Close closes the underlying database
func (s *KV) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ErrKeyNotFound
func (s *KV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *KV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// GetJSON reads key and unmarshals its value into v
func (s *KV) GetJSON(ctx context.Context, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode key %q: %w", key, err)
	}
	return nil
}

// SetJSON marshals v and stores it under key
func (s *KV) SetJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode key %q: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
