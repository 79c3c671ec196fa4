package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// KVRepo handles all key/value database operations.
type KVRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ KVStore = (*KVRepo)(nil)

// NewKVRepo wraps an initialized database
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db, now: time.Now}
}

// WithClock overrides the timestamp source
func (r *KVRepo) WithClock(now func() time.Time) *KVRepo {
	r.now = now
	return r
}

// Get returns the value for key, or ErrKeyNotFound
func (r *KVRepo) Get(ctx context.Context, key string) (string, error) {
	entry, err := r.GetEntry(ctx, key)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// GetEntry returns the full row for key
func (r *KVRepo) GetEntry(ctx context.Context, key string) (*Entry, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}

	var (
		entry     Entry
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM kv WHERE key = ?`, key,
	).Scan(&entry.Key, &entry.Value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	entry.UpdatedAt = fromMillis(updatedAt)
	return &entry, nil
}

// Set stores value under key, replacing any previous value
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, toMillis(r.now()),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// SetIfAbsent stores value only when key is unset and returns whichever value is stored afterwards
func (r *KVRepo) SetIfAbsent(ctx context.Context, key, value string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrEmptyKey
	}

	var stored string
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO NOTHING`,
			key, value, toMillis(r.now()),
		); err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&stored)
	})
	if err != nil {
		return "", fmt.Errorf("writing %s: %w", key, err)
	}
	return stored, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// List returns every entry whose key starts with prefix, ordered by key
func (r *KVRepo) List(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value, updated_at FROM kv
		 WHERE substr(key, 1, length(?)) = ?
		 ORDER BY key`,
		prefix, prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			updatedAt int64
		)
		if err := rows.Scan(&entry.Key, &entry.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning kv row: %w", err)
		}
		entry.UpdatedAt = fromMillis(updatedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kv rows: %w", err)
	}

	return entries, nil
}
