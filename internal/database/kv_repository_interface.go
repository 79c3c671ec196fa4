package database

import (
	"context"
	"time"
)

// Entry is one stored key/value pair
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// KVStore is the local-storage analogue used for the session blob and its signing key.
// Consumers depend on this interface so tests can swap in a fake.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	GetEntry(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key, value string) error
	SetIfAbsent(ctx context.Context, key, value string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]Entry, error)
}
