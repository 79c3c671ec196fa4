// Package session keeps the signed-in user between runs.
//
// The stored blob carries the user, the provider's tokens, the time it was
// issued, and a blake3 keyed hash over all of them. The hash key is generated
// once per machine and kept next to the blob, so a hand-edited blob is
// rejected on read.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/models"
)

// Storage keys
const (
	BlobKey       = "session.blob"
	SigningKeyKey = "session.key"
)

// DefaultTTL is how long a stored session stays valid
const DefaultTTL = 24 * time.Hour

// Session is a verified, unexpired session
type Session struct {
	User         models.User
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// blob is the persisted form
type blob struct {
	User         json.RawMessage `json:"user"`
	AccessToken  string          `json:"access_token,omitempty"`
	RefreshToken string          `json:"refresh_token,omitempty"`
	Timestamp    int64           `json:"timestamp"`
	Token        string          `json:"token"`
}

// Manager reads and writes the session blob
type Manager struct {
	store  database.KVStore
	now    func() time.Time
	ttl    time.Duration
	random io.Reader
	logger *slog.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTTL overrides the session lifetime
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// withRandom swaps the key source in tests
func withRandom(r io.Reader) Option {
	return func(m *Manager) { m.random = r }
}

// NewManager creates a session manager over store
func NewManager(store database.KVStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		now:    time.Now,
		ttl:    DefaultTTL,
		random: rand.Reader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save signs and stores a session for user
func (m *Manager) Save(ctx context.Context, user models.User, accessToken, refreshToken string) (*Session, error) {
	if user.ID == "" {
		return nil, ErrNoUser
	}

	key, err := m.signingKey(ctx)
	if err != nil {
		return nil, err
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encoding user: %w", err)
	}

	issued := m.now()
	ts := issued.UnixMilli()
	token, err := sign(key, userJSON, accessToken, refreshToken, ts)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(blob{
		User:         userJSON,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Timestamp:    ts,
		Token:        token,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	if err := m.store.Set(ctx, BlobKey, string(data)); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	m.logger.Info("session saved", "user_id", user.ID)

	issuedAt := time.UnixMilli(ts)
	return &Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IssuedAt:     issuedAt,
		ExpiresAt:    issuedAt.Add(m.ttl),
	}, nil
}

// Load returns the stored session after checking its token and age.
// Tampered or expired blobs are removed before the error is returned.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	raw, err := m.store.Get(ctx, BlobKey)
	if errors.Is(err, database.ErrKeyNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var b blob
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		m.discard(ctx, "unreadable")
		return nil, fmt.Errorf("%w: %v", ErrTampered, err)
	}

	key, err := m.signingKey(ctx)
	if err != nil {
		return nil, err
	}

	expected, err := sign(key, b.User, b.AccessToken, b.RefreshToken, b.Timestamp)
	if err != nil {
		return nil, err
	}
	if !verify(expected, b.Token) {
		m.discard(ctx, "token mismatch")
		return nil, ErrTampered
	}

	issuedAt := time.UnixMilli(b.Timestamp)
	expiresAt := issuedAt.Add(m.ttl)
	if !m.now().Before(expiresAt) {
		m.discard(ctx, "expired")
		return nil, ErrExpired
	}

	var user models.User
	if err := json.Unmarshal(b.User, &user); err != nil {
		m.discard(ctx, "unreadable user")
		return nil, fmt.Errorf("%w: %v", ErrTampered, err)
	}

	return &Session{
		User:         user,
		AccessToken:  b.AccessToken,
		RefreshToken: b.RefreshToken,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
	}, nil
}

// Clear removes the stored session. The signing key is kept.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Delete(ctx, BlobKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (m *Manager) discard(ctx context.Context, reason string) {
	m.logger.Warn("discarding stored session", "reason", reason)
	if err := m.store.Delete(ctx, BlobKey); err != nil {
		m.logger.Error("failed to delete session", "error", err)
	}
}

// signingKey loads the per-machine key, generating it on first use
func (m *Manager) signingKey(ctx context.Context) ([]byte, error) {
	encoded, err := m.store.Get(ctx, SigningKeyKey)
	if err != nil && !errors.Is(err, database.ErrKeyNotFound) {
		return nil, fmt.Errorf("reading signing key: %w", err)
	}

	if err != nil {
		fresh := make([]byte, KeySize)
		if _, err := io.ReadFull(m.random, fresh); err != nil {
			return nil, fmt.Errorf("generating signing key: %w", err)
		}
		encoded, err = m.store.SetIfAbsent(ctx, SigningKeyKey, hex.EncodeToString(fresh))
		if err != nil {
			return nil, fmt.Errorf("storing signing key: %w", err)
		}
	}

	key, err := hex.DecodeString(encoded)
	if err != nil || len(key) != KeySize {
		return nil, fmt.Errorf("stored signing key is malformed")
	}
	return key, nil
}
