// Package session maps authenticated users to opaque session tokens and
// reconstitutes the full identity from a token on each request. The only
// durable session payload is the user ID; membership tier is re-read
// from storage every time, so privilege changes apply on the next request.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage"
)

// Manager owns the session token contract
type Manager struct {
	sessions storage.SessionStore
	users    storage.Storage
	ttl      time.Duration
	logger   *slog.Logger
}

// Config holds configuration for the session manager
type Config struct {
	TTL time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		TTL: 7 * 24 * time.Hour,
	}
}

// New creates a new session Manager
func New(sessions storage.SessionStore, users storage.Storage, cfg Config, logger *slog.Logger) *Manager {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Manager{
		sessions: sessions,
		users:    users,
		ttl:      cfg.TTL,
		logger:   logger,
	}
}

// TTL returns the configured session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish binds a fresh token to the user's ID and returns it.
// Re-login simply issues a new token; the caller overwrites its cookie.
func (m *Manager) Establish(ctx context.Context, user *model.User) (string, error) {
	token := generateToken()
	if err := m.sessions.SaveSession(ctx, token, user.ID, m.ttl); err != nil {
		return "", fmt.Errorf("saving session: %w", err)
	}
	return token, nil
}

// Reconstitute resolves a token back to the full user record. An unknown
// or expired token, or a token whose user no longer exists, yields
// (nil, nil): the request proceeds as anonymous. Storage faults are
// returned as errors.
func (m *Manager) Reconstitute(ctx context.Context, token string) (*model.User, error) {
	userID, err := m.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}

	user, err := m.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session user: %w", err)
	}
	return user, nil
}

// Terminate invalidates the session. A store failure is logged rather
// than returned fatal; the caller treats the client as logged out either
// way and the token expires on its own TTL.
func (m *Manager) Terminate(ctx context.Context, token string) {
	if err := m.sessions.DeleteSession(ctx, token); err != nil {
		m.logger.Error("failed to delete session", slog.String("error", err.Error()))
	}
}

// generateToken produces a 128-bit random URL-safe token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
