// Package factory wires the application's services and storage backends.
package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/clubhouse-go/internal/config"
	"github.com/mcoot/clubhouse-go/internal/dependencies/clock"
	"github.com/mcoot/clubhouse-go/internal/services/auth"
	"github.com/mcoot/clubhouse-go/internal/services/board"
	"github.com/mcoot/clubhouse-go/internal/services/membership"
	"github.com/mcoot/clubhouse-go/internal/services/session"
	"github.com/mcoot/clubhouse-go/internal/storage"
	"github.com/mcoot/clubhouse-go/internal/storage/memory"
	"github.com/mcoot/clubhouse-go/internal/storage/postgres"
	redisstorage "github.com/mcoot/clubhouse-go/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService       *auth.Service
	SessionManager    *session.Manager
	MembershipService *membership.Service
	BoardService      *board.Service

	closers []io.Closer
}

// New creates a new application with all dependencies wired according to cfg.
// Postgres storage runs its migrations during construction.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var closers []io.Closer

	// The in-memory store implements both interfaces, so it can back either
	// concern when selected
	memStore := memory.New(clk)

	var store storage.Storage
	switch cfg.StorageType {
	case config.StorageTypeMemory:
		store = memStore
	case config.StorageTypePostgres:
		pgStore, err := postgres.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		closers = append(closers, pgStore)
		store = pgStore
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}

	var sessions storage.SessionStore
	switch cfg.SessionStoreType {
	case config.SessionStoreTypeMemory:
		sessions = memStore
	case config.SessionStoreTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisSessions, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		closers = append(closers, redisSessions)
		sessions = redisSessions
	default:
		return nil, fmt.Errorf("invalid session store type %q", cfg.SessionStoreType)
	}

	hasher := auth.NewBcryptHasher(0)
	passcodes := membership.Passcodes{
		Member: cfg.MemberPasscode,
		Admin:  cfg.AdminPasscode,
	}
	sessionCfg := session.Config{TTL: cfg.SessionTTL}

	app := newWithDependencies(store, sessions, clk, hasher, passcodes, sessionCfg, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	sessions storage.SessionStore,
	clk clock.Clock,
	hasher auth.PasswordHasher,
	passcodes membership.Passcodes,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, hasher, clk, logger)
	sessionManager := session.New(sessions, store, sessionCfg, logger)
	membershipService := membership.New(store, passcodes, logger)
	boardService := board.New(store, clk, logger)

	return &App{
		Storage:           store,
		Sessions:          sessions,
		Clock:             clk,
		AuthService:       authService,
		SessionManager:    sessionManager,
		MembershipService: membershipService,
		BoardService:      boardService,
	}
}

// Close releases any external connections the app holds
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
