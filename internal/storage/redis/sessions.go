package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage"
)

// Key prefix for all clubhouse data
const keyPrefix = "clubhouse"

// sessionKey returns the Redis key for a session token
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// SessionStore is a Redis-backed implementation of the session store.
// The value under each session key is exactly the user ID; expiry rides
// on the key's native TTL.
type SessionStore struct {
	client *redis.Client
}

// New creates a new Redis session store
func New(cfg Config) (*SessionStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &SessionStore{client: client}, nil
}

// NewWithClient creates a session store with an existing client (for testing)
func NewWithClient(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Close closes the Redis connection
func (s *SessionStore) Close() error {
	return s.client.Close()
}

// Ensure SessionStore implements the interface
var _ storage.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) SaveSession(ctx context.Context, token string, userID model.UserID, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(token), string(userID), ttl).Err()
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (model.UserID, error) {
	userID, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrSessionNotFound
		}
		return "", err
	}
	return model.UserID(userID), nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
