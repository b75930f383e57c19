package storage

import (
	"context"
	"time"

	"github.com/mcoot/clubhouse-go/internal/model"
)

// Storage defines the interface for user and message persistence.
// Implementations assign IDs at creation time and must report a duplicate
// username from CreateUser as model.ErrUsernameExists; callers treat that
// signal as authoritative over any pre-check.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateMembership(ctx context.Context, id model.UserID, status model.MembershipStatus) error

	// Message operations
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessagesWithAuthors(ctx context.Context) ([]*model.MessageWithAuthor, error)
}

// SessionStore persists the session principal: an opaque token mapped to
// exactly one user ID. Nothing else is ever stored in a session.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, userID model.UserID, ttl time.Duration) error
	// GetSession returns model.ErrSessionNotFound for unknown or expired tokens
	GetSession(ctx context.Context, token string) (model.UserID, error)
	DeleteSession(ctx context.Context, token string) error
}
