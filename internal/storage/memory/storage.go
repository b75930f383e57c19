package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/clubhouse-go/internal/dependencies/clock"
	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage"
)

// Storage is an in-memory implementation of the storage and session
// store interfaces, used for development and tests
type Storage struct {
	mu sync.RWMutex

	clock clock.Clock

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	messages      []*model.Message
	sessions      map[string]sessionEntry
}

type sessionEntry struct {
	userID    model.UserID
	expiresAt time.Time
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:         clk,
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		sessions:      make(map[string]sessionEntry),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage      = (*Storage)(nil)
	_ storage.SessionStore = (*Storage)(nil)
)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usernameIndex[user.Username]; taken {
		return model.ErrUsernameExists
	}

	user.ID = model.UserID(uuid.NewString())
	stored := *user
	s.users[stored.ID] = &stored
	s.usernameIndex[stored.Username] = stored.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) UpdateMembership(ctx context.Context, id model.UserID, status model.MembershipStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Membership = status
	return nil
}

// Message operations

func (s *Storage) CreateMessage(ctx context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[msg.AuthorID]; !ok {
		return model.ErrUserNotFound
	}

	msg.ID = model.MessageID(uuid.NewString())
	stored := *msg
	s.messages = append(s.messages, &stored)
	return nil
}

func (s *Storage) ListMessagesWithAuthors(ctx context.Context) ([]*model.MessageWithAuthor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.MessageWithAuthor, 0, len(s.messages))
	for _, msg := range s.messages {
		entry := &model.MessageWithAuthor{Message: *msg}
		if author, ok := s.users[msg.AuthorID]; ok {
			entry.AuthorName = author.DisplayName()
		}
		out = append(out, entry)
	}

	// Newest first
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, token string, userID model.UserID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = sessionEntry{
		userID:    userID,
		expiresAt: s.clock.Now().Add(ttl),
	}
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (model.UserID, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", model.ErrSessionNotFound
	}
	if s.clock.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", model.ErrSessionNotFound
	}
	return entry.userID, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
