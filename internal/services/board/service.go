// Package board handles posting and listing messages. Posting is gated
// on the author's membership tier; listing is open to everyone.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/clubhouse-go/internal/dependencies/clock"
	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage"
)

// Errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotMember        = errors.New("posting requires membership")
)

// Service handles message creation and listing
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new board Service
func New(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Post creates a message attributed to author. The author must hold at
// least the member tier; titles are capped at 255 characters.
func (s *Service) Post(ctx context.Context, author *model.User, title, text string) (*model.Message, error) {
	if author == nil {
		return nil, ErrNotAuthenticated
	}
	if !author.Membership.CanPost() {
		return nil, ErrNotMember
	}

	if errs := validateMessage(title, text); len(errs) > 0 {
		return nil, errs
	}

	msg := &model.Message{
		Title:     title,
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	s.logger.Info("message posted",
		slog.String("message_id", string(msg.ID)),
		slog.String("author_id", string(author.ID)),
	)
	return msg, nil
}

// List returns every message, newest first, with author display names
func (s *Service) List(ctx context.Context) ([]*model.MessageWithAuthor, error) {
	messages, err := s.storage.ListMessagesWithAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

func validateMessage(title, text string) model.ValidationErrors {
	var errs model.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errs = append(errs, model.FieldError{Field: "title", Message: "Title is required"})
	} else if utf8.RuneCountInString(title) > model.MaxMessageTitleLength {
		errs = append(errs, model.FieldError{
			Field:   "title",
			Message: fmt.Sprintf("Title must be at most %d characters", model.MaxMessageTitleLength),
		})
	}
	if strings.TrimSpace(text) == "" {
		errs = append(errs, model.FieldError{Field: "text", Message: "Message text is required"})
	}

	return errs
}
