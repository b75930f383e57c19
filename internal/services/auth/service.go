package auth

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
	// ErrUnknownUser and ErrBadPassword are distinguished internally only;
	// callers must collapse both into one message so the response never
	// reveals whether an account exists
	ErrUnknownUser = errors.New("unknown username")
	ErrBadPassword = errors.New("incorrect password")
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// Service handles credential verification and account registration
type Service struct {
	storage storage.Storage
	hasher  PasswordHasher
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, hasher PasswordHasher, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		hasher:  hasher,
		clock:   clk,
		logger:  logger,
	}
}

// Authenticate verifies a username/password pair and returns the full
// user record on success. The stored hash never travels further than
// the verification call here.
//
// The hash comparison only runs when the username resolves, so a miss
// returns faster than a wrong password. Accepted trade-off: the two
// outcomes already render identically to the client.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrBadPassword
	}

	return user, nil
}

// RegisterInput is the new-account form submission
type RegisterInput struct {
	FirstName       string
	LastName        string
	Username        string
	Password        string
	ConfirmPassword string
}

// Register validates the input, hashes the password, and creates the
// user at the basic tier. All validation failures are collected and
// returned together as ValidationErrors; a taken username is reported
// the same way so the form can re-render with prior input.
//
// Register does not establish a session; the caller composes that with
// the session manager.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if errs := validateRegistration(input); len(errs) > 0 {
		return nil, errs
	}

	// Advisory pre-check for a friendlier error; the store's unique
	// constraint is the authoritative duplicate signal
	_, err := s.storage.GetUserByUsername(ctx, input.Username)
	if err == nil {
		return nil, duplicateUsernameError()
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("checking username: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Username:     input.Username,
		PasswordHash: digest,
		Membership:   model.MembershipBasic,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameExists) {
			// Lost the race between pre-check and insert
			return nil, duplicateUsernameError()
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("user_id", string(user.ID)))
	return user, nil
}

func validateRegistration(input RegisterInput) model.ValidationErrors {
	var errs model.ValidationErrors

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, model.FieldError{Field: "first_name", Message: "First name is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, model.FieldError{Field: "last_name", Message: "Last name is required"})
	}
	if !validEmail(input.Username) {
		errs = append(errs, model.FieldError{Field: "username", Message: "Username must be a valid email address"})
	}
	if utf8.RuneCountInString(input.Password) < MinPasswordLength {
		errs = append(errs, model.FieldError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)})
	}
	if input.ConfirmPassword != input.Password {
		errs = append(errs, model.FieldError{Field: "confirm_password", Message: "Passwords do not match"})
	}

	return errs
}

func duplicateUsernameError() model.ValidationErrors {
	return model.ValidationErrors{{Field: "username", Message: "Username is already taken"}}
}
