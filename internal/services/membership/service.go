// Package membership implements passcode-gated privilege escalation
// between the board's tiers.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage"
)

// Errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrWrongPasscode    = errors.New("wrong passcode")
	ErrUnknownTier      = errors.New("unknown membership tier")
)

// Passcodes holds the shared secret per escalatable tier
type Passcodes struct {
	Member string
	Admin  string
}

// Service validates escalation passcodes and applies tier changes
type Service struct {
	storage   storage.Storage
	passcodes Passcodes
	logger    *slog.Logger
}

// New creates a new membership Service
func New(storage storage.Storage, passcodes Passcodes, logger *slog.Logger) *Service {
	return &Service{
		storage:   storage,
		passcodes: passcodes,
		logger:    logger,
	}
}

// Escalate sets the user's membership to tier if the submitted passcode
// matches the tier's configured secret.
//
// These are deliberately "set" rather than "promote" semantics: an admin
// submitting the member passcode ends up at member. Stakeholder-visible
// policy decision, not an oversight.
func (s *Service) Escalate(ctx context.Context, user *model.User, tier model.MembershipStatus, passcode string) error {
	if user == nil {
		return ErrNotAuthenticated
	}

	secret, err := s.passcodeFor(tier)
	if err != nil {
		return err
	}

	if passcode != secret {
		return ErrWrongPasscode
	}

	if err := s.storage.UpdateMembership(ctx, user.ID, tier); err != nil {
		return fmt.Errorf("updating membership: %w", err)
	}
	user.Membership = tier

	s.logger.Info("membership changed",
		slog.String("user_id", string(user.ID)),
		slog.String("tier", string(tier)),
	)
	return nil
}

func (s *Service) passcodeFor(tier model.MembershipStatus) (string, error) {
	switch tier {
	case model.MembershipMember:
		return s.passcodes.Member, nil
	case model.MembershipAdmin:
		return s.passcodes.Admin, nil
	default:
		// basic is the starting tier, never a target
		return "", ErrUnknownTier
	}
}
