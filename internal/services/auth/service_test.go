package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubhouse-go/internal/dependencies/mocks"
	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage/memory"
	"github.com/mcoot/clubhouse-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	hasher  PasswordHasher
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New(s.clock)
	s.hasher = NewBcryptHasher(bcrypt.MinCost)
	s.service = New(s.storage, s.hasher, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName:       "Alice",
		LastName:        "Arnold",
		Username:        "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, err := s.service.Register(s.ctx, validInput())
	s.Require().NoError(err)

	s.NotEmpty(user.ID)
	s.Equal("alice@example.com", user.Username)
	s.Equal(model.MembershipBasic, user.Membership)
}

func (s *ServiceSuite) TestRegisterHashVerifiesAgainstPassword() {
	_, err := s.service.Register(s.ctx, validInput())
	s.Require().NoError(err)

	stored, err := s.storage.GetUserByUsername(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.NotEqual("secret1", stored.PasswordHash)
	s.True(s.hasher.Verify("secret1", stored.PasswordHash))
}

func (s *ServiceSuite) TestRegisterTrimsNames() {
	input := validInput()
	input.FirstName = "  Alice "
	input.LastName = " Arnold  "

	user, err := s.service.Register(s.ctx, input)
	s.Require().NoError(err)
	s.Equal("Alice", user.FirstName)
	s.Equal("Arnold", user.LastName)
}

func (s *ServiceSuite) TestRegisterCollectsAllValidationErrors() {
	input := RegisterInput{
		FirstName:       "  ",
		LastName:        "",
		Username:        "not-an-email",
		Password:        "abc",
		ConfirmPassword: "abcd",
	}

	_, err := s.service.Register(s.ctx, input)
	s.Require().Error(err)

	var errs model.ValidationErrors
	s.Require().ErrorAs(err, &errs)
	s.Len(errs, 5)

	// Errors come back in form field order
	s.Equal("first_name", errs[0].Field)
	s.Equal("last_name", errs[1].Field)
	s.Equal("username", errs[2].Field)
	s.Equal("password", errs[3].Field)
	s.Equal("confirm_password", errs[4].Field)
}

func (s *ServiceSuite) TestRegisterConfirmMismatchCreatesNoUser() {
	input := validInput()
	input.ConfirmPassword = "different"

	_, err := s.service.Register(s.ctx, input)

	var errs model.ValidationErrors
	s.Require().ErrorAs(err, &errs)
	s.NotEmpty(errs.For("confirm_password"))

	_, err = s.storage.GetUserByUsername(s.ctx, input.Username)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestRegisterShortPasswordRejected() {
	input := validInput()
	input.Password = "12345"
	input.ConfirmPassword = "12345"

	_, err := s.service.Register(s.ctx, input)

	var errs model.ValidationErrors
	s.Require().ErrorAs(err, &errs)
	s.NotEmpty(errs.For("password"))
}

func (s *ServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.Register(s.ctx, validInput())
	s.Require().NoError(err)

	input := validInput()
	input.FirstName = "Alicia"
	_, err = s.service.Register(s.ctx, input)

	var errs model.ValidationErrors
	s.Require().ErrorAs(err, &errs)
	s.Contains(errs.For("username"), "taken")
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateSucceeds() {
	registered, err := s.service.Register(s.ctx, validInput())
	s.Require().NoError(err)

	user, err := s.service.Authenticate(s.ctx, "alice@example.com", "secret1")
	s.Require().NoError(err)
	s.Equal(registered.ID, user.ID)
	s.Equal(model.MembershipBasic, user.Membership)
}

func (s *ServiceSuite) TestAuthenticateFailsWithMutatedPassword() {
	_, err := s.service.Register(s.ctx, validInput())
	s.Require().NoError(err)

	_, err = s.service.Authenticate(s.ctx, "alice@example.com", "secret2")
	s.ErrorIs(err, ErrBadPassword)
}

func (s *ServiceSuite) TestAuthenticateFailsWithUnknownUser() {
	_, err := s.service.Authenticate(s.ctx, "nobody@example.com", "secret1")
	s.ErrorIs(err, ErrUnknownUser)
}

func (s *ServiceSuite) TestAuthenticateUsernameIsCaseSensitive() {
	_, err := s.service.Register(s.ctx, validInput())
	s.Require().NoError(err)

	_, err = s.service.Authenticate(s.ctx, "Alice@example.com", "secret1")
	s.ErrorIs(err, ErrUnknownUser)
}
