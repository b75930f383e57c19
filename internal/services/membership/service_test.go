package membership

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/clubhouse-go/internal/dependencies/mocks"
	"github.com/mcoot/clubhouse-go/internal/model"
	"github.com/mcoot/clubhouse-go/internal/storage/memory"
	"github.com/mcoot/clubhouse-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New(clk)
	passcodes := Passcodes{Member: "odin", Admin: "ragnarok"}
	s.service = New(s.storage, passcodes, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) createUser() *model.User {
	user := &model.User{
		FirstName:  "Alice",
		LastName:   "Arnold",
		Username:   "alice@example.com",
		Membership: model.MembershipBasic,
	}
	s.Require().NoError(s.storage.CreateUser(s.ctx, user))
	return user
}

func (s *ServiceSuite) storedMembership(id model.UserID) model.MembershipStatus {
	user, err := s.storage.GetUser(s.ctx, id)
	s.Require().NoError(err)
	return user.Membership
}

func (s *ServiceSuite) TestEscalateToMember() {
	user := s.createUser()

	err := s.service.Escalate(s.ctx, user, model.MembershipMember, "odin")
	s.Require().NoError(err)

	s.Equal(model.MembershipMember, user.Membership)
	s.Equal(model.MembershipMember, s.storedMembership(user.ID))
}

func (s *ServiceSuite) TestEscalateMemberToAdmin() {
	user := s.createUser()
	s.Require().NoError(s.service.Escalate(s.ctx, user, model.MembershipMember, "odin"))

	err := s.service.Escalate(s.ctx, user, model.MembershipAdmin, "ragnarok")
	s.Require().NoError(err)

	s.Equal(model.MembershipAdmin, s.storedMembership(user.ID))
}

func (s *ServiceSuite) TestEscalateIsSetNotPromote() {
	// An admin re-submitting the member passcode is downgraded to member
	user := s.createUser()
	s.Require().NoError(s.service.Escalate(s.ctx, user, model.MembershipAdmin, "ragnarok"))

	err := s.service.Escalate(s.ctx, user, model.MembershipMember, "odin")
	s.Require().NoError(err)

	s.Equal(model.MembershipMember, s.storedMembership(user.ID))
}

func (s *ServiceSuite) TestEscalateAnonymousFailsRegardlessOfPasscode() {
	err := s.service.Escalate(s.ctx, nil, model.MembershipMember, "odin")
	s.ErrorIs(err, ErrNotAuthenticated)
}

func (s *ServiceSuite) TestEscalateWrongPasscode() {
	user := s.createUser()

	err := s.service.Escalate(s.ctx, user, model.MembershipMember, "loki")
	s.ErrorIs(err, ErrWrongPasscode)

	s.Equal(model.MembershipBasic, s.storedMembership(user.ID))
}

func (s *ServiceSuite) TestEscalateAdminPasscodeDoesNotUnlockMember() {
	// Each tier has its own secret; they are not interchangeable
	user := s.createUser()

	err := s.service.Escalate(s.ctx, user, model.MembershipMember, "ragnarok")
	s.ErrorIs(err, ErrWrongPasscode)
}

func (s *ServiceSuite) TestEscalateToBasicRejected() {
	user := s.createUser()

	err := s.service.Escalate(s.ctx, user, model.MembershipBasic, "odin")
	s.ErrorIs(err, ErrUnknownTier)
}
