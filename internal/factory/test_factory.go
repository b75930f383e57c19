package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/clubhouse-go/internal/dependencies/mocks"
	"github.com/mcoot/clubhouse-go/internal/services/auth"
	"github.com/mcoot/clubhouse-go/internal/services/membership"
	"github.com/mcoot/clubhouse-go/internal/services/session"
	"github.com/mcoot/clubhouse-go/internal/storage/memory"
	"github.com/mcoot/clubhouse-go/internal/testutil"
)

// Passcodes used by test apps
const (
	TestMemberPasscode = "open-sesame"
	TestAdminPasscode  = "mellon"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing: in-memory storage and
// sessions, a fast bcrypt cost, and a controllable clock
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(mockClock)

	app := newWithDependencies(
		store,
		store,
		mockClock,
		auth.NewBcryptHasher(bcrypt.MinCost),
		membership.Passcodes{Member: TestMemberPasscode, Admin: TestAdminPasscode},
		session.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
