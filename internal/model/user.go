package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// MembershipStatus is a user's privilege tier
type MembershipStatus string

const (
	MembershipBasic  MembershipStatus = "basic"
	MembershipMember MembershipStatus = "member"
	MembershipAdmin  MembershipStatus = "admin"
)

// Valid reports whether s is one of the known tiers
func (s MembershipStatus) Valid() bool {
	switch s {
	case MembershipBasic, MembershipMember, MembershipAdmin:
		return true
	}
	return false
}

// CanPost reports whether this tier is allowed to post messages
func (s MembershipStatus) CanPost() bool {
	return s == MembershipMember || s == MembershipAdmin
}

// User is an account holder on the board.
// Username is the login handle (an email address) and is immutable.
// PasswordHash is a bcrypt digest; it must never be rendered or leave
// the server process.
type User struct {
	ID           UserID
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string `json:"-"`
	Membership   MembershipStatus
	CreatedAt    time.Time
}

// DisplayName returns the name shown next to posts and in the nav
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
