package model

import "time"

// MaxMessageTitleLength is the longest title the board accepts
const MaxMessageTitleLength = 255

// MessageID uniquely identifies a message
type MessageID string

// Message is a post on the board. Messages are immutable once created
// and are attributed to exactly one user.
type Message struct {
	ID        MessageID
	Title     string
	Text      string
	AuthorID  UserID
	CreatedAt time.Time
}

// MessageWithAuthor pairs a message with its author's display attributes
// for rendering. The author's credentials are deliberately not included.
type MessageWithAuthor struct {
	Message
	AuthorName string
}
