package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")
)
