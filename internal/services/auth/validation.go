package auth

import "net/mail"

// validEmail reports whether s is a syntactically valid email address
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
