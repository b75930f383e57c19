package model

import "strings"

// FieldError is a single user-correctable validation failure
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects every failed check for a submission, in the
// order the fields appear on the form
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// For returns the message for a field, or "" if the field passed
func (v ValidationErrors) For(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Messages returns every message in order, for rendering as a list
func (v ValidationErrors) Messages() []string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return msgs
}
