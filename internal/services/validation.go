package services

import "strings"

// ValidationError carries the field-level messages for a rejected write.
// Handlers surface the messages as the details of a 400 response.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

func newValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}
