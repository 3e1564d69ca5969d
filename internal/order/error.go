package order

import "strings"

// ValidationError aggregates every rule the customer input breaks.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "Validation errors: " + strings.Join(e.Messages, ", ")
}
