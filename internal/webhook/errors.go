package webhook

import (
	"fmt"
	"strings"
)

// InvalidPayloadError means the notification is missing required fields
// and can never be processed; the sender should not retry it.
type InvalidPayloadError struct {
	Messages []string
}

func (e *InvalidPayloadError) Error() string {
	return "Invalid webhook payload: " + strings.Join(e.Messages, ", ")
}

// CallbackError wraps a downstream business-logic failure while
// handling a valid webhook. Unlike InvalidPayloadError it is transient:
// the transport layer should answer with a retryable status so the
// gateway redelivers.
type CallbackError struct {
	Err error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("webhook callback failed: %v", e.Err)
}

func (e *CallbackError) Unwrap() error {
	return e.Err
}
