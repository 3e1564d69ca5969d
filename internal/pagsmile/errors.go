package pagsmile

import "fmt"

// SuccessCode is the business code the gateway returns on success.
// Anything else is a RemoteError even when the HTTP status is 200.
const SuccessCode = "10000"

// RemoteError is a non-success business code from the gateway,
// carrying its code and message verbatim.
type RemoteError struct {
	Code string
	Msg  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("pagsmile error: %s - %s", e.Code, e.Msg)
}

// CheckCode converts a non-success business code into a RemoteError.
func CheckCode(code, msg string) error {
	if code != SuccessCode {
		return &RemoteError{Code: code, Msg: msg}
	}
	return nil
}
