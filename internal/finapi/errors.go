package finapi

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the upstream answers 401, meaning the
// upstream session is missing or expired.
var ErrUnauthorized = errors.New("finapi: authentication required")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("finapi: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("finapi: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err signals an expired or missing session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// errorBody captures both error shapes the upstream uses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Error != "" {
		return b.Error
	}
	return b.Message
}
