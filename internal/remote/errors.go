package remote

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials indicates the service rejected the username/password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// RejectedError carries the service's message for a refused write.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected by catalog service"
	}
	return fmt.Sprintf("request rejected by catalog service: %s", e.Message)
}

// ServerError represents a 5xx error from the catalog service.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("catalog service error: HTTP %d", e.StatusCode)
}
