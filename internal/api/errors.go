package api

import (
	"errors"
	"fmt"
)

// ErrNotFound means the target entity vanished between fetch and action.
var ErrNotFound = errors.New("not found")

// ErrAuthFailed means the session is invalid or expired. The client clears
// the stored token before returning it, so callers only need to route the
// user back to login.
var ErrAuthFailed = errors.New("authentication failed")

// ServiceError covers any other non-2xx response or transport failure.
type ServiceError struct {
	Status int    // 0 for transport-level failures
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("service unreachable: %s", e.Detail)
	}
	if e.Detail != "" {
		return fmt.Sprintf("service error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("service error %d", e.Status)
}
