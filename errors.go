package controltower

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is an exported constant or variable used by the session guard.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is an exported constant or variable used by the session guard.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBackendUnavailable is an exported constant or variable used by the session guard.
	ErrBackendUnavailable = errors.New("backend unreachable")
	// ErrNotAuthenticated is an exported constant or variable used by the session guard.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound is an exported constant or variable used by the session guard.
	ErrNotFound = errors.New("resource not found")
	// ErrShipmentNotFound is an exported constant or variable used by the session guard.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrGuardNotReady is an exported constant or variable used by the session guard.
	ErrGuardNotReady = errors.New("guard not initialized")
	// ErrSessionInvalidated is the cancellation cause attached to in-flight
	// requests when the backend rejects the current credential.
	ErrSessionInvalidated = errors.New("session invalidated")
	// ErrAssistantUnavailable is an exported constant or variable used by the session guard.
	ErrAssistantUnavailable = errors.New("assistant unreachable")
)

// APIError carries a backend error payload verbatim. Detail, when present,
// is the backend's human-readable message and is surfaced to the operator
// unchanged; the generic fallback appears only when the payload carried
// none.
type APIError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Is maps backend status codes onto the package sentinels so callers can
// branch with [errors.Is] while Error() keeps the backend's own wording.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrInvalidCredentials:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
