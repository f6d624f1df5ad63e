package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors shared by every service. Repositories and services wrap
// these with fmt.Errorf("...: %w", ...) so callers can errors.Is them at the
// boundary.
var (
	ErrNotFound           = errors.New("requested item not found")
	ErrConflict           = errors.New("item already exists or conflict")
	ErrUnauthenticated    = errors.New("authentication required or invalid credentials")
	ErrForbidden          = errors.New("action forbidden")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMalformedToken     = errors.New("malformed token")
	ErrBadRequest         = errors.New("invalid request")
)

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StatusForError maps the service error taxonomy onto HTTP status codes.
// ErrMalformedToken wraps into ErrInvalidToken territory: both collapse to
// 401 so a caller cannot distinguish expired vs rotated-out vs garbage.
func StatusForError(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrAccountDeactivated),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrMalformedToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the client-safe message for an error. Internal
// failure text never crosses the boundary.
func PublicMessage(err error) string {
	switch {
	case errors.Is(err, ErrConflict):
		return "resource already exists"
	case errors.Is(err, ErrUnauthenticated):
		return "invalid username or password"
	case errors.Is(err, ErrAccountDeactivated):
		return "account is deactivated"
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMalformedToken):
		return "invalid or expired token"
	case errors.Is(err, ErrForbidden):
		return "action forbidden"
	case errors.Is(err, ErrNotFound):
		return "resource not found"
	case errors.Is(err, ErrBadRequest):
		return "invalid request"
	default:
		return "an unexpected error occurred"
	}
}
