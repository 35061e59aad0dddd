package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Common API errors.
var (
	// ErrNotFound matches a 404 response.
	ErrNotFound = errors.New("not found")
	// ErrForbidden matches a 403 response, usually a missing or stale CSRF token.
	ErrForbidden = errors.New("forbidden, check the session and csrf cookies")
	// ErrMissingCSRFToken is returned before sending a mutating request when
	// the cookie jar holds no anti-forgery token.
	ErrMissingCSRFToken = errors.New("no csrf token in cookie jar")
)

// Error is a non-2xx response from the server.
type Error struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is match the sentinel errors by status.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}

// IsRejected reports whether the server refused the request as a client
// error. Rejected requests must not advance local state.
func IsRejected(err error) bool {
	if errors.Is(err, ErrMissingCSRFToken) {
		return true
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 400 && apiErr.Status < 500
	}
	return false
}

// IsTransient reports whether err is a network or server-side failure that
// the user may retry as is.
func IsTransient(err error) bool {
	if err == nil || IsRejected(err) {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return true
}
