package api

import "errors"

var (
	// ErrNotConfigured means the endpoint URL or token is missing; the
	// operation short-circuits before any I/O.
	ErrNotConfigured = errors.New("api not configured")

	// ErrUnavailable covers transport failures and non-2xx statuses.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrBadResponse means the response body had an unexpected shape.
	ErrBadResponse = errors.New("malformed backend response")

	// ErrRejected means the backend answered {ok:false}; the wrapped text
	// carries the backend's error message.
	ErrRejected = errors.New("request rejected")
)
