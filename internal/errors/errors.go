package errors

import "errors"

// This package defines a centralized set of sentinel errors for the client.
// The gateway maps HTTP failures onto these, and the stores raise the local
// ones directly, so callers can branch with `errors.Is()` without knowing
// about status codes or transport details.

var (
	// ErrNotFound signifies that a requested resource does not exist on the
	// server (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed validation, either
	// locally before a request was issued or on the server (HTTP 400).
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized signifies a rejected or missing credential (HTTP 401).
	// The gateway has already torn down the persisted session by the time a
	// caller sees this error.
	ErrUnauthorized = errors.New("not authorized")

	// ErrConflict signifies that an operation conflicts with the current
	// state of a resource on the server (HTTP 409).
	ErrConflict = errors.New("resource conflict")

	// ErrNoActiveChat is a local precondition violation: a message was sent
	// while no chat is selected. It is returned synchronously and never
	// recorded as store state, since it indicates a UI-flow bug rather than
	// a recoverable runtime condition.
	ErrNoActiveChat = errors.New("no active chat")

	// ErrUnavailable signifies a transport-level failure: the server could
	// not be reached at all.
	ErrUnavailable = errors.New("service unavailable")

	// ErrInternal signifies an unexpected server-side error (HTTP 5xx).
	ErrInternal = errors.New("internal server error")
)
