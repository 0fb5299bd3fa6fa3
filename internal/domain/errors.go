package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is not visible to the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (slot length,
// weekend, capacity, overlap, malformed window).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated is returned when a request carries no resolvable user.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when the session's role may not perform the action.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an action is valid in shape but clashes with
// current state (candidate already scheduled, no slot fits the window).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrBusy is returned by the client-side workspace when the same destructive
// action is already in flight.
var ErrBusy = errors.New("action already in progress")
