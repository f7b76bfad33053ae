package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// check-in does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required guest field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAlreadyFinalized is returned by Finalize when the check-in has already
// been checked out. It is a soft condition, not a failure: handlers surface it
// as a warning alongside the unchanged record, never as an error status.
var ErrAlreadyFinalized = errors.New("checkin already finalized")
