package model

import "errors"

// Error taxonomy. Services translate these to HTTP statuses at the edge;
// repos and the gemini client return them wrapped with context.
var (
	// ErrAuthFailure covers bad credentials and unknown accounts.
	ErrAuthFailure = errors.New("authentication failed")

	// ErrPreconditionFailed marks a state transition attempted from the
	// wrong source state, or a query missing its server-side index.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrExternalService marks a recoverable failure of an outside
	// collaborator (AI call, upload). Committed state is never affected.
	ErrExternalService = errors.New("external service error")

	// ErrValidation is raised before any network call is made.
	ErrValidation = errors.New("validation error")

	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)
