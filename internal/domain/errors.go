package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAccessDenied        = errors.New("access denied")
	ErrScopeLocked         = errors.New("scope selection not permitted for this role")
	ErrInvalidDateRange    = errors.New("start date is after end date")
	ErrUpstreamUnavailable = errors.New("core API unavailable")
	ErrUpstreamRejected    = errors.New("core API rejected the request")
	ErrExportFailed        = errors.New("export failed")
)
