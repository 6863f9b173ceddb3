package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrEmptyDocument       = errors.New("document content is empty")
	ErrMissingImprovedText = errors.New("analysis response is missing the improved requirement text")
	ErrUnrecognizedReply   = errors.New("analysis response matched no known format")

	// ErrSourceNotConfigured is returned when a source pull is requested but
	// no external requirements source is configured.
	ErrSourceNotConfigured = errors.New("external requirements source is not configured")
)
