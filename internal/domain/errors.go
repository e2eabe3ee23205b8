package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories
// translate storage-level failures (sql.ErrNoRows, unique violations) into
// these before they reach a service; controllers map them to HTTP statuses.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
