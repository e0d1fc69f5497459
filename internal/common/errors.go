// Package common defines shared constants and sentinel errors used across
// client and server layers of HireBoard. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorValidation     = errors.New("validation error")
	ErrInvalidStage     = errors.New("invalid stage")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrEmptyFile        = errors.New("empty file")
	ErrInvalidCandidate = errors.New("invalid candidate id")

	// Board-level errors.
	ErrUploadInProgress = errors.New("upload already in progress")
	ErrEditorClosed     = errors.New("editor closed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
