package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrInternalError = errors.New("internal server error")
)

// Render errors
var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrRenderFailed    = errors.New("render failed")
)

// Report errors
var (
	ErrReportNotFound  = errors.New("report not found")
	ErrEmptyTitle      = errors.New("meeting title must not be empty")
	ErrInvalidDuration = errors.New("duration must not be negative")
	ErrArchiveFailed   = errors.New("archive of rendered report failed")
)

// Email errors
var (
	ErrUnknownEmailKind = errors.New("unknown email kind")
	ErrMissingResetURL  = errors.New("url is required for this email kind")
	ErrDeliveryFailed   = errors.New("email delivery failed")
)
