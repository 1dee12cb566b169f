package entities

import "errors"

// Domain errors
var (
	// Report errors
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidTitle      = errors.New("invalid meeting title")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrReportNotRendered = errors.New("report not rendered")

	// Email errors
	ErrUnknownEmailKind = errors.New("unknown email kind")
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrEmailLogNotFound = errors.New("email log not found")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
