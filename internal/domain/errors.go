package domain

import "errors"

// Domain errors surfaced through the API.
var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnknownEnvironment is returned for an environment tag the service
	// is not configured for.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken is returned when the bearer token is invalid.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when the principal's mail domain is not on
	// the allow-list.
	ErrForbidden = errors.New("forbidden")

	// ErrConsentRequired is returned untouched when the downstream identity
	// API demands an interactive consent step; the edge translates it into a
	// re-authentication challenge.
	ErrConsentRequired = errors.New("identity consent required")

	// ErrUnknownPreference is returned when a preference property name is
	// not recognised. This is a coding bug, not a runtime condition.
	ErrUnknownPreference = errors.New("unknown preference property")
)

// ErrorCode is the machine-readable error code carried in API responses.
type ErrorCode string

const (
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeUnknownEnvironment ErrorCode = "UNKNOWN_ENVIRONMENT"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeConsentRequired    ErrorCode = "CONSENT_REQUIRED"
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode converts a domain error into an API error code.
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnknownEnvironment):
		return CodeUnknownEnvironment
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrConsentRequired):
		return CodeConsentRequired
	case errors.Is(err, ErrUnknownPreference):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}
