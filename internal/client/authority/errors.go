package authority

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable        = errors.New("authority unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrScopeDenied        = errors.New("scope denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InvalidCredentialsError carries the authority's rejection message so the
// login screen can present it verbatim (e.g. the remaining-attempts or
// locked-account text). It matches ErrInvalidCredentials via errors.Is.
type InvalidCredentialsError struct {
	Detail string
}

func (e *InvalidCredentialsError) Error() string {
	if e.Detail == "" {
		return ErrInvalidCredentials.Error()
	}
	return e.Detail
}

func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// StatusError wraps an unexpected HTTP status with the response detail, for
// conditions outside the sentinel taxonomy (transient server failures).
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Detail)
}
