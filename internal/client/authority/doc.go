// Package authority contains the client-side contract for the platform's
// identity and session service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     login/logout, session verification, account and user listings, session
//     enumeration, revocation, and login history.
//  2. A concrete HTTP implementation (see HTTPClient) that manages a bearer
//     token, serializes JSON request/response bodies, and maps HTTP status
//     codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrScopeDenied, and
// ErrInvalidCredentials. A rejected login carries the authority's message
// verbatim in *InvalidCredentialsError, which unwraps to
// ErrInvalidCredentials.
//
// Concurrency & Contexts
//
// Implementations are safe for concurrent use. All operations accept
// context.Context and must honor cancellation/timeouts.
package authority
