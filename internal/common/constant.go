// Package common holds constants shared by every component that talks to
// the platform API.
package common

// AuthorizationHeaderName is the HTTP header used to carry the session token
// on outbound requests to the authority and the data services.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is prepended to the opaque session token in the
// Authorization header.
const BearerPrefix = "Bearer "
