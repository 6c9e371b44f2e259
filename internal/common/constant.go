// Package common contains shared constants, sentinel errors and small helpers
// used by both the moviebook client and the development backend.
package common

// AuthorizationHeaderName is the HTTP header carrying the access token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the access token inside the Authorization header.
const BearerScheme = "Bearer "

// ContentTypeJSON is the payload format of every request and response.
const ContentTypeJSON = "application/json"
