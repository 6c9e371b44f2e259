// Package common defines shared constants and sentinel errors used across
// client and dev backend layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrorNotAuthenticated = errors.New("user not authenticated")
	ErrorUserNotFound     = errors.New("user not found")
	ErrorEmptyToken       = errors.New("empty token")

	// Auth errors (invalid, revoked or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Account errors.
	ErrorAlreadyExists      = errors.New("already exists")
	ErrorInvalidCredentials = errors.New("wrong email or password")
)
