package services

import "errors"

var (
	// ErrBusy is returned when a registration is still waiting for its
	// redirect to the login screen.
	ErrBusy = errors.New("request already in progress")
	// ErrRejected wraps success:false answers from the backend.
	ErrRejected = errors.New("rejected by server")
)
