package domain

import "errors"

var (
	// ErrUnauthorized is matched by API errors carrying HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is matched by API errors carrying HTTP 403.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is matched by API errors carrying HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrNoToken means an operation needs a signed-in session.
	ErrNoToken = errors.New("no session token; log in first")
	// ErrNotConnected is returned when emitting on a closed or dialing socket.
	ErrNotConnected = errors.New("socket not connected")
	// ErrNoActiveChat is returned by chat operations that need an open conversation.
	ErrNoActiveChat = errors.New("no conversation is open")
)
