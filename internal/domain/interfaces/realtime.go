package interfaces

import (
	"context"
	"encoding/json"
)

// TokenSource yields the current session token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

// Token implements TokenSource.
func (f TokenFunc) Token() string { return f() }

// Handler receives the raw JSON payload of one socket event.
type Handler func(data json.RawMessage)

// Socket is the persistent bidirectional chat channel.
type Socket interface {
	Connect(ctx context.Context) error
	Emit(event string, payload any) error
	// On registers handler for event and returns a function that detaches it.
	On(event string, handler Handler) (off func())
	Connected() bool
	Authenticated() bool
	Close() error
}
