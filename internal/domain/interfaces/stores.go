package interfaces

import domaintypes "bookit/internal/domain/types"

// SessionStore caches the signed-in session between runs.
//
// remember selects the persistent area; otherwise the session lives only for
// the current process. Saving to one area clears the other.
type SessionStore interface {
	SaveSession(session domaintypes.Session, remember bool) error
	LoadSession() (domaintypes.Session, bool, error)
	ClearSession() error
}
