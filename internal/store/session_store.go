package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"bookit/internal/domain"
	"bookit/internal/logger"
)

const (
	sessionFilename       = "session.json"
	sealedSessionFilename = "session.enc"
)

// record is the persisted form of a session.
type record struct {
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
	SavedAt time.Time   `json:"savedAt"`
}

// SessionStore keeps the current session either in a file under dir
// (remembered) or in process memory.
type SessionStore struct {
	dir        string
	passphrase string
	kdf        kdfParams
	log        *zap.Logger

	mu     sync.Mutex
	memory *domain.Session
}

// SessionOption configures a SessionStore.
type SessionOption func(*SessionStore)

// WithPassphrase seals the persistent file.
func WithPassphrase(p string) SessionOption {
	return func(s *SessionStore) { s.passphrase = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *SessionStore) { s.log = l }
}

// NewSessionStore returns a SessionStore rooted at dir.
func NewSessionStore(dir string, opts ...SessionOption) *SessionStore {
	s := &SessionStore{dir: dir, kdf: defaultKDF}
	for _, o := range opts {
		o(s)
	}
	s.log = logger.OrNop(s.log).Named("store")
	return s
}

func (s *SessionStore) path() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, sealedSessionFilename)
	}
	return filepath.Join(s.dir, sessionFilename)
}

func (s *SessionStore) otherPath() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, sessionFilename)
	}
	return filepath.Join(s.dir, sealedSessionFilename)
}

// SaveSession stores session in the persistent area when remember is set,
// in memory otherwise. The other area is cleared.
func (s *SessionStore) SaveSession(session domain.Session, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !remember {
		if err := s.removeFiles(); err != nil {
			return err
		}
		cp := session
		s.memory = &cp
		return nil
	}

	s.memory = nil
	raw, err := json.MarshalIndent(record{Token: session.Token, User: session.User, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return err
	}
	if s.passphrase != "" {
		if raw, err = seal(s.passphrase, raw, s.kdf); err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
	}
	if err := writeFile(s.path(), raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	// Drop the copy in the other format, e.g. a plaintext file left from
	// before a passphrase was set.
	if err := removeFile(s.otherPath()); err != nil {
		return err
	}
	s.log.Debug("session saved", zap.String("user", session.User.ID.String()))
	return nil
}

// LoadSession returns the cached session, preferring the in-memory one.
func (s *SessionStore) LoadSession() (domain.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memory != nil {
		return *s.memory, true, nil
	}

	b, err := readFile(s.path())
	if err != nil || b == nil {
		return domain.Session{}, false, err
	}
	if s.passphrase != "" {
		if b, err = open(s.passphrase, b); err != nil {
			return domain.Session{}, false, err
		}
	}
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return domain.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	if r.Token == "" {
		return domain.Session{}, false, nil
	}
	return domain.Session{Token: r.Token, User: r.User}, true, nil
}

// ClearSession removes the session from both areas.
func (s *SessionStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = nil
	return s.removeFiles()
}

func (s *SessionStore) removeFiles() error {
	if err := removeFile(filepath.Join(s.dir, sessionFilename)); err != nil {
		return err
	}
	return removeFile(filepath.Join(s.dir, sealedSessionFilename))
}

var _ domain.SessionStore = (*SessionStore)(nil)
