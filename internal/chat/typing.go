package chat

import (
	"encoding/json"
	"time"

	"bookit/internal/domain"
)

func (s *Sync) onUserTyping(data json.RawMessage) {
	p, ok := decode[domain.TypingPayload](s, domain.EventUserTyping, data)
	if !ok || p.User == "" || p.User == s.me {
		return
	}
	s.mu.Lock()
	if s.active == nil || s.active.ID != p.Chat {
		s.mu.Unlock()
		return
	}
	if t, ok := s.typing[p.User]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(s.opts.TypingTimeout, func() { s.expireTyping(p.User, &t) })
	s.typing[p.User] = t
	s.mu.Unlock()
	s.notify()
}

func (s *Sync) onUserStopTyping(data json.RawMessage) {
	p, ok := decode[domain.TypingPayload](s, domain.EventUserStopTyping, data)
	if !ok {
		return
	}
	s.mu.Lock()
	t, found := s.typing[p.User]
	if found {
		t.Stop()
		delete(s.typing, p.User)
	}
	s.mu.Unlock()
	if found {
		s.notify()
	}
}

// expireTyping clears user's flag if *t is still the live timer for it.
func (s *Sync) expireTyping(user domain.UserID, t **time.Timer) {
	s.mu.Lock()
	cur, ok := s.typing[user]
	if !ok || cur != *t {
		s.mu.Unlock()
		return
	}
	delete(s.typing, user)
	s.mu.Unlock()
	s.notify()
}

// stopRemoteTyping clears every remote typing flag. Caller holds mu.
func (s *Sync) stopRemoteTyping() {
	for id, t := range s.typing {
		t.Stop()
		delete(s.typing, id)
	}
}

// Typing reports local keystrokes in the active conversation. The first call
// of a burst emits typing; stop_typing follows after TypingTimeout without
// another call.
func (s *Sync) Typing() error {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return domain.ErrNoActiveChat
	}
	chatID := s.active.ID
	if s.selfTyping != nil {
		s.selfTyping.Reset(s.opts.TypingTimeout)
		s.mu.Unlock()
		return nil
	}
	var t *time.Timer
	t = time.AfterFunc(s.opts.TypingTimeout, func() { s.endTyping(&t) })
	s.selfTyping = t
	s.mu.Unlock()

	return s.socket.Emit(domain.EventTyping, domain.ChatRoomPayload{Chat: chatID})
}

// StopTyping ends a local typing burst right away.
func (s *Sync) StopTyping() {
	s.endTyping(nil)
}

// endTyping emits stop_typing for the current burst. A non-nil t only ends
// the burst *t started.
func (s *Sync) endTyping(t **time.Timer) {
	s.mu.Lock()
	if s.selfTyping == nil || (t != nil && s.selfTyping != *t) || s.active == nil {
		s.mu.Unlock()
		return
	}
	s.selfTyping.Stop()
	s.selfTyping = nil
	chatID := s.active.ID
	s.mu.Unlock()

	_ = s.socket.Emit(domain.EventStopTyping, domain.ChatRoomPayload{Chat: chatID})
}

// stopSelfTyping drops the local burst without emitting. Caller holds mu.
func (s *Sync) stopSelfTyping() {
	if s.selfTyping != nil {
		s.selfTyping.Stop()
		s.selfTyping = nil
	}
}
