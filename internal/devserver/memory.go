package devserver

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookit/internal/domain"
)

type account struct {
	user domain.User
	hash []byte
}

type room struct {
	chat     domain.Chat
	messages []domain.Message
	index    map[domain.MessageID]int
}

// memory holds accounts and chats.
type memory struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	byID    map[domain.UserID]*account
	rooms   map[domain.ChatID]*room
	now     func() time.Time
}

func newMemory() *memory {
	return &memory{
		byEmail: make(map[string]*account),
		byID:    make(map[domain.UserID]*account),
		rooms:   make(map[domain.ChatID]*room),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *memory) addAccount(u domain.User, hash []byte) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, taken := m.byEmail[key]; taken {
		return domain.User{}, false
	}
	if u.ID == "" {
		u.ID = domain.UserID(uuid.NewString())
	}
	u.CreatedAt = m.now()
	a := &account{user: u, hash: hash}
	m.byEmail[key] = a
	m.byID[u.ID] = a
	return u, true
}

func (m *memory) accountByEmail(email string) (*account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byEmail[strings.ToLower(email)]
	return a, ok
}

func (m *memory) user(id domain.UserID) (domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byID[id]
	if !ok {
		return domain.User{}, false
	}
	return a.user, true
}

func (m *memory) searchUsers(q string) []domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q = strings.ToLower(q)
	var out []domain.User
	for _, a := range m.byID {
		if strings.Contains(strings.ToLower(a.user.Name), q) || strings.Contains(strings.ToLower(a.user.Email), q) {
			out = append(out, a.user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// openChat returns the existing chat between a and b, or creates one.
func (m *memory) openChat(a, b domain.UserID, booking domain.BookingID) (domain.Chat, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ua, ok1 := m.byID[a]
	ub, ok2 := m.byID[b]
	if !ok1 || !ok2 {
		return domain.Chat{}, false, domain.ErrNotFound
	}
	for _, r := range m.rooms {
		if r.chat.Booking == booking && r.has(a) && r.has(b) {
			return r.view(a, false), false, nil
		}
	}
	r := &room{
		chat: domain.Chat{
			ID:           domain.ChatID(uuid.NewString()),
			Participants: []domain.User{ua.user, ub.user},
			Booking:      booking,
			UpdatedAt:    m.now(),
		},
		index: make(map[domain.MessageID]int),
	}
	m.rooms[r.chat.ID] = r
	return r.view(a, false), true, nil
}

// chatFor returns a participant's view of a chat.
func (m *memory) chatFor(id domain.ChatID, user domain.UserID, withHistory bool) (domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, err := m.member(id, user)
	if err != nil {
		return domain.Chat{}, err
	}
	return r.view(user, withHistory), nil
}

func (m *memory) chatsFor(user domain.UserID) []domain.Chat {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Chat{}
	for _, r := range m.rooms {
		if r.has(user) {
			out = append(out, r.view(user, false))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// addMessage stores a message once per id. created is false when id was
// already stored, in which case the stored copy is returned.
func (m *memory) addMessage(chat domain.ChatID, sender domain.UserID, content string, id domain.MessageID) (msg domain.Message, participants []domain.UserID, created bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.member(chat, sender)
	if err != nil {
		return domain.Message{}, nil, false, err
	}
	if id == "" {
		id = domain.MessageID(uuid.NewString())
	}
	if i, ok := r.index[id]; ok {
		return r.messages[i], r.ids(), false, nil
	}
	msg = domain.Message{ID: id, Chat: chat, Sender: sender, Content: content, CreatedAt: m.now()}
	r.index[id] = len(r.messages)
	r.messages = append(r.messages, msg)
	r.chat.UpdatedAt = msg.CreatedAt
	return msg, r.ids(), true, nil
}

// markRead flips read on every message user did not send.
func (m *memory) markRead(chat domain.ChatID, user domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, err := m.member(chat, user)
	if err != nil {
		return err
	}
	for i := range r.messages {
		if r.messages[i].Sender != user {
			r.messages[i].Read = true
		}
	}
	return nil
}

// isMember reports whether user may use chat.
func (m *memory) isMember(chat domain.ChatID, user domain.UserID) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.member(chat, user)
	return err
}

// member looks up chat for user. Caller holds mu.
func (m *memory) member(chat domain.ChatID, user domain.UserID) (*room, error) {
	r, ok := m.rooms[chat]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !r.has(user) {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func (r *room) has(user domain.UserID) bool {
	for _, p := range r.chat.Participants {
		if p.ID == user {
			return true
		}
	}
	return false
}

func (r *room) ids() []domain.UserID {
	out := make([]domain.UserID, 0, len(r.chat.Participants))
	for _, p := range r.chat.Participants {
		out = append(out, p.ID)
	}
	return out
}

func (r *room) view(user domain.UserID, withHistory bool) domain.Chat {
	c := r.chat
	c.Participants = append([]domain.User(nil), r.chat.Participants...)
	for _, m := range r.messages {
		if m.Sender != user && !m.Read {
			c.UnreadCount++
		}
	}
	if n := len(r.messages); n > 0 {
		last := r.messages[n-1]
		c.LastMessage = &last
	}
	if withHistory {
		c.Messages = append([]domain.Message(nil), r.messages...)
	}
	return c
}
