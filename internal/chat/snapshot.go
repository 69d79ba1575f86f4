package chat

import (
	"sort"

	"bookit/internal/domain"
)

// Snapshot is a point-in-time copy of the chat state.
type Snapshot struct {
	Chats         []domain.Chat
	Active        *domain.Chat
	Messages      []domain.Message
	Typing        []domain.UserID
	Connected     bool
	Authenticated bool
	Error         string
}

// IsTyping reports whether user is currently flagged as typing.
func (s Snapshot) IsTyping(user domain.UserID) bool {
	for _, u := range s.Typing {
		if u == user {
			return true
		}
	}
	return false
}

// Unread sums unread counters across the list.
func (s Snapshot) Unread() int {
	n := 0
	for _, c := range s.Chats {
		n += c.UnreadCount
	}
	return n
}

// snapshot copies state. Caller holds mu.
func (s *Sync) snapshot() Snapshot {
	out := Snapshot{
		Chats:         copyChats(s.chats),
		Messages:      append([]domain.Message(nil), s.messages...),
		Connected:     s.connected,
		Authenticated: s.authed,
		Error:         s.errMsg,
	}
	if s.active != nil {
		c := copyChat(*s.active)
		out.Active = &c
	}
	for id := range s.typing {
		out.Typing = append(out.Typing, id)
	}
	sort.Slice(out.Typing, func(i, j int) bool { return out.Typing[i] < out.Typing[j] })
	return out
}

func copyChats(in []domain.Chat) []domain.Chat {
	out := make([]domain.Chat, len(in))
	for i, c := range in {
		out[i] = copyChat(c)
	}
	return out
}

func copyChat(c domain.Chat) domain.Chat {
	c.Participants = append([]domain.User(nil), c.Participants...)
	c.Messages = append([]domain.Message(nil), c.Messages...)
	if c.LastMessage != nil {
		lm := *c.LastMessage
		c.LastMessage = &lm
	}
	return c
}
