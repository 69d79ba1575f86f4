package types

import "time"

// Message is a single chat message.
type Message struct {
	ID        MessageID `json:"_id"`
	Chat      ChatID    `json:"chat"`
	Sender    UserID    `json:"sender"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Chat is a conversation summary as listed by the server, optionally with history.
type Chat struct {
	ID           ChatID    `json:"_id"`
	Participants []User    `json:"participants"`
	Booking      BookingID `json:"booking,omitempty"`
	LastMessage  *Message  `json:"lastMessage,omitempty"`
	UnreadCount  int       `json:"unreadCount"`
	Messages     []Message `json:"messages,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Peer returns the first participant that is not me.
func (c Chat) Peer(me UserID) (User, bool) {
	for _, p := range c.Participants {
		if p.ID != me {
			return p, true
		}
	}
	return User{}, false
}

// CreateChatRequest opens a conversation with another user.
type CreateChatRequest struct {
	Participant UserID    `json:"participantId" validate:"required"`
	Booking     BookingID `json:"bookingId,omitempty"`
}

// NewMessageRequest is the REST body for adding a message. ClientID is the
// client-generated identity shared with the socket emit of the same send.
type NewMessageRequest struct {
	Content  string    `json:"content" validate:"required,max=4000"`
	ClientID MessageID `json:"clientId,omitempty"`
}
