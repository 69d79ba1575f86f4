package types

import "encoding/json"

// Event names used on the chat socket.
const (
	EventConnect      = "connect"
	EventConnectError = "connect_error"
	EventDisconnect   = "disconnect"

	EventAuthenticate  = "authenticate"
	EventAuthenticated = "authenticated"
	EventError         = "error"

	EventJoinChat       = "join_chat"
	EventSendMessage    = "send_message"
	EventNewMessage     = "new_message"
	EventMarkRead       = "mark_read"
	EventMessagesRead   = "messages_read"
	EventTyping         = "typing"
	EventStopTyping     = "stop_typing"
	EventUserTyping     = "user_typing"
	EventUserStopTyping = "user_stop_typing"
	EventChatUpdate     = "chat_update"
)

// Frame is the JSON unit exchanged over the socket.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// AuthenticatePayload is sent right after the transport connects.
type AuthenticatePayload struct {
	Token string `json:"token"`
}

// AuthenticatedPayload is the server's answer to authenticate.
type AuthenticatedPayload struct {
	Success bool   `json:"success"`
	UserID  UserID `json:"userId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorPayload carries a server-side error message.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ChatRoomPayload addresses a single conversation (join_chat, mark_read, typing, stop_typing).
type ChatRoomPayload struct {
	Chat ChatID `json:"chatId"`
}

// SendMessagePayload is emitted by the client when sending.
type SendMessagePayload struct {
	Chat     ChatID    `json:"chatId"`
	Content  string    `json:"content"`
	ClientID MessageID `json:"clientId,omitempty"`
}

// NewMessagePayload is pushed for every message in a joined or participating chat.
type NewMessagePayload struct {
	Chat    ChatID  `json:"chatId"`
	Message Message `json:"message"`
}

// MessagesReadPayload reports that a participant read a conversation.
type MessagesReadPayload struct {
	Chat ChatID `json:"chatId"`
	User UserID `json:"userId"`
}

// TypingPayload is pushed for user_typing and user_stop_typing.
type TypingPayload struct {
	Chat ChatID `json:"chatId"`
	User UserID `json:"userId"`
}

// ChatUpdatePayload replaces a chat summary.
type ChatUpdatePayload struct {
	Chat Chat `json:"chat"`
}

// DisconnectPayload describes why the transport dropped.
type DisconnectPayload struct {
	Reason string `json:"reason"`
	// ByServer is true when the peer closed the connection deliberately.
	ByServer bool `json:"byServer"`
}
