package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"bookit/internal/domain"
)

func (s *Sync) onConnect(json.RawMessage) {
	s.mu.Lock()
	s.connected = true
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Sync) onConnectError(data json.RawMessage) {
	p, _ := decode[domain.ErrorPayload](s, domain.EventConnectError, data)
	s.mu.Lock()
	s.connected = false
	s.authed = false
	s.errMsg = "connection error: " + p.Message
	s.mu.Unlock()
	s.notify()
}

func (s *Sync) onDisconnect(data json.RawMessage) {
	p, _ := decode[domain.DisconnectPayload](s, domain.EventDisconnect, data)
	s.log.Debug("socket disconnected", zap.String("reason", p.Reason))
	s.mu.Lock()
	s.connected = false
	s.authed = false
	s.stopRemoteTyping()
	s.mu.Unlock()
	s.notify()
}

func (s *Sync) onAuthenticated(data json.RawMessage) {
	p, ok := decode[domain.AuthenticatedPayload](s, domain.EventAuthenticated, data)
	if !ok {
		return
	}
	s.mu.Lock()
	s.authed = p.Success
	var rejoin domain.ChatID
	if p.Success {
		s.errMsg = ""
		if s.active != nil {
			rejoin = s.active.ID
		}
	} else {
		s.errMsg = "authentication failed: " + p.Error
	}
	s.mu.Unlock()

	// Rooms do not survive a reconnect.
	if rejoin != "" {
		if err := s.socket.Emit(domain.EventJoinChat, domain.ChatRoomPayload{Chat: rejoin}); err != nil {
			s.log.Warn("rejoin failed", zap.String("chat", rejoin.String()), zap.Error(err))
		}
	}
	s.notify()
}

func (s *Sync) onError(data json.RawMessage) {
	p, _ := decode[domain.ErrorPayload](s, domain.EventError, data)
	if p.Message == "" {
		p.Message = "unknown socket error"
	}
	s.setError(p.Message)
}

func (s *Sync) onNewMessage(data json.RawMessage) {
	p, ok := decode[domain.NewMessagePayload](s, domain.EventNewMessage, data)
	if !ok || p.Message.ID == "" {
		return
	}
	chatID := p.Chat
	if chatID == "" {
		chatID = p.Message.Chat
	}
	if p.Message.Chat == "" {
		p.Message.Chat = chatID
	}
	s.mu.Lock()
	// A message ends that sender's typing burst.
	if t, ok := s.typing[p.Message.Sender]; ok {
		t.Stop()
		delete(s.typing, p.Message.Sender)
	}
	s.mu.Unlock()
	s.apply(chatID, p.Message)
}

func (s *Sync) onMessagesRead(data json.RawMessage) {
	p, ok := decode[domain.MessagesReadPayload](s, domain.EventMessagesRead, data)
	if !ok {
		return
	}
	s.mu.Lock()
	if s.active == nil || s.active.ID != p.Chat || p.User == s.me {
		s.mu.Unlock()
		return
	}
	for i := range s.messages {
		if s.messages[i].Sender == s.me {
			s.messages[i].Read = true
		}
	}
	if i := s.summaryIndex(p.Chat); i >= 0 {
		if lm := s.chats[i].LastMessage; lm != nil && lm.Sender == s.me {
			read := *lm
			read.Read = true
			s.chats[i].LastMessage = &read
		}
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Sync) onChatUpdate(data json.RawMessage) {
	p, ok := decode[domain.ChatUpdatePayload](s, domain.EventChatUpdate, data)
	if !ok || p.Chat.ID == "" {
		return
	}
	s.mu.Lock()
	c := p.Chat
	c.Messages = nil
	if s.active != nil && s.active.ID == c.ID {
		c.UnreadCount = 0
		active := c
		s.active = &active
	}
	s.upsertSummary(c)
	s.mu.Unlock()
	s.notify()
}
