package devserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"bookit/internal/domain"
)

const (
	sendBuffer = 64
	writeWait  = 10 * time.Second
)

// peer is one socket connection.
type peer struct {
	ws   *websocket.Conn
	send chan domain.Frame
	done chan struct{}
	once sync.Once

	// Guarded by hub.mu.
	user  domain.UserID
	rooms map[domain.ChatID]bool
}

func (p *peer) stop() { p.once.Do(func() { close(p.done) }) }

type hub struct {
	mu    sync.RWMutex
	peers map[*peer]struct{}
}

func newHub() *hub {
	return &hub{peers: make(map[*peer]struct{})}
}

func (h *hub) add(p *peer) {
	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()
}

func (h *hub) remove(p *peer) {
	h.mu.Lock()
	delete(h.peers, p)
	h.mu.Unlock()
}

func (h *hub) identify(p *peer, user domain.UserID) {
	h.mu.Lock()
	p.user = user
	h.mu.Unlock()
}

func (h *hub) userOf(p *peer) domain.UserID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return p.user
}

func (h *hub) join(p *peer, chat domain.ChatID) {
	h.mu.Lock()
	p.rooms[chat] = true
	h.mu.Unlock()
}

// toUsers delivers to every authenticated peer of the given users.
func (h *hub) toUsers(users []domain.UserID, event string, payload any) {
	want := make(map[domain.UserID]bool, len(users))
	for _, u := range users {
		want[u] = true
	}
	h.broadcast(func(p *peer) bool { return want[p.user] }, event, payload)
}

// toRoom delivers to peers that joined chat, except one.
func (h *hub) toRoom(chat domain.ChatID, except *peer, event string, payload any) {
	h.broadcast(func(p *peer) bool { return p != except && p.rooms[chat] }, event, payload)
}

func (h *hub) broadcast(match func(*peer) bool, event string, payload any) {
	f, err := frame(event, payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p.user != "" && match(p) {
			p.push(f)
		}
	}
}

// kick closes every socket of user with a close frame.
func (h *hub) kick(user domain.UserID, reason string) int {
	h.mu.RLock()
	var victims []*peer
	for p := range h.peers {
		if p.user == user {
			victims = append(victims, p)
		}
	}
	h.mu.RUnlock()
	for _, p := range victims {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
		_ = p.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		p.stop()
	}
	return len(victims)
}

func frame(event string, payload any) (domain.Frame, error) {
	f := domain.Frame{Event: event}
	if payload == nil {
		return f, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return f, err
	}
	f.Data = data
	return f, nil
}

// push queues f without blocking; a peer that cannot keep up is dropped.
func (p *peer) push(f domain.Frame) {
	select {
	case p.send <- f:
	case <-p.done:
	default:
		p.stop()
	}
}

func (p *peer) reply(event string, payload any) {
	if f, err := frame(event, payload); err == nil {
		p.push(f)
	}
}

// ---------- connection lifecycle ----------

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	p := &peer{
		ws:    ws,
		send:  make(chan domain.Frame, sendBuffer),
		done:  make(chan struct{}),
		rooms: make(map[domain.ChatID]bool),
	}
	s.hub.add(p)
	s.log.Debug("socket connected", zap.String("remote", r.RemoteAddr))

	go s.writeLoop(p)
	s.readLoop(p)

	p.stop()
	s.hub.remove(p)
	s.log.Debug("socket closed", zap.String("user", s.hub.userOf(p).String()))
}

func (s *Server) writeLoop(p *peer) {
	defer p.ws.Close()
	for {
		select {
		case <-p.done:
			return
		case f := <-p.send:
			_ = p.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.ws.WriteJSON(f); err != nil {
				p.stop()
				return
			}
		}
	}
}

func (s *Server) readLoop(p *peer) {
	for {
		var f domain.Frame
		if err := p.ws.ReadJSON(&f); err != nil {
			return
		}
		select {
		case <-p.done:
			return
		default:
		}
		s.handleFrame(p, f)
	}
}

func (s *Server) handleFrame(p *peer, f domain.Frame) {
	if f.Event == domain.EventAuthenticate {
		var a domain.AuthenticatePayload
		_ = json.Unmarshal(f.Data, &a)
		u, err := s.verify(a.Token)
		if err != nil {
			p.reply(domain.EventAuthenticated, domain.AuthenticatedPayload{Success: false, Error: "Authentication failed"})
			return
		}
		s.hub.identify(p, u.ID)
		p.reply(domain.EventAuthenticated, domain.AuthenticatedPayload{Success: true, UserID: u.ID})
		return
	}

	me := s.hub.userOf(p)
	if me == "" {
		p.reply(domain.EventError, domain.ErrorPayload{Message: "Not authenticated"})
		return
	}

	switch f.Event {
	case domain.EventJoinChat:
		var room domain.ChatRoomPayload
		_ = json.Unmarshal(f.Data, &room)
		if err := s.mem.isMember(room.Chat, me); err != nil {
			p.reply(domain.EventError, domain.ErrorPayload{Message: "Not authorized to join this chat"})
			return
		}
		s.hub.join(p, room.Chat)

	case domain.EventSendMessage:
		var in domain.SendMessagePayload
		_ = json.Unmarshal(f.Data, &in)
		if _, err := s.postMessage(in.Chat, me, in.Content, in.ClientID); err != nil {
			p.reply(domain.EventError, domain.ErrorPayload{Message: "Failed to send message: " + err.Error()})
		}

	case domain.EventMarkRead:
		var room domain.ChatRoomPayload
		_ = json.Unmarshal(f.Data, &room)
		if err := s.mem.markRead(room.Chat, me); err != nil {
			p.reply(domain.EventError, domain.ErrorPayload{Message: "Failed to mark messages as read"})
			return
		}
		s.hub.toRoom(room.Chat, nil, domain.EventMessagesRead, domain.MessagesReadPayload{Chat: room.Chat, User: me})

	case domain.EventTyping, domain.EventStopTyping:
		var room domain.ChatRoomPayload
		_ = json.Unmarshal(f.Data, &room)
		event := domain.EventUserTyping
		if f.Event == domain.EventStopTyping {
			event = domain.EventUserStopTyping
		}
		s.hub.toRoom(room.Chat, p, event, domain.TypingPayload{Chat: room.Chat, User: me})

	default:
		p.reply(domain.EventError, domain.ErrorPayload{Message: "Unknown event " + f.Event})
	}
}
