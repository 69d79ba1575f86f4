package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookit/internal/domain"
	"bookit/internal/logger"
	"bookit/internal/validate"
)

// DefaultTypingTimeout is how long a typing flag lives without a refresh.
const DefaultTypingTimeout = 3 * time.Second

// Options tunes a Sync. Zero values take defaults.
type Options struct {
	// TypingTimeout expires remote typing flags and ends local typing bursts.
	TypingTimeout time.Duration
	// OnChange is called with a fresh snapshot after every state change.
	// It runs on the goroutine that caused the change and must not block.
	OnChange func(Snapshot)
	Logger   *zap.Logger
}

// Sync is the real-time chat state for one signed-in user.
type Sync struct {
	api    domain.ChatAPI
	socket domain.Socket
	me     domain.UserID
	opts   Options
	log    *zap.Logger

	mu         sync.Mutex
	chats      []domain.Chat
	active     *domain.Chat
	messages   []domain.Message
	index      map[domain.MessageID]int
	seen       map[domain.ChatID]map[domain.MessageID]struct{}
	opening    domain.ChatID
	pending    []domain.Message
	typing     map[domain.UserID]*time.Timer
	selfTyping *time.Timer
	connected  bool
	authed     bool
	errMsg     string
	offs       []func()
	closed     bool
}

// New wires a Sync for user me. Nothing is connected until Start.
func New(api domain.ChatAPI, socket domain.Socket, me domain.UserID, opts Options) *Sync {
	if opts.TypingTimeout <= 0 {
		opts.TypingTimeout = DefaultTypingTimeout
	}
	return &Sync{
		api:    api,
		socket: socket,
		me:     me,
		opts:   opts,
		log:    logger.OrNop(opts.Logger).Named("chat"),
		index:  make(map[domain.MessageID]int),
		seen:   make(map[domain.ChatID]map[domain.MessageID]struct{}),
		typing: make(map[domain.UserID]*time.Timer),
	}
}

// Start attaches the socket listeners and opens the connection. It fails
// without a signed-in user or session token.
func (s *Sync) Start(ctx context.Context) error {
	if s.me == "" {
		return domain.ErrNoToken
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("chat: sync closed")
	}
	if len(s.offs) == 0 {
		s.offs = []func(){
			s.socket.On(domain.EventConnect, s.onConnect),
			s.socket.On(domain.EventConnectError, s.onConnectError),
			s.socket.On(domain.EventDisconnect, s.onDisconnect),
			s.socket.On(domain.EventAuthenticated, s.onAuthenticated),
			s.socket.On(domain.EventError, s.onError),
			s.socket.On(domain.EventNewMessage, s.onNewMessage),
			s.socket.On(domain.EventMessagesRead, s.onMessagesRead),
			s.socket.On(domain.EventUserTyping, s.onUserTyping),
			s.socket.On(domain.EventUserStopTyping, s.onUserStopTyping),
			s.socket.On(domain.EventChatUpdate, s.onChatUpdate),
		}
	}
	s.mu.Unlock()

	if err := s.socket.Connect(ctx); err != nil {
		s.setError("connection error: " + err.Error())
		return err
	}
	return nil
}

// Close detaches listeners, clears timers and closes the socket.
func (s *Sync) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	offs := s.offs
	s.offs = nil
	for id, t := range s.typing {
		t.Stop()
		delete(s.typing, id)
	}
	if s.selfTyping != nil {
		s.selfTyping.Stop()
		s.selfTyping = nil
	}
	s.mu.Unlock()

	for _, off := range offs {
		off()
	}
	return s.socket.Close()
}

// FetchChats replaces the chat list with the server's.
func (s *Sync) FetchChats(ctx context.Context) ([]domain.Chat, error) {
	list, err := s.api.ListChats(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.chats = make([]domain.Chat, 0, len(list))
	for _, c := range list {
		c.Messages = nil
		if s.active != nil && c.ID == s.active.ID {
			c.UnreadCount = 0
		}
		if c.LastMessage != nil {
			s.remember(c.ID, c.LastMessage.ID)
		}
		s.chats = append(s.chats, c)
	}
	out := copyChats(s.chats)
	s.mu.Unlock()
	s.notify()
	return out, nil
}

// CreateChat starts a conversation and adds it to the list.
func (s *Sync) CreateChat(ctx context.Context, req domain.CreateChatRequest) (domain.Chat, error) {
	if err := validate.Struct(req); err != nil {
		return domain.Chat{}, err
	}
	c, err := s.api.CreateChat(ctx, req)
	if err != nil {
		return domain.Chat{}, err
	}
	s.mu.Lock()
	s.upsertSummary(c)
	s.mu.Unlock()
	s.notify()
	return c, nil
}

// OpenChat makes id the active conversation: REST history first, then the
// socket room join, then the read receipt.
func (s *Sync) OpenChat(ctx context.Context, id domain.ChatID) (domain.Chat, error) {
	s.mu.Lock()
	s.opening = id
	s.pending = nil
	s.mu.Unlock()

	c, err := s.api.GetChat(ctx, id)
	if err != nil {
		s.mu.Lock()
		if s.opening == id {
			s.opening = ""
			s.pending = nil
		}
		s.mu.Unlock()
		return domain.Chat{}, err
	}

	s.mu.Lock()
	s.install(c)
	s.mu.Unlock()
	s.notify()

	if err := s.socket.Emit(domain.EventJoinChat, domain.ChatRoomPayload{Chat: id}); err != nil {
		s.log.Warn("join_chat not sent", zap.String("chat", id.String()), zap.Error(err))
		s.setError("could not join chat: " + err.Error())
	}
	if err := s.socket.Emit(domain.EventMarkRead, domain.ChatRoomPayload{Chat: id}); err != nil {
		// Without a live socket the read receipt goes through REST instead.
		if rerr := s.api.MarkRead(ctx, id); rerr != nil {
			return s.Active(), fmt.Errorf("mark %s read: %w", id, rerr)
		}
	}
	return s.Active(), nil
}

// install swaps in c as the active conversation. Caller holds mu.
func (s *Sync) install(c domain.Chat) {
	s.stopRemoteTyping()
	s.stopSelfTyping()

	summary := c
	summary.Messages = nil
	summary.UnreadCount = 0
	s.active = &summary

	s.messages = nil
	s.index = make(map[domain.MessageID]int, len(c.Messages))
	for _, m := range c.Messages {
		s.merge(m)
		s.remember(c.ID, m.ID)
	}
	for _, m := range s.pending {
		s.merge(m)
	}
	s.pending = nil
	s.opening = ""
	if n := len(s.messages); n > 0 {
		last := s.messages[n-1]
		summary.LastMessage = &last
	}

	s.upsertSummary(summary)
	for i := range s.chats {
		if s.chats[i].ID == c.ID {
			s.chats[i].UnreadCount = 0
		}
	}
}

// CloseChat leaves the active conversation; the list keeps tracking it.
func (s *Sync) CloseChat() {
	s.mu.Lock()
	if s.active != nil && s.selfTyping != nil {
		_ = s.socket.Emit(domain.EventStopTyping, domain.ChatRoomPayload{Chat: s.active.ID})
	}
	s.stopSelfTyping()
	s.stopRemoteTyping()
	s.active = nil
	s.messages = nil
	s.index = make(map[domain.MessageID]int)
	s.mu.Unlock()
	s.notify()
}

// SendMessage sends content to the active conversation over both paths and
// returns the stored message from the REST echo.
func (s *Sync) SendMessage(ctx context.Context, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	req := domain.NewMessageRequest{Content: content, ClientID: domain.MessageID(uuid.NewString())}
	if err := validate.Struct(req); err != nil {
		return domain.Message{}, err
	}

	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return domain.Message{}, domain.ErrNoActiveChat
	}
	chatID := s.active.ID
	s.mu.Unlock()

	payload := domain.SendMessagePayload{Chat: chatID, Content: content, ClientID: req.ClientID}
	if err := s.socket.Emit(domain.EventSendMessage, payload); err != nil {
		s.log.Warn("send_message not emitted; relying on REST", zap.Error(err))
		s.setError("real-time send failed: " + err.Error())
	}
	s.StopTyping()

	msg, err := s.api.AddMessage(ctx, chatID, req)
	if err != nil {
		return domain.Message{}, err
	}
	if msg.Chat == "" {
		msg.Chat = chatID
	}
	s.apply(chatID, msg)
	return msg, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Sync) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Active returns the open conversation with its messages, or a zero Chat.
func (s *Sync) Active() domain.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return domain.Chat{}
	}
	c := copyChat(*s.active)
	c.Messages = append([]domain.Message(nil), s.messages...)
	return c
}

// ClearError dismisses the current error.
func (s *Sync) ClearError() {
	s.setError("")
}

// merge inserts m or replaces the copy with the same ID. Caller holds mu.
func (s *Sync) merge(m domain.Message) bool {
	if i, ok := s.index[m.ID]; ok {
		m.Read = m.Read || s.messages[i].Read
		s.messages[i] = m
		return false
	}
	s.index[m.ID] = len(s.messages)
	s.messages = append(s.messages, m)
	return true
}

// apply routes one message to the open conversation and the chat list. A
// message ID seen before for the chat never counts as unread or reorders the
// list again, whatever order the copies arrive in.
func (s *Sync) apply(chatID domain.ChatID, m domain.Message) {
	s.mu.Lock()
	open := s.active != nil && s.active.ID == chatID
	switch {
	case open:
		s.merge(m)
	case s.opening == chatID:
		s.pending = append(s.pending, m)
	}
	dup := !s.remember(chatID, m.ID)

	i := s.summaryIndex(chatID)
	if i < 0 {
		s.chats = append(s.chats, domain.Chat{ID: chatID})
		i = len(s.chats) - 1
		s.log.Debug("message for chat not in list", zap.String("chat", chatID.String()))
	}
	c := s.chats[i]
	if prev := c.LastMessage; prev != nil && prev.ID == m.ID {
		last := m
		last.Read = last.Read || prev.Read
		c.LastMessage = &last
	} else if !dup && newer(m, prev) {
		last := m
		c.LastMessage = &last
	}
	if dup {
		s.chats[i] = c
	} else {
		if !open && s.opening != chatID && m.Sender != s.me {
			c.UnreadCount++
		}
		if !m.CreatedAt.IsZero() {
			c.UpdatedAt = m.CreatedAt
		}
		// Most recent conversation first.
		copy(s.chats[1:i+1], s.chats[:i])
		s.chats[0] = c
	}
	if open {
		s.active.LastMessage = c.LastMessage
		s.active.UpdatedAt = c.UpdatedAt
	}
	s.mu.Unlock()
	s.notify()
}

// remember records id for chat and reports whether it was new. Caller holds mu.
func (s *Sync) remember(chat domain.ChatID, id domain.MessageID) bool {
	if id == "" {
		return true
	}
	ids := s.seen[chat]
	if ids == nil {
		ids = make(map[domain.MessageID]struct{})
		s.seen[chat] = ids
	}
	if _, ok := ids[id]; ok {
		return false
	}
	ids[id] = struct{}{}
	return true
}

// newer reports whether m should replace prev as the chat preview. Messages
// without a timestamp are taken as just sent.
func newer(m domain.Message, prev *domain.Message) bool {
	return prev == nil || m.CreatedAt.IsZero() || !m.CreatedAt.Before(prev.CreatedAt)
}

func (s *Sync) summaryIndex(id domain.ChatID) int {
	for i := range s.chats {
		if s.chats[i].ID == id {
			return i
		}
	}
	return -1
}

// upsertSummary replaces the list entry for c, or prepends it. Caller holds mu.
func (s *Sync) upsertSummary(c domain.Chat) {
	c.Messages = nil
	if c.LastMessage != nil {
		s.remember(c.ID, c.LastMessage.ID)
	}
	if i := s.summaryIndex(c.ID); i >= 0 {
		s.chats[i] = c
		return
	}
	s.chats = append([]domain.Chat{c}, s.chats...)
}

func (s *Sync) setError(msg string) {
	s.mu.Lock()
	changed := s.errMsg != msg
	s.errMsg = msg
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Sync) notify() {
	if s.opts.OnChange == nil {
		return
	}
	s.opts.OnChange(s.Snapshot())
}

func decode[T any](s *Sync, event string, data json.RawMessage) (T, bool) {
	var v T
	if len(data) == 0 {
		return v, true
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.Warn("bad payload", zap.String("event", event), zap.Error(err))
		return v, false
	}
	return v, true
}
