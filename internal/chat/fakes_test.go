package chat

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"bookit/internal/domain"
)

type emitted struct {
	Event   string
	Payload any
}

// fakeSocket records emits and lets tests push events synchronously.
type fakeSocket struct {
	mu       sync.Mutex
	handlers map[string][]domain.Handler
	emits    []emitted
	emitErr  error
	log      *callLog
}

func newFakeSocket(log *callLog) *fakeSocket {
	return &fakeSocket{handlers: make(map[string][]domain.Handler), log: log}
}

func (f *fakeSocket) Connect(context.Context) error { return nil }
func (f *fakeSocket) Connected() bool               { return true }
func (f *fakeSocket) Authenticated() bool           { return true }
func (f *fakeSocket) Close() error                  { return nil }

func (f *fakeSocket) Emit(event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emitErr != nil {
		return f.emitErr
	}
	f.emits = append(f.emits, emitted{Event: event, Payload: payload})
	f.log.add("emit " + event)
	return nil
}

func (f *fakeSocket) On(event string, h domain.Handler) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[event] = append(f.handlers[event], h)
	idx := len(f.handlers[event]) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.handlers[event][idx] = nil
	}
}

func (f *fakeSocket) push(t *testing.T, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	f.mu.Lock()
	hs := append([]domain.Handler(nil), f.handlers[event]...)
	f.mu.Unlock()
	for _, h := range hs {
		if h != nil {
			h(data)
		}
	}
}

func (f *fakeSocket) events(name string) []emitted {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []emitted
	for _, e := range f.emits {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(c string) {
	l.mu.Lock()
	l.calls = append(l.calls, c)
	l.mu.Unlock()
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// fakeAPI serves chats from memory. Hooks run before each call returns.
type fakeAPI struct {
	log      *callLog
	chats    []domain.Chat
	history  map[domain.ChatID][]domain.Message
	err      error
	onGet    func(domain.ChatID)
	onAdd    func(domain.ChatID, domain.Message)
	markRead []domain.ChatID
	markErr  error
}

func (f *fakeAPI) ListChats(context.Context) ([]domain.Chat, error) {
	f.log.add("list")
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.Chat(nil), f.chats...), nil
}

func (f *fakeAPI) GetChat(_ context.Context, id domain.ChatID) (domain.Chat, error) {
	f.log.add("get " + id.String())
	if f.err != nil {
		return domain.Chat{}, f.err
	}
	if f.onGet != nil {
		f.onGet(id)
	}
	c := domain.Chat{ID: id}
	for _, s := range f.chats {
		if s.ID == id {
			c = s
		}
	}
	c.Messages = append([]domain.Message(nil), f.history[id]...)
	return c, nil
}

func (f *fakeAPI) CreateChat(_ context.Context, req domain.CreateChatRequest) (domain.Chat, error) {
	f.log.add("create")
	if f.err != nil {
		return domain.Chat{}, f.err
	}
	return domain.Chat{ID: "new", Participants: []domain.User{{ID: req.Participant}}}, nil
}

func (f *fakeAPI) AddMessage(_ context.Context, id domain.ChatID, req domain.NewMessageRequest) (domain.Message, error) {
	f.log.add("add " + id.String())
	if f.err != nil {
		return domain.Message{}, f.err
	}
	m := domain.Message{ID: req.ClientID, Chat: id, Sender: me, Content: req.Content}
	if f.onAdd != nil {
		f.onAdd(id, m)
	}
	return m, nil
}

func (f *fakeAPI) MarkRead(_ context.Context, id domain.ChatID) error {
	f.log.add("read " + id.String())
	f.markRead = append(f.markRead, id)
	return f.markErr
}
