package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domain"
)

const (
	me   domain.UserID = "me"
	peer domain.UserID = "u2"
)

type fixture struct {
	sync   *Sync
	socket *fakeSocket
	api    *fakeAPI
	log    *callLog
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	log := &callLog{}
	api := &fakeAPI{
		log: log,
		chats: []domain.Chat{
			{ID: "c1", Participants: []domain.User{{ID: me}, {ID: peer}}},
			{ID: "c2", Participants: []domain.User{{ID: me}, {ID: "u3"}}},
		},
		history: map[domain.ChatID][]domain.Message{
			"c1": {
				{ID: "m1", Chat: "c1", Sender: peer, Content: "hello"},
				{ID: "m2", Chat: "c1", Sender: me, Content: "hi"},
			},
		},
	}
	sock := newFakeSocket(log)
	s := New(api, sock, me, opts)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return &fixture{sync: s, socket: sock, api: api, log: log}
}

func msg(id domain.MessageID, chat domain.ChatID, sender domain.UserID) domain.NewMessagePayload {
	return domain.NewMessagePayload{
		Chat:    chat,
		Message: domain.Message{ID: id, Chat: chat, Sender: sender, Content: string(id), CreatedAt: time.Now()},
	}
}

func findChat(t *testing.T, snap Snapshot, id domain.ChatID) domain.Chat {
	t.Helper()
	for _, c := range snap.Chats {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("chat %s not in list", id)
	return domain.Chat{}
}

func TestStart_RequiresUser(t *testing.T) {
	s := New(&fakeAPI{log: &callLog{}}, newFakeSocket(&callLog{}), "", Options{})
	assert.ErrorIs(t, s.Start(context.Background()), domain.ErrNoToken)
}

func TestOpenChat_HistoryThenJoinThenRead(t *testing.T) {
	f := newFixture(t, Options{})

	c, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"get c1", "emit join_chat", "emit mark_read"}, f.log.list())
	assert.Len(t, c.Messages, 2)
	assert.Equal(t, domain.ChatID("c1"), f.sync.Snapshot().Active.ID)
}

func TestOpenChat_FallsBackToRESTRead(t *testing.T) {
	f := newFixture(t, Options{})
	f.socket.emitErr = domain.ErrNotConnected

	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []domain.ChatID{"c1"}, f.api.markRead)
	assert.Contains(t, f.sync.Snapshot().Error, "could not join chat")
}

func TestOpenChat_RESTErrorPropagates(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.err = domain.ErrNotFound

	_, err := f.sync.OpenChat(context.Background(), "c9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, f.sync.Snapshot().Active)
	assert.Empty(t, f.socket.events(domain.EventJoinChat))
}

func TestOpenChat_BuffersPushesDuringFetch(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.FetchChats(context.Background())
	require.NoError(t, err)

	f.api.onGet = func(domain.ChatID) {
		// Arrives after the server built the history but before it lands.
		f.socket.push(t, domain.EventNewMessage, msg("m3", "c1", peer))
	}
	c, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	ids := make([]domain.MessageID, 0, len(c.Messages))
	for _, m := range c.Messages {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []domain.MessageID{"m1", "m2", "m3"}, ids)
	assert.Equal(t, 0, findChat(t, f.sync.Snapshot(), "c1").UnreadCount)
}

func TestSendMessage_DeduplicatesEcho(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	// The socket echo beats the REST reply.
	f.api.onAdd = func(chat domain.ChatID, m domain.Message) {
		f.socket.push(t, domain.EventNewMessage, domain.NewMessagePayload{Chat: chat, Message: m})
	}
	sent, err := f.sync.SendMessage(context.Background(), "  see you at 3  ")
	require.NoError(t, err)
	assert.Equal(t, "see you at 3", sent.Content)

	emits := f.socket.events(domain.EventSendMessage)
	require.Len(t, emits, 1)
	p := emits[0].Payload.(domain.SendMessagePayload)
	assert.Equal(t, sent.ID, p.ClientID)

	// A late duplicate push changes nothing either.
	f.socket.push(t, domain.EventNewMessage, domain.NewMessagePayload{Chat: "c1", Message: sent})

	active := f.sync.Active()
	require.Len(t, active.Messages, 3)
	assert.Equal(t, sent.ID, active.Messages[2].ID)
	assert.Equal(t, 0, findChat(t, f.sync.Snapshot(), "c1").UnreadCount)
}

func TestSendMessage_Errors(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.sync.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrNoActiveChat)

	_, err = f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	_, err = f.sync.SendMessage(context.Background(), "   ")
	assert.Error(t, err)

	f.api.err = errors.New("boom")
	_, err = f.sync.SendMessage(context.Background(), "hello")
	assert.EqualError(t, err, "boom")
}

func TestSendMessage_SocketFailureStillSendsREST(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)
	f.socket.emitErr = domain.ErrNotConnected

	sent, err := f.sync.SendMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", sent.Content)
	assert.Contains(t, f.sync.Snapshot().Error, "real-time send failed")
}

func TestNewMessage_UnreadCounting(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.FetchChats(context.Background())
	require.NoError(t, err)
	_, err = f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	f.socket.push(t, domain.EventNewMessage, msg("x1", "c2", "u3"))
	snap := f.sync.Snapshot()
	assert.Equal(t, 1, findChat(t, snap, "c2").UnreadCount)
	assert.Equal(t, domain.ChatID("c2"), snap.Chats[0].ID)
	assert.Len(t, snap.Messages, 2)

	// Same message again: no double count.
	f.socket.push(t, domain.EventNewMessage, msg("x1", "c2", "u3"))
	// Own message from another device.
	f.socket.push(t, domain.EventNewMessage, msg("x2", "c2", me))
	assert.Equal(t, 1, findChat(t, f.sync.Snapshot(), "c2").UnreadCount)

	f.socket.push(t, domain.EventNewMessage, msg("x3", "c1", peer))
	snap = f.sync.Snapshot()
	assert.Equal(t, 0, findChat(t, snap, "c1").UnreadCount)
	assert.Len(t, snap.Messages, 3)
	assert.Equal(t, domain.MessageID("x3"), findChat(t, snap, "c1").LastMessage.ID)
}

func TestNewMessage_LateDuplicateInOpenChat(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.FetchChats(context.Background())
	require.NoError(t, err)
	_, err = f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	a := msg("a", "c1", me)
	b := msg("b", "c1", peer)
	b.Message.CreatedAt = a.Message.CreatedAt.Add(time.Second)
	f.socket.push(t, domain.EventNewMessage, a)
	f.socket.push(t, domain.EventNewMessage, b)
	f.socket.push(t, domain.EventNewMessage, msg("x", "c2", "u3"))
	// The REST echo of a lands after the reply and after traffic elsewhere.
	f.socket.push(t, domain.EventNewMessage, a)

	snap := f.sync.Snapshot()
	assert.Len(t, snap.Messages, 4)
	assert.Equal(t, domain.MessageID("b"), findChat(t, snap, "c1").LastMessage.ID)
	require.NotNil(t, snap.Active.LastMessage)
	assert.Equal(t, domain.MessageID("b"), snap.Active.LastMessage.ID)
	assert.Equal(t, domain.ChatID("c2"), snap.Chats[0].ID)
	assert.Equal(t, 0, findChat(t, snap, "c1").UnreadCount)
}

func TestNewMessage_LateDuplicateInClosedChat(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.FetchChats(context.Background())
	require.NoError(t, err)

	x := msg("x", "c2", "u3")
	y := msg("y", "c2", "u3")
	y.Message.CreatedAt = x.Message.CreatedAt.Add(time.Second)
	f.socket.push(t, domain.EventNewMessage, x)
	f.socket.push(t, domain.EventNewMessage, y)
	f.socket.push(t, domain.EventNewMessage, msg("z", "c1", peer))
	f.socket.push(t, domain.EventNewMessage, x)

	snap := f.sync.Snapshot()
	c2 := findChat(t, snap, "c2")
	assert.Equal(t, 2, c2.UnreadCount)
	assert.Equal(t, domain.MessageID("y"), c2.LastMessage.ID)
	assert.Equal(t, domain.ChatID("c1"), snap.Chats[0].ID)
	assert.Equal(t, 3, snap.Unread())
}

func TestNewMessage_HistoryRepushIgnored(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)
	f.sync.CloseChat()

	f.socket.push(t, domain.EventNewMessage, msg("m1", "c1", peer))
	assert.Equal(t, 0, findChat(t, f.sync.Snapshot(), "c1").UnreadCount)
}

func TestNewMessage_UnknownChatIsInserted(t *testing.T) {
	f := newFixture(t, Options{})

	f.socket.push(t, domain.EventNewMessage, msg("z1", "c7", peer))
	snap := f.sync.Snapshot()
	require.NotEmpty(t, snap.Chats)
	assert.Equal(t, domain.ChatID("c7"), snap.Chats[0].ID)
	assert.Equal(t, 1, snap.Chats[0].UnreadCount)
	assert.Equal(t, 1, snap.Unread())
}

func TestMessagesRead_FlipsOwnMessagesOnly(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	// My own receipt is ignored.
	f.socket.push(t, domain.EventMessagesRead, domain.MessagesReadPayload{Chat: "c1", User: me})
	for _, m := range f.sync.Snapshot().Messages {
		assert.False(t, m.Read)
	}

	f.socket.push(t, domain.EventMessagesRead, domain.MessagesReadPayload{Chat: "c1", User: peer})
	for _, m := range f.sync.Snapshot().Messages {
		assert.Equal(t, m.Sender == me, m.Read, "message %s", m.ID)
	}
}

func TestMessagesRead_OtherChatIgnored(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	f.socket.push(t, domain.EventMessagesRead, domain.MessagesReadPayload{Chat: "c2", User: peer})
	for _, m := range f.sync.Snapshot().Messages {
		assert.False(t, m.Read)
	}
}

func TestChatUpdate_ReplacesSummary(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.FetchChats(context.Background())
	require.NoError(t, err)

	f.socket.push(t, domain.EventChatUpdate, domain.ChatUpdatePayload{Chat: domain.Chat{ID: "c2", UnreadCount: 4}})
	assert.Equal(t, 4, findChat(t, f.sync.Snapshot(), "c2").UnreadCount)
}

func TestSocketErrorsAreRecorded(t *testing.T) {
	f := newFixture(t, Options{})

	f.socket.push(t, domain.EventError, domain.ErrorPayload{Message: "Not authorized to join this chat"})
	assert.Equal(t, "Not authorized to join this chat", f.sync.Snapshot().Error)

	f.socket.push(t, domain.EventConnectError, domain.ErrorPayload{Message: "dial refused"})
	snap := f.sync.Snapshot()
	assert.Equal(t, "connection error: dial refused", snap.Error)
	assert.False(t, snap.Connected)

	f.socket.push(t, domain.EventAuthenticated, domain.AuthenticatedPayload{Success: false, Error: "jwt expired"})
	assert.Equal(t, "authentication failed: jwt expired", f.sync.Snapshot().Error)

	f.sync.ClearError()
	assert.Empty(t, f.sync.Snapshot().Error)
}

func TestAuthenticated_RejoinsActiveChat(t *testing.T) {
	f := newFixture(t, Options{})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	f.socket.push(t, domain.EventConnect, nil)
	f.socket.push(t, domain.EventAuthenticated, domain.AuthenticatedPayload{Success: true, UserID: me})

	joins := f.socket.events(domain.EventJoinChat)
	require.Len(t, joins, 2)
	assert.Equal(t, domain.ChatRoomPayload{Chat: "c1"}, joins[1].Payload)
	snap := f.sync.Snapshot()
	assert.True(t, snap.Connected)
	assert.True(t, snap.Authenticated)
}

func TestOnChange_ReceivesSnapshots(t *testing.T) {
	var last Snapshot
	calls := 0
	f := newFixture(t, Options{OnChange: func(s Snapshot) {
		calls++
		last = s
	}})
	_, err := f.sync.FetchChats(context.Background())
	require.NoError(t, err)

	assert.Positive(t, calls)
	assert.Len(t, last.Chats, 2)
}

func TestCreateChat(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.sync.CreateChat(context.Background(), domain.CreateChatRequest{})
	assert.Error(t, err)

	c, err := f.sync.CreateChat(context.Background(), domain.CreateChatRequest{Participant: "u9"})
	require.NoError(t, err)
	assert.Equal(t, domain.ChatID("new"), c.ID)
	assert.Equal(t, domain.ChatID("new"), f.sync.Snapshot().Chats[0].ID)
}
