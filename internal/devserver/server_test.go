package devserver_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookit/internal/api"
	"bookit/internal/chat"
	"bookit/internal/devserver"
	"bookit/internal/domain"
	"bookit/internal/realtime"
)

const wait = 3 * time.Second

func newServer(t *testing.T) (*devserver.Server, *httptest.Server) {
	t.Helper()
	s, err := devserver.New(devserver.Options{Secret: []byte("test-secret"), BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	hs := httptest.NewServer(s.Handler())
	t.Cleanup(hs.Close)
	return s, hs
}

type client struct {
	session domain.Session
	api     *api.Client
	sync    *chat.Sync
}

func connect(t *testing.T, hs *httptest.Server, email string) *client {
	t.Helper()
	c := &client{}
	tokens := domain.TokenFunc(func() string { return c.session.Token })

	var err error
	c.api, err = api.New(api.Options{BaseURL: hs.URL + "/api", Tokens: tokens})
	require.NoError(t, err)
	c.session, err = c.api.Login(context.Background(), domain.LoginRequest{Email: email, Password: "password1"})
	require.NoError(t, err)

	sock := realtime.New(realtime.Options{
		URL:            "ws" + strings.TrimPrefix(hs.URL, "http") + "/ws",
		Tokens:         tokens,
		ReconnectDelay: 10 * time.Millisecond,
	})
	c.sync = chat.New(c.api, sock, c.session.User.ID, chat.Options{TypingTimeout: time.Minute})
	require.NoError(t, c.sync.Start(context.Background()))
	t.Cleanup(func() { _ = c.sync.Close() })

	require.Eventually(t, func() bool { return c.sync.Snapshot().Authenticated }, wait, 5*time.Millisecond)
	return c
}

func TestLogin_Errors(t *testing.T) {
	s, hs := newServer(t)
	_, err := s.AddUser("Alice", "alice@example.com", "password1", domain.RoleCustomer)
	require.NoError(t, err)
	_, err = s.AddUser("Alice again", "ALICE@example.com", "password1", domain.RoleCustomer)
	assert.Error(t, err)

	c, err := api.New(api.Options{BaseURL: hs.URL + "/api"})
	require.NoError(t, err)

	_, err = c.Login(context.Background(), domain.LoginRequest{Email: "alice@example.com", Password: "wrong-one"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = c.ListChats(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	sess, err := c.Register(context.Background(), domain.RegisterRequest{
		Name: "Bob", Email: "bob@example.com", Password: "password1", Role: domain.RoleProvider,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "Bob", sess.User.Name)
}

func TestChat_EndToEnd(t *testing.T) {
	s, hs := newServer(t)
	alice, err := s.AddUser("Alice", "alice@example.com", "password1", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := s.AddUser("Bob", "bob@example.com", "password1", domain.RoleProvider)
	require.NoError(t, err)

	a := connect(t, hs, "alice@example.com")
	b := connect(t, hs, "bob@example.com")
	ctx := context.Background()

	c, err := a.sync.CreateChat(ctx, domain.CreateChatRequest{Participant: bob.ID})
	require.NoError(t, err)

	// Bob learns about the new chat from the push.
	require.Eventually(t, func() bool {
		snap := b.sync.Snapshot()
		return len(snap.Chats) == 1 && snap.Chats[0].ID == c.ID
	}, wait, 5*time.Millisecond)

	_, err = a.sync.OpenChat(ctx, c.ID)
	require.NoError(t, err)

	sent, err := a.sync.SendMessage(ctx, "Is 3pm still OK?")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, sent.Sender)

	// Socket echo and REST reply collapse into one message.
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, a.sync.Active().Messages, 1)

	require.Eventually(t, func() bool {
		snap := b.sync.Snapshot()
		return len(snap.Chats) == 1 && snap.Chats[0].UnreadCount == 1
	}, wait, 5*time.Millisecond)

	// Bob reads it; Alice sees the receipt on her own message.
	opened, err := b.sync.OpenChat(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, opened.Messages, 1)
	require.Eventually(t, func() bool {
		msgs := a.sync.Snapshot().Messages
		return len(msgs) == 1 && msgs[0].Read
	}, wait, 5*time.Millisecond)

	// Typing relays only to the other room member.
	require.NoError(t, b.sync.Typing())
	require.Eventually(t, func() bool { return a.sync.Snapshot().IsTyping(bob.ID) }, wait, 5*time.Millisecond)
	b.sync.StopTyping()
	require.Eventually(t, func() bool { return !a.sync.Snapshot().IsTyping(bob.ID) }, wait, 5*time.Millisecond)

	chats, err := b.api.ListChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, 0, chats[0].UnreadCount)
}

func TestChat_RejoinsAfterServerClose(t *testing.T) {
	s, hs := newServer(t)
	_, err := s.AddUser("Alice", "alice@example.com", "password1", domain.RoleCustomer)
	require.NoError(t, err)
	bob, err := s.AddUser("Bob", "bob@example.com", "password1", domain.RoleProvider)
	require.NoError(t, err)

	a := connect(t, hs, "alice@example.com")
	b := connect(t, hs, "bob@example.com")
	ctx := context.Background()

	c, err := a.sync.CreateChat(ctx, domain.CreateChatRequest{Participant: bob.ID})
	require.NoError(t, err)
	_, err = a.sync.OpenChat(ctx, c.ID)
	require.NoError(t, err)
	_, err = b.sync.OpenChat(ctx, c.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Disconnect(a.session.User.ID, "maintenance"))
	require.Eventually(t, func() bool { return a.sync.Snapshot().Authenticated }, wait, 5*time.Millisecond)

	// Typing is room-scoped, so it only arrives if the room was rejoined.
	require.Eventually(t, func() bool {
		b.sync.StopTyping()
		_ = b.sync.Typing()
		return a.sync.Snapshot().IsTyping(bob.ID)
	}, wait, 20*time.Millisecond)
}

func TestOpenChat_UnknownChat(t *testing.T) {
	s, hs := newServer(t)
	_, err := s.AddUser("Alice", "alice@example.com", "password1", domain.RoleCustomer)
	require.NoError(t, err)
	a := connect(t, hs, "alice@example.com")

	_, err = a.sync.OpenChat(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
