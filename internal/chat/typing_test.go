package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domain"
)

func TestRemoteTyping_ExpiresWithoutStop(t *testing.T) {
	f := newFixture(t, Options{TypingTimeout: 30 * time.Millisecond})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	f.socket.push(t, domain.EventUserTyping, domain.TypingPayload{Chat: "c1", User: peer})
	assert.True(t, f.sync.Snapshot().IsTyping(peer))

	assert.Eventually(t, func() bool {
		return !f.sync.Snapshot().IsTyping(peer)
	}, time.Second, 5*time.Millisecond)
}

func TestRemoteTyping_Filters(t *testing.T) {
	f := newFixture(t, Options{TypingTimeout: time.Minute})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	f.socket.push(t, domain.EventUserTyping, domain.TypingPayload{Chat: "c1", User: me})
	f.socket.push(t, domain.EventUserTyping, domain.TypingPayload{Chat: "c2", User: "u3"})
	assert.Empty(t, f.sync.Snapshot().Typing)

	f.socket.push(t, domain.EventUserTyping, domain.TypingPayload{Chat: "c1", User: peer})
	assert.Equal(t, []domain.UserID{peer}, f.sync.Snapshot().Typing)

	f.socket.push(t, domain.EventUserStopTyping, domain.TypingPayload{Chat: "c1", User: peer})
	assert.Empty(t, f.sync.Snapshot().Typing)
}

func TestRemoteTyping_ClearedOnSwitch(t *testing.T) {
	f := newFixture(t, Options{TypingTimeout: time.Minute})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)
	f.socket.push(t, domain.EventUserTyping, domain.TypingPayload{Chat: "c1", User: peer})

	_, err = f.sync.OpenChat(context.Background(), "c2")
	require.NoError(t, err)
	assert.Empty(t, f.sync.Snapshot().Typing)
}

func TestTyping_OneEmitPerBurst(t *testing.T) {
	f := newFixture(t, Options{TypingTimeout: 40 * time.Millisecond})
	assert.ErrorIs(t, f.sync.Typing(), domain.ErrNoActiveChat)

	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	require.NoError(t, f.sync.Typing())
	require.NoError(t, f.sync.Typing())
	require.NoError(t, f.sync.Typing())
	assert.Len(t, f.socket.events(domain.EventTyping), 1)

	assert.Eventually(t, func() bool {
		return len(f.socket.events(domain.EventStopTyping)) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.sync.Typing())
	assert.Len(t, f.socket.events(domain.EventTyping), 2)
}

func TestSendMessage_EndsTypingBurst(t *testing.T) {
	f := newFixture(t, Options{TypingTimeout: time.Minute})
	_, err := f.sync.OpenChat(context.Background(), "c1")
	require.NoError(t, err)

	require.NoError(t, f.sync.Typing())
	_, err = f.sync.SendMessage(context.Background(), "done")
	require.NoError(t, err)

	stops := f.socket.events(domain.EventStopTyping)
	require.Len(t, stops, 1)
	assert.Equal(t, domain.ChatRoomPayload{Chat: "c1"}, stops[0].Payload)
}
