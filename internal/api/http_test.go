package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bookit/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{
		BaseURL: srv.URL + "/api",
		Tokens:  domain.TokenFunc(func() string { return token }),
	})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
	_, err = New(Options{BaseURL: "::not a url"})
	assert.Error(t, err)
}

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(domain.User{ID: "u1", Name: "Ada"})
	}, "tok-123")

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/auth/me", gotPath)
	assert.Equal(t, domain.UserID("u1"), u.ID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}, "")

	_, err := c.ListChats(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestClient_UnwrapsDataEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"c1","unreadCount":2}]}`))
	}, "t")

	chats, err := c.ListChats(context.Background())
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, domain.ChatID("c1"), chats[0].ID)
	assert.Equal(t, 2, chats[0].UnreadCount)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, domain.ErrForbidden},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"success":false,"message":"nope"}`))
			}, "t")

			_, err := c.GetBooking(context.Background(), "b1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message)
			assert.Equal(t, "/bookings/b1", apiErr.Path)
		})
	}
}

func TestClient_LogsUnauthorized(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, Logger: zap.New(core)})
	require.NoError(t, err)

	_, err = c.ListFavorites(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, logs.FilterMessageSnippet("unauthorized").Len())
}

func TestClient_SearchServicesQuery(t *testing.T) {
	var path, rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}, "")

	_, err := c.SearchServices(context.Background(), domain.ServiceFilter{
		Category: "hair",
		MaxPrice: decimal.RequireFromString("45.50"),
		Page:     domain.Page{Page: 2, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, "/api/services/search", path)
	assert.Equal(t, "category=hair&limit=10&maxPrice=45.5&page=2", rawQuery)

	_, err = c.SearchServices(context.Background(), domain.ServiceFilter{})
	require.NoError(t, err)
	assert.Equal(t, "/api/services", path)
	assert.Empty(t, rawQuery)
}

func TestClient_AddMessageAndMarkRead(t *testing.T) {
	var methods, paths []string
	var body domain.NewMessageRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&body)
			_, _ = w.Write([]byte(`{"_id":"m1","chat":"c 1","content":"hi"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}, "t")

	msg, err := c.AddMessage(context.Background(), "c 1", domain.NewMessageRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageID("m1"), msg.ID)
	assert.Equal(t, "hi", body.Content)

	require.NoError(t, c.MarkRead(context.Background(), "c 1"))
	assert.Equal(t, []string{http.MethodPost, http.MethodPut}, methods)
	assert.Equal(t, []string{"/api/chats/c 1/messages", "/api/chats/c 1/read"}, paths)
}
