package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookit/internal/domain"
	"bookit/internal/store"
)

type fakeAuthAPI struct {
	domain.AuthAPI
	session domain.Session
	err     error
	logins  int
}

func (f *fakeAuthAPI) Login(context.Context, domain.LoginRequest) (domain.Session, error) {
	f.logins++
	return f.session, f.err
}

func (f *fakeAuthAPI) Me(context.Context) (domain.User, error) {
	return domain.User{ID: f.session.User.ID, Name: "Ada L."}, f.err
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func newService(t *testing.T, api *fakeAuthAPI) (*Service, *store.SessionStore) {
	t.Helper()
	st := store.NewSessionStore(t.TempDir())
	return New(api, nil, st, nil), st
}

func TestLogin_ValidatesBeforeCalling(t *testing.T) {
	api := &fakeAuthAPI{}
	svc, _ := newService(t, api)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "nope", Password: "x"}, false)
	require.Error(t, err)
	assert.Equal(t, 0, api.logins)
	assert.NotEmpty(t, svc.State().Error)
}

func TestLogin_SetsTokenAndCaches(t *testing.T) {
	api := &fakeAuthAPI{session: domain.Session{Token: "tok", User: domain.User{ID: "u1", Name: "Ada"}}}
	svc, st := newService(t, api)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "secret1"}, true)
	require.NoError(t, err)
	assert.Equal(t, "tok", svc.Token())
	u, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, "Ada", u.Name)

	cached, ok, err := st.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", cached.Token)

	require.NoError(t, svc.Logout())
	assert.Empty(t, svc.Token())
	_, ok, err = st.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_ServerErrorRecorded(t *testing.T) {
	api := &fakeAuthAPI{err: domain.ErrUnauthorized}
	svc, _ := newService(t, api)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "secret1"}, false)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, domain.ErrUnauthorized.Error(), svc.State().Error)
	assert.Empty(t, svc.Token())
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"opaque token", "opaque", true},
		{"valid jwt", signed(t, time.Now().Add(time.Hour)), true},
		{"expired jwt", signed(t, time.Now().Add(-time.Minute)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, st := newService(t, &fakeAuthAPI{})
			require.NoError(t, st.SaveSession(domain.Session{Token: tt.token, User: domain.User{ID: "u1"}}, true))

			_, ok, err := svc.Restore()
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.token, svc.Token())
				return
			}
			assert.Empty(t, svc.Token())
			_, cached, err := st.LoadSession()
			require.NoError(t, err)
			assert.False(t, cached)
		})
	}
}

func TestMe_RequiresSession(t *testing.T) {
	api := &fakeAuthAPI{session: domain.Session{Token: "tok", User: domain.User{ID: "u1"}}}
	svc, _ := newService(t, api)

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoToken)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "secret1"}, false)
	require.NoError(t, err)
	u, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", u.Name)
	cur, _ := svc.Current()
	assert.Equal(t, "Ada L.", cur.Name)
}
