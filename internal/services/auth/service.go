package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"bookit/internal/domain"
	"bookit/internal/logger"
	"bookit/internal/services/state"
	"bookit/internal/validate"
)

// Service manages the signed-in session.
type Service struct {
	api   domain.AuthAPI
	users domain.UserAPI
	store domain.SessionStore
	state *state.Mirror[domain.Session]
	log   *zap.Logger
	now   func() time.Time
}

// New constructs an auth Service. users may be nil when profile
// operations are not needed.
func New(api domain.AuthAPI, users domain.UserAPI, store domain.SessionStore, log *zap.Logger) *Service {
	return &Service{
		api:   api,
		users: users,
		store: store,
		state: &state.Mirror[domain.Session]{},
		log:   logger.OrNop(log).Named("auth"),
		now:   time.Now,
	}
}

// Token returns the current bearer token, or "" when signed out.
func (s *Service) Token() string {
	return s.state.View().Data.Token
}

// Current returns the signed-in user.
func (s *Service) Current() (domain.User, bool) {
	sess := s.state.View().Data
	return sess.User, sess.Token != ""
}

// State exposes the session mirror.
func (s *Service) State() state.View[domain.Session] {
	return s.state.View()
}

// Login signs in with email and password. remember selects the persistent
// session cache.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest, remember bool) (domain.Session, error) {
	return s.signIn(ctx, req, remember, func(ctx context.Context) (domain.Session, error) {
		return s.api.Login(ctx, req)
	})
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest, remember bool) (domain.Session, error) {
	return s.signIn(ctx, req, remember, func(ctx context.Context) (domain.Session, error) {
		return s.api.Register(ctx, req)
	})
}

// VerifyOTP signs in with a one-time code.
func (s *Service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest, remember bool) (domain.Session, error) {
	return s.signIn(ctx, req, remember, func(ctx context.Context) (domain.Session, error) {
		return s.api.VerifyOTP(ctx, req)
	})
}

// SocialLogin exchanges a third-party identity token for a session.
func (s *Service) SocialLogin(ctx context.Context, req domain.SocialLoginRequest, remember bool) (domain.Session, error) {
	return s.signIn(ctx, req, remember, func(ctx context.Context) (domain.Session, error) {
		return s.api.SocialLogin(ctx, req)
	})
}

func (s *Service) signIn(
	ctx context.Context,
	req any,
	remember bool,
	call func(context.Context) (domain.Session, error),
) (domain.Session, error) {
	if err := validate.Struct(req); err != nil {
		s.state.Fail(err)
		return domain.Session{}, err
	}
	sess, err := state.Load(ctx, s.state, call)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.store.SaveSession(sess, remember); err != nil {
		// The session is live in memory even if caching failed.
		s.log.Warn("session not cached", zap.Error(err))
	}
	s.log.Info("signed in", zap.String("user", sess.User.ID.String()), zap.Bool("remember", remember))
	return sess, nil
}

// ForgotPassword asks the server to send a reset link.
func (s *Service) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	return s.plain(ctx, req, func(ctx context.Context) error { return s.api.ForgotPassword(ctx, req) })
}

// ResetPassword sets a new password with a reset token.
func (s *Service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return s.plain(ctx, req, func(ctx context.Context) error { return s.api.ResetPassword(ctx, req) })
}

// VerifyEmail confirms an email address.
func (s *Service) VerifyEmail(ctx context.Context, req domain.VerifyEmailRequest) error {
	return s.plain(ctx, req, func(ctx context.Context) error { return s.api.VerifyEmail(ctx, req) })
}

// SendOTP requests a one-time code by SMS.
func (s *Service) SendOTP(ctx context.Context, req domain.OTPRequest) error {
	return s.plain(ctx, req, func(ctx context.Context) error { return s.api.SendOTP(ctx, req) })
}

func (s *Service) plain(ctx context.Context, req any, call func(context.Context) error) error {
	if err := validate.Struct(req); err != nil {
		s.state.Fail(err)
		return err
	}
	_, err := state.Do(ctx, s.state, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	}, nil)
	return err
}

// Restore loads a cached session. Sessions whose token has expired are
// cleared and reported as absent.
func (s *Service) Restore() (domain.Session, bool, error) {
	sess, ok, err := s.store.LoadSession()
	if err != nil || !ok {
		return domain.Session{}, false, err
	}
	if s.expired(sess.Token) {
		s.log.Info("cached session expired")
		if err := s.store.ClearSession(); err != nil {
			return domain.Session{}, false, err
		}
		return domain.Session{}, false, nil
	}
	s.state.Set(sess)
	return sess, true, nil
}

// expired reports whether token is a JWT past its exp claim. Tokens that are
// not JWTs, or carry no exp, never expire client-side.
func (s *Service) expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		s.log.Debug("token is not a readable JWT", zap.Error(err))
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Before(claims.ExpiresAt.Time)
}

// Me refreshes the current user from the server.
func (s *Service) Me(ctx context.Context) (domain.User, error) {
	if s.Token() == "" {
		return domain.User{}, domain.ErrNoToken
	}
	return state.Do(ctx, s.state, s.api.Me, func(cur domain.Session, u domain.User) domain.Session {
		cur.User = u
		return cur
	})
}

// UpdateProfile edits the signed-in user's profile.
func (s *Service) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (domain.User, error) {
	if err := validate.Struct(upd); err != nil {
		s.state.Fail(err)
		return domain.User{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.User, error) {
		return s.users.UpdateProfile(ctx, upd)
	}, func(cur domain.Session, u domain.User) domain.Session {
		cur.User = u
		return cur
	})
}

// SearchUsers looks people up in the directory, e.g. to start a chat.
func (s *Service) SearchUsers(ctx context.Context, q domain.UserSearch) ([]domain.User, error) {
	if err := validate.Struct(q); err != nil {
		return nil, err
	}
	return s.users.SearchUsers(ctx, q)
}

// Logout drops the session from memory and both cache areas.
func (s *Service) Logout() error {
	s.state.Reset()
	return s.store.ClearSession()
}

var _ domain.TokenSource = (*Service)(nil)
