package api

import (
	"context"

	"bookit/internal/domain"
)

var (
	_ domain.AuthAPI = (*Client)(nil)
	_ domain.UserAPI = (*Client)(nil)
)

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.Session, error) {
	var out domain.Session
	return out, c.post(ctx, pathLogin, req, &out)
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.Session, error) {
	var out domain.Session
	return out, c.post(ctx, pathRegister, req, &out)
}

func (c *Client) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	return c.post(ctx, pathForgotPassword, req, nil)
}

func (c *Client) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	return c.post(ctx, pathResetPassword, req, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, req domain.VerifyEmailRequest) error {
	return c.post(ctx, pathVerifyEmail, req, nil)
}

func (c *Client) SendOTP(ctx context.Context, req domain.OTPRequest) error {
	return c.post(ctx, pathSendOTP, req, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (domain.Session, error) {
	var out domain.Session
	return out, c.post(ctx, pathVerifyOTP, req, &out)
}

func (c *Client) SocialLogin(ctx context.Context, req domain.SocialLoginRequest) (domain.Session, error) {
	var out domain.Session
	return out, c.post(ctx, pathSocialLogin, req, &out)
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var out domain.User
	return out, c.get(ctx, pathMe, nil, &out)
}

func (c *Client) SearchUsers(ctx context.Context, q domain.UserSearch) ([]domain.User, error) {
	vals := pagedQuery(q.Page.Page, q.Limit)
	vals.Set("q", q.Query)
	if q.Role != "" {
		vals.Set("role", string(q.Role))
	}
	var out []domain.User
	return out, c.get(ctx, pathUsersSearch, vals, &out)
}

func (c *Client) GetUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	var out domain.User
	return out, c.get(ctx, join(pathUsers, id.String()), nil, &out)
}

func (c *Client) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (domain.User, error) {
	var out domain.User
	return out, c.put(ctx, pathUserProfile, upd, &out)
}
