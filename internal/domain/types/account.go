package types

import "time"

// Role is the marketplace role of an account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// User is the server-defined account record.
type User struct {
	ID            UserID    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Role          Role      `json:"role"`
	Avatar        string    `json:"avatar,omitempty"`
	EmailVerified bool      `json:"isEmailVerified,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Session is what the auth endpoints return and what the client caches locally.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoginRequest carries credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,e164"`
	Role     Role   `json:"role" validate:"required,oneof=customer provider"`
}

// ForgotPasswordRequest asks the server to mail a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// VerifyEmailRequest confirms an email address.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// OTPRequest asks for a one-time code on the given phone number.
type OTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
}

// VerifyOTPRequest submits a one-time code.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Code  string `json:"otp" validate:"required,len=6,numeric"`
}

// SocialLoginRequest exchanges a third-party identity token.
type SocialLoginRequest struct {
	Provider string `json:"provider" validate:"required,oneof=google facebook apple"`
	Token    string `json:"token" validate:"required"`
}

// UserSearch filters the user directory.
type UserSearch struct {
	Query string `json:"q" validate:"required,min=2"`
	Role  Role   `json:"role,omitempty" validate:"omitempty,oneof=customer provider admin"`
	Page
}

// ProfileUpdate edits the caller's own profile.
type ProfileUpdate struct {
	Name   string `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Phone  string `json:"phone,omitempty" validate:"omitempty,e164"`
	Avatar string `json:"avatar,omitempty" validate:"omitempty,url"`
}
