package interfaces

import (
	"context"

	domaintypes "bookit/internal/domain/types"
)

// AuthAPI covers the auth resource.
type AuthAPI interface {
	Login(ctx context.Context, req domaintypes.LoginRequest) (domaintypes.Session, error)
	Register(ctx context.Context, req domaintypes.RegisterRequest) (domaintypes.Session, error)
	ForgotPassword(ctx context.Context, req domaintypes.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req domaintypes.ResetPasswordRequest) error
	VerifyEmail(ctx context.Context, req domaintypes.VerifyEmailRequest) error
	SendOTP(ctx context.Context, req domaintypes.OTPRequest) error
	VerifyOTP(ctx context.Context, req domaintypes.VerifyOTPRequest) (domaintypes.Session, error)
	SocialLogin(ctx context.Context, req domaintypes.SocialLoginRequest) (domaintypes.Session, error)
	Me(ctx context.Context) (domaintypes.User, error)
}

// CatalogAPI covers the services resource.
type CatalogAPI interface {
	SearchServices(ctx context.Context, filter domaintypes.ServiceFilter) ([]domaintypes.Service, error)
	GetService(ctx context.Context, id domaintypes.ServiceID) (domaintypes.Service, error)
	CreateService(ctx context.Context, in domaintypes.ServiceInput) (domaintypes.Service, error)
	UpdateService(ctx context.Context, id domaintypes.ServiceID, in domaintypes.ServiceInput) (domaintypes.Service, error)
	DeleteService(ctx context.Context, id domaintypes.ServiceID) error
}

// BookingAPI covers the bookings resource.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req domaintypes.CreateBookingRequest) (domaintypes.Booking, error)
	ListBookings(ctx context.Context, q domaintypes.BookingQuery) ([]domaintypes.Booking, error)
	GetBooking(ctx context.Context, id domaintypes.BookingID) (domaintypes.Booking, error)
	UpdateBookingStatus(ctx context.Context, id domaintypes.BookingID, upd domaintypes.BookingStatusUpdate) (domaintypes.Booking, error)
	RateBooking(ctx context.Context, id domaintypes.BookingID, r domaintypes.BookingRating) (domaintypes.Booking, error)
}

// PaymentAPI covers the payments resource.
type PaymentAPI interface {
	ProcessPayment(ctx context.Context, req domaintypes.ProcessPaymentRequest) (domaintypes.Payment, error)
	ListPayments(ctx context.Context, page domaintypes.Page) ([]domaintypes.Payment, error)
	GetPayment(ctx context.Context, id domaintypes.PaymentID) (domaintypes.Payment, error)
	RefundPayment(ctx context.Context, id domaintypes.PaymentID, req domaintypes.RefundRequest) (domaintypes.Payment, error)
}

// ChatAPI covers the chats resource. It is the source of truth for history.
type ChatAPI interface {
	ListChats(ctx context.Context) ([]domaintypes.Chat, error)
	GetChat(ctx context.Context, id domaintypes.ChatID) (domaintypes.Chat, error)
	CreateChat(ctx context.Context, req domaintypes.CreateChatRequest) (domaintypes.Chat, error)
	AddMessage(ctx context.Context, id domaintypes.ChatID, req domaintypes.NewMessageRequest) (domaintypes.Message, error)
	MarkRead(ctx context.Context, id domaintypes.ChatID) error
}

// FavoriteAPI covers the favorites resource.
type FavoriteAPI interface {
	ListFavorites(ctx context.Context) ([]domaintypes.Favorite, error)
	AddFavorite(ctx context.Context, id domaintypes.ServiceID) (domaintypes.Favorite, error)
	RemoveFavorite(ctx context.Context, id domaintypes.ServiceID) error
}

// ReviewAPI covers the reviews resource.
type ReviewAPI interface {
	ListServiceReviews(ctx context.Context, id domaintypes.ServiceID, page domaintypes.Page) ([]domaintypes.Review, error)
	ListProviderReviews(ctx context.Context, id domaintypes.ProviderID, page domaintypes.Page) ([]domaintypes.Review, error)
	CreateReview(ctx context.Context, in domaintypes.ReviewInput) (domaintypes.Review, error)
	UpdateReview(ctx context.Context, id domaintypes.ReviewID, in domaintypes.ReviewInput) (domaintypes.Review, error)
	DeleteReview(ctx context.Context, id domaintypes.ReviewID) error
	RespondToReview(ctx context.Context, id domaintypes.ReviewID, resp domaintypes.ReviewResponse) (domaintypes.Review, error)
}

// ProviderAPI covers the provider dashboard endpoints.
type ProviderAPI interface {
	ProviderProfile(ctx context.Context, id domaintypes.ProviderID) (domaintypes.ProviderProfile, error)
	UpdateProviderProfile(ctx context.Context, upd domaintypes.ProviderProfileUpdate) (domaintypes.ProviderProfile, error)
	ProviderServices(ctx context.Context, id domaintypes.ProviderID) ([]domaintypes.Service, error)
	ProviderBookings(ctx context.Context, q domaintypes.BookingQuery) ([]domaintypes.Booking, error)
	ProviderMetrics(ctx context.Context) (domaintypes.ProviderMetrics, error)
	ProviderAvailability(ctx context.Context, id domaintypes.ProviderID) (domaintypes.Availability, error)
	UpdateAvailability(ctx context.Context, a domaintypes.Availability) (domaintypes.Availability, error)
	ProviderInsights(ctx context.Context, rng string) (domaintypes.ProviderInsights, error)
}

// UserAPI covers user search and profiles.
type UserAPI interface {
	SearchUsers(ctx context.Context, q domaintypes.UserSearch) ([]domaintypes.User, error)
	GetUser(ctx context.Context, id domaintypes.UserID) (domaintypes.User, error)
	UpdateProfile(ctx context.Context, upd domaintypes.ProfileUpdate) (domaintypes.User, error)
}
