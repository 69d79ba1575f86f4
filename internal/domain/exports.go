package domain

import (
	interfaces "bookit/internal/domain/interfaces"
	types "bookit/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	UserID     = types.UserID
	ServiceID  = types.ServiceID
	BookingID  = types.BookingID
	PaymentID  = types.PaymentID
	ChatID     = types.ChatID
	MessageID  = types.MessageID
	ReviewID   = types.ReviewID
	ProviderID = types.ProviderID
	Page       = types.Page

	Role    = types.Role
	User    = types.User
	Session = types.Session

	LoginRequest          = types.LoginRequest
	RegisterRequest       = types.RegisterRequest
	ForgotPasswordRequest = types.ForgotPasswordRequest
	ResetPasswordRequest  = types.ResetPasswordRequest
	VerifyEmailRequest    = types.VerifyEmailRequest
	OTPRequest            = types.OTPRequest
	VerifyOTPRequest      = types.VerifyOTPRequest
	SocialLoginRequest    = types.SocialLoginRequest
	UserSearch            = types.UserSearch
	ProfileUpdate         = types.ProfileUpdate

	Service       = types.Service
	ServiceInput  = types.ServiceInput
	ServiceFilter = types.ServiceFilter

	Booking              = types.Booking
	BookingStatus        = types.BookingStatus
	CreateBookingRequest = types.CreateBookingRequest
	BookingStatusUpdate  = types.BookingStatusUpdate
	BookingRating        = types.BookingRating
	BookingQuery         = types.BookingQuery

	Payment               = types.Payment
	PaymentStatus         = types.PaymentStatus
	ProcessPaymentRequest = types.ProcessPaymentRequest
	RefundRequest         = types.RefundRequest

	Chat              = types.Chat
	Message           = types.Message
	CreateChatRequest = types.CreateChatRequest
	NewMessageRequest = types.NewMessageRequest

	Review         = types.Review
	ReviewResponse = types.ReviewResponse
	ReviewInput    = types.ReviewInput

	ProviderProfile       = types.ProviderProfile
	ProviderProfileUpdate = types.ProviderProfileUpdate
	ProviderMetrics       = types.ProviderMetrics
	TimeSlot              = types.TimeSlot
	DayAvailability       = types.DayAvailability
	Availability          = types.Availability
	InsightPoint          = types.InsightPoint
	ProviderInsights      = types.ProviderInsights

	Favorite = types.Favorite

	Frame                = types.Frame
	AuthenticatePayload  = types.AuthenticatePayload
	AuthenticatedPayload = types.AuthenticatedPayload
	ErrorPayload         = types.ErrorPayload
	ChatRoomPayload      = types.ChatRoomPayload
	SendMessagePayload   = types.SendMessagePayload
	NewMessagePayload    = types.NewMessagePayload
	MessagesReadPayload  = types.MessagesReadPayload
	TypingPayload        = types.TypingPayload
	ChatUpdatePayload    = types.ChatUpdatePayload
	DisconnectPayload    = types.DisconnectPayload
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	AuthAPI     = interfaces.AuthAPI
	CatalogAPI  = interfaces.CatalogAPI
	BookingAPI  = interfaces.BookingAPI
	PaymentAPI  = interfaces.PaymentAPI
	ChatAPI     = interfaces.ChatAPI
	FavoriteAPI = interfaces.FavoriteAPI
	ReviewAPI   = interfaces.ReviewAPI
	ProviderAPI = interfaces.ProviderAPI
	UserAPI     = interfaces.UserAPI

	TokenSource  = interfaces.TokenSource
	TokenFunc    = interfaces.TokenFunc
	Handler      = interfaces.Handler
	Socket       = interfaces.Socket
	SessionStore = interfaces.SessionStore
)

// Constants re-exported from the types subpackage.
const (
	RoleCustomer = types.RoleCustomer
	RoleProvider = types.RoleProvider
	RoleAdmin    = types.RoleAdmin

	BookingPending   = types.BookingPending
	BookingConfirmed = types.BookingConfirmed
	BookingCompleted = types.BookingCompleted
	BookingCancelled = types.BookingCancelled

	PaymentPending   = types.PaymentPending
	PaymentCompleted = types.PaymentCompleted
	PaymentFailed    = types.PaymentFailed
	PaymentRefunded  = types.PaymentRefunded

	EventConnect        = types.EventConnect
	EventConnectError   = types.EventConnectError
	EventDisconnect     = types.EventDisconnect
	EventAuthenticate   = types.EventAuthenticate
	EventAuthenticated  = types.EventAuthenticated
	EventError          = types.EventError
	EventJoinChat       = types.EventJoinChat
	EventSendMessage    = types.EventSendMessage
	EventNewMessage     = types.EventNewMessage
	EventMarkRead       = types.EventMarkRead
	EventMessagesRead   = types.EventMessagesRead
	EventTyping         = types.EventTyping
	EventStopTyping     = types.EventStopTyping
	EventUserTyping     = types.EventUserTyping
	EventUserStopTyping = types.EventUserStopTyping
	EventChatUpdate     = types.EventChatUpdate
)
