package api

import (
	"fmt"
	"net/url"
)

// Endpoint paths relative to the API base URL.
const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathForgotPassword = "/auth/forgot-password"
	pathResetPassword  = "/auth/reset-password"
	pathVerifyEmail    = "/auth/verify-email"
	pathSendOTP        = "/auth/send-otp"
	pathVerifyOTP      = "/auth/verify-otp"
	pathSocialLogin    = "/auth/social-login"
	pathMe             = "/auth/me"

	pathServices       = "/services"
	pathServicesSearch = "/services/search"

	pathBookings = "/bookings"
	pathPayments = "/payments"
	pathChats    = "/chats"

	pathFavorites = "/favorites"
	pathReviews   = "/reviews"

	pathProviders            = "/providers"
	pathProviderProfile      = "/providers/profile"
	pathProviderBookings     = "/providers/bookings"
	pathProviderMetrics      = "/providers/metrics"
	pathProviderAvailability = "/providers/availability"
	pathProviderInsights     = "/providers/insights"

	pathUsers       = "/users"
	pathUsersSearch = "/users/search"
	pathUserProfile = "/users/profile"
)

// join builds base + "/" + escaped segments.
func join(base string, segments ...string) string {
	out := base
	for _, s := range segments {
		out += "/" + url.PathEscape(s)
	}
	return out
}

func serviceReviewsPath(id string) string  { return join(pathReviews, "service", id) }
func providerReviewsPath(id string) string { return join(pathReviews, "provider", id) }
func reviewResponsePath(id string) string  { return join(pathReviews, id, "respond") }

func bookingStatusPath(id string) string { return join(pathBookings, id, "status") }
func bookingRatingPath(id string) string { return join(pathBookings, id, "rate") }
func paymentRefundPath(id string) string { return join(pathPayments, id, "refund") }

func chatMessagesPath(id string) string { return join(pathChats, id, "messages") }
func chatReadPath(id string) string     { return join(pathChats, id, "read") }

func providerServicesPath(id string) string     { return join(pathProviders, id, "services") }
func providerAvailabilityPath(id string) string { return join(pathProviders, id, "availability") }

func pagedQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}
