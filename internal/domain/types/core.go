package types

// UserID identifies a marketplace account (customer or provider).
type UserID string

// String returns the string form of the user identifier.
func (id UserID) String() string { return string(id) }

// ServiceID identifies a bookable service offering.
type ServiceID string

// String returns the string form of the service identifier.
func (id ServiceID) String() string { return string(id) }

// BookingID identifies a booking.
type BookingID string

// String returns the string form of the booking identifier.
func (id BookingID) String() string { return string(id) }

// PaymentID identifies a payment.
type PaymentID string

// String returns the string form of the payment identifier.
func (id PaymentID) String() string { return string(id) }

// ChatID identifies a conversation.
type ChatID string

// String returns the string form of the chat identifier.
func (id ChatID) String() string { return string(id) }

// MessageID identifies a chat message. Duplicate deliveries share the same ID.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }

// ReviewID identifies a review.
type ReviewID string

// String returns the string form of the review identifier.
func (id ReviewID) String() string { return string(id) }

// ProviderID identifies a provider profile.
type ProviderID string

// String returns the string form of the provider identifier.
func (id ProviderID) String() string { return string(id) }

// Page is a pagination cursor shared by list endpoints.
type Page struct {
	Page  int `json:"page,omitempty" validate:"gte=0"`
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=100"`
}
