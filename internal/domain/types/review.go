package types

import "time"

// Review is a customer's rating of a service.
type Review struct {
	ID        ReviewID        `json:"_id"`
	Service   ServiceID       `json:"service"`
	Provider  ProviderID      `json:"provider"`
	Booking   BookingID       `json:"booking,omitempty"`
	Author    User            `json:"user"`
	Rating    int             `json:"rating"`
	Comment   string          `json:"comment"`
	Response  *ReviewResponse `json:"response,omitempty"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// ReviewResponse is the provider's public answer to a review.
type ReviewResponse struct {
	Text      string    `json:"text" validate:"required,max=1000"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ReviewInput creates or edits a review.
type ReviewInput struct {
	Service ServiceID `json:"serviceId" validate:"required"`
	Booking BookingID `json:"bookingId,omitempty"`
	Rating  int       `json:"rating" validate:"required,min=1,max=5"`
	Comment string    `json:"comment" validate:"required,min=3,max=2000"`
}
