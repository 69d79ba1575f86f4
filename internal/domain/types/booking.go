package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the server-owned lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is an appointment between a customer and a provider.
type Booking struct {
	ID         BookingID       `json:"_id"`
	Service    ServiceID       `json:"service"`
	Customer   UserID          `json:"customer"`
	Provider   ProviderID      `json:"provider"`
	Date       time.Time       `json:"date"`
	StartTime  string          `json:"startTime"`
	EndTime    string          `json:"endTime,omitempty"`
	Status     BookingStatus   `json:"status"`
	Notes      string          `json:"notes,omitempty"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Rating     int             `json:"rating,omitempty"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
}

// CreateBookingRequest books a service slot.
type CreateBookingRequest struct {
	Service   ServiceID `json:"serviceId" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"startTime" validate:"required,datetime=15:04"`
	Notes     string    `json:"notes,omitempty" validate:"max=500"`
}

// BookingStatusUpdate moves a booking to another state.
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	Reason string        `json:"reason,omitempty" validate:"max=500"`
}

// BookingRating rates a completed booking.
type BookingRating struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=1000"`
}

// BookingQuery filters booking lists.
type BookingQuery struct {
	Status BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Page
}
