package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the server-owned state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment records a charge against a booking.
type Payment struct {
	ID            PaymentID       `json:"_id"`
	Booking       BookingID       `json:"booking"`
	User          UserID          `json:"user"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"paymentMethod"`
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
	RefundAmount  decimal.Decimal `json:"refundAmount"`
	CreatedAt     time.Time       `json:"createdAt,omitempty"`
}

// ProcessPaymentRequest charges a booking.
type ProcessPaymentRequest struct {
	Booking  BookingID       `json:"bookingId" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,len=3"`
	Method   string          `json:"paymentMethod" validate:"required,oneof=card wallet cash"`
	Token    string          `json:"paymentToken,omitempty"`
}

// RefundRequest refunds all or part of a payment. A zero amount means a full refund.
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason" validate:"required,max=500"`
}
