package api

import (
	"context"

	"bookit/internal/domain"
)

var (
	_ domain.BookingAPI = (*Client)(nil)
	_ domain.PaymentAPI = (*Client)(nil)
)

func (c *Client) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	var out domain.Booking
	return out, c.post(ctx, pathBookings, req, &out)
}

func (c *Client) ListBookings(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	vals := pagedQuery(q.Page.Page, q.Limit)
	if q.Status != "" {
		vals.Set("status", string(q.Status))
	}
	var out []domain.Booking
	return out, c.get(ctx, pathBookings, vals, &out)
}

func (c *Client) GetBooking(ctx context.Context, id domain.BookingID) (domain.Booking, error) {
	var out domain.Booking
	return out, c.get(ctx, join(pathBookings, id.String()), nil, &out)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id domain.BookingID, upd domain.BookingStatusUpdate) (domain.Booking, error) {
	var out domain.Booking
	return out, c.patch(ctx, bookingStatusPath(id.String()), upd, &out)
}

func (c *Client) RateBooking(ctx context.Context, id domain.BookingID, r domain.BookingRating) (domain.Booking, error) {
	var out domain.Booking
	return out, c.post(ctx, bookingRatingPath(id.String()), r, &out)
}

func (c *Client) ProcessPayment(ctx context.Context, req domain.ProcessPaymentRequest) (domain.Payment, error) {
	var out domain.Payment
	return out, c.post(ctx, pathPayments, req, &out)
}

func (c *Client) ListPayments(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	var out []domain.Payment
	return out, c.get(ctx, pathPayments, pagedQuery(page.Page, page.Limit), &out)
}

func (c *Client) GetPayment(ctx context.Context, id domain.PaymentID) (domain.Payment, error) {
	var out domain.Payment
	return out, c.get(ctx, join(pathPayments, id.String()), nil, &out)
}

func (c *Client) RefundPayment(ctx context.Context, id domain.PaymentID, req domain.RefundRequest) (domain.Payment, error) {
	var out domain.Payment
	return out, c.post(ctx, paymentRefundPath(id.String()), req, &out)
}
