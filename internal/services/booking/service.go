package booking

import (
	"context"

	"bookit/internal/domain"
	"bookit/internal/services/state"
	"bookit/internal/validate"
)

// Service mirrors the user's booking list.
type Service struct {
	api   domain.BookingAPI
	state *state.Mirror[[]domain.Booking]
}

// New constructs a booking Service.
func New(api domain.BookingAPI) *Service {
	return &Service{api: api, state: &state.Mirror[[]domain.Booking]{}}
}

// State exposes the mirrored booking list.
func (s *Service) State() state.View[[]domain.Booking] { return s.state.View() }

// List fetches bookings matching q.
func (s *Service) List(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	if err := s.check(q); err != nil {
		return nil, err
	}
	return state.Load(ctx, s.state, func(ctx context.Context) ([]domain.Booking, error) {
		return s.api.ListBookings(ctx, q)
	})
}

// Get fetches one booking and refreshes it in the list.
func (s *Service) Get(ctx context.Context, id domain.BookingID) (domain.Booking, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Booking, error) {
		return s.api.GetBooking(ctx, id)
	}, upsert)
}

// Create books a service slot.
func (s *Service) Create(ctx context.Context, req domain.CreateBookingRequest) (domain.Booking, error) {
	if err := s.check(req); err != nil {
		return domain.Booking{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Booking, error) {
		return s.api.CreateBooking(ctx, req)
	}, upsert)
}

// UpdateStatus moves a booking to another state. Transition rules are the
// server's; the client only checks the value is a known status.
func (s *Service) UpdateStatus(ctx context.Context, id domain.BookingID, upd domain.BookingStatusUpdate) (domain.Booking, error) {
	if err := s.check(upd); err != nil {
		return domain.Booking{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Booking, error) {
		return s.api.UpdateBookingStatus(ctx, id, upd)
	}, upsert)
}

// Rate rates a booking from 1 to 5.
func (s *Service) Rate(ctx context.Context, id domain.BookingID, r domain.BookingRating) (domain.Booking, error) {
	if err := s.check(r); err != nil {
		return domain.Booking{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Booking, error) {
		return s.api.RateBooking(ctx, id, r)
	}, upsert)
}

func (s *Service) check(v any) error {
	err := validate.Struct(v)
	if err != nil {
		s.state.Fail(err)
	}
	return err
}

func upsert(cur []domain.Booking, b domain.Booking) []domain.Booking {
	out := append([]domain.Booking(nil), cur...)
	for i := range out {
		if out[i].ID == b.ID {
			out[i] = b
			return out
		}
	}
	return append([]domain.Booking{b}, out...)
}
