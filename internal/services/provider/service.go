package provider

import (
	"context"
	"fmt"
	"time"

	"bookit/internal/domain"
	"bookit/internal/services/state"
	"bookit/internal/validate"
)

// Dashboard is the mirrored provider state.
type Dashboard struct {
	Profile      domain.ProviderProfile
	Services     []domain.Service
	Bookings     []domain.Booking
	Metrics      domain.ProviderMetrics
	Availability domain.Availability
	Insights     domain.ProviderInsights
}

// Insight ranges accepted by the server.
var insightRanges = map[string]bool{"week": true, "month": true, "quarter": true, "year": true}

// Service wraps the provider endpoints.
type Service struct {
	api   domain.ProviderAPI
	state *state.Mirror[Dashboard]
}

// New constructs a provider Service.
func New(api domain.ProviderAPI) *Service {
	return &Service{api: api, state: &state.Mirror[Dashboard]{}}
}

// State exposes the mirrored dashboard.
func (s *Service) State() state.View[Dashboard] { return s.state.View() }

// Profile fetches a provider's public profile.
func (s *Service) Profile(ctx context.Context, id domain.ProviderID) (domain.ProviderProfile, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.ProviderProfile, error) {
		return s.api.ProviderProfile(ctx, id)
	}, func(d Dashboard, p domain.ProviderProfile) Dashboard { d.Profile = p; return d })
}

// UpdateProfile edits the caller's provider profile.
func (s *Service) UpdateProfile(ctx context.Context, upd domain.ProviderProfileUpdate) (domain.ProviderProfile, error) {
	if err := s.check(validate.Struct(upd)); err != nil {
		return domain.ProviderProfile{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.ProviderProfile, error) {
		return s.api.UpdateProviderProfile(ctx, upd)
	}, func(d Dashboard, p domain.ProviderProfile) Dashboard { d.Profile = p; return d })
}

// Services lists a provider's services.
func (s *Service) Services(ctx context.Context, id domain.ProviderID) ([]domain.Service, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) ([]domain.Service, error) {
		return s.api.ProviderServices(ctx, id)
	}, func(d Dashboard, v []domain.Service) Dashboard { d.Services = v; return d })
}

// Bookings lists bookings made with the caller.
func (s *Service) Bookings(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	if err := s.check(validate.Struct(q)); err != nil {
		return nil, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) ([]domain.Booking, error) {
		return s.api.ProviderBookings(ctx, q)
	}, func(d Dashboard, v []domain.Booking) Dashboard { d.Bookings = v; return d })
}

// Metrics fetches the dashboard totals.
func (s *Service) Metrics(ctx context.Context) (domain.ProviderMetrics, error) {
	return state.Do(ctx, s.state, s.api.ProviderMetrics,
		func(d Dashboard, m domain.ProviderMetrics) Dashboard { d.Metrics = m; return d })
}

// Availability fetches a provider's weekly schedule.
func (s *Service) Availability(ctx context.Context, id domain.ProviderID) (domain.Availability, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Availability, error) {
		return s.api.ProviderAvailability(ctx, id)
	}, func(d Dashboard, a domain.Availability) Dashboard { d.Availability = a; return d })
}

// UpdateAvailability replaces the caller's weekly schedule.
func (s *Service) UpdateAvailability(ctx context.Context, a domain.Availability) (domain.Availability, error) {
	if err := s.check(validate.Struct(a), slotOrder(a)); err != nil {
		return domain.Availability{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Availability, error) {
		return s.api.UpdateAvailability(ctx, a)
	}, func(d Dashboard, a domain.Availability) Dashboard { d.Availability = a; return d })
}

// Insights fetches analytics for rng (week, month, quarter or year).
func (s *Service) Insights(ctx context.Context, rng string) (domain.ProviderInsights, error) {
	if !insightRanges[rng] {
		err := &validate.Error{Fields: []validate.FieldError{{Field: "range", Message: "Must be one of: week month quarter year"}}}
		s.state.Fail(err)
		return domain.ProviderInsights{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.ProviderInsights, error) {
		return s.api.ProviderInsights(ctx, rng)
	}, func(d Dashboard, in domain.ProviderInsights) Dashboard { d.Insights = in; return d })
}

// slotOrder checks every slot ends after it starts.
func slotOrder(a domain.Availability) error {
	var out validate.Error
	for _, day := range a.Days {
		for i, sl := range day.Slots {
			start, err1 := time.Parse("15:04", sl.Start)
			end, err2 := time.Parse("15:04", sl.End)
			if err1 != nil || err2 != nil {
				continue
			}
			if !end.After(start) {
				out.Fields = append(out.Fields, validate.FieldError{
					Field:   fmt.Sprintf("availability[%d].slots[%d]", day.Day, i),
					Message: "End time must be after start time",
				})
			}
		}
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return &out
}

func (s *Service) check(errs ...error) error {
	err := validate.Combine(errs...)
	if err != nil {
		s.state.Fail(err)
	}
	return err
}
