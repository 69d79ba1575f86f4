package payment

import (
	"context"

	"bookit/internal/domain"
	"bookit/internal/services/state"
	"bookit/internal/validate"
)

// Service mirrors the user's payment history.
type Service struct {
	api   domain.PaymentAPI
	state *state.Mirror[[]domain.Payment]
}

// New constructs a payment Service.
func New(api domain.PaymentAPI) *Service {
	return &Service{api: api, state: &state.Mirror[[]domain.Payment]{}}
}

// State exposes the mirrored payment list.
func (s *Service) State() state.View[[]domain.Payment] { return s.state.View() }

// Process charges a booking.
func (s *Service) Process(ctx context.Context, req domain.ProcessPaymentRequest) (domain.Payment, error) {
	if err := s.check(validate.Struct(req), validate.PositiveAmount("amount", req.Amount)); err != nil {
		return domain.Payment{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Payment, error) {
		return s.api.ProcessPayment(ctx, req)
	}, upsert)
}

// List fetches one page of payments.
func (s *Service) List(ctx context.Context, page domain.Page) ([]domain.Payment, error) {
	if err := s.check(validate.Struct(page)); err != nil {
		return nil, err
	}
	return state.Load(ctx, s.state, func(ctx context.Context) ([]domain.Payment, error) {
		return s.api.ListPayments(ctx, page)
	})
}

// Get fetches one payment.
func (s *Service) Get(ctx context.Context, id domain.PaymentID) (domain.Payment, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Payment, error) {
		return s.api.GetPayment(ctx, id)
	}, upsert)
}

// Refund refunds a payment. A zero amount asks for a full refund.
func (s *Service) Refund(ctx context.Context, id domain.PaymentID, req domain.RefundRequest) (domain.Payment, error) {
	errs := []error{validate.Struct(req)}
	if !req.Amount.IsZero() {
		errs = append(errs, validate.PositiveAmount("amount", req.Amount))
	}
	if err := s.check(errs...); err != nil {
		return domain.Payment{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Payment, error) {
		return s.api.RefundPayment(ctx, id, req)
	}, upsert)
}

func (s *Service) check(errs ...error) error {
	err := validate.Combine(errs...)
	if err != nil {
		s.state.Fail(err)
	}
	return err
}

func upsert(cur []domain.Payment, p domain.Payment) []domain.Payment {
	out := append([]domain.Payment(nil), cur...)
	for i := range out {
		if out[i].ID == p.ID {
			out[i] = p
			return out
		}
	}
	return append([]domain.Payment{p}, out...)
}
