package review

import (
	"context"

	"bookit/internal/domain"
	"bookit/internal/services/state"
	"bookit/internal/validate"
)

// Service mirrors the last listed reviews.
type Service struct {
	api   domain.ReviewAPI
	state *state.Mirror[[]domain.Review]
}

// New constructs a review Service.
func New(api domain.ReviewAPI) *Service {
	return &Service{api: api, state: &state.Mirror[[]domain.Review]{}}
}

// State exposes the mirrored review list.
func (s *Service) State() state.View[[]domain.Review] { return s.state.View() }

// ForService lists reviews of a service.
func (s *Service) ForService(ctx context.Context, id domain.ServiceID, page domain.Page) ([]domain.Review, error) {
	return state.Load(ctx, s.state, func(ctx context.Context) ([]domain.Review, error) {
		return s.api.ListServiceReviews(ctx, id, page)
	})
}

// ForProvider lists reviews across a provider's services.
func (s *Service) ForProvider(ctx context.Context, id domain.ProviderID, page domain.Page) ([]domain.Review, error) {
	return state.Load(ctx, s.state, func(ctx context.Context) ([]domain.Review, error) {
		return s.api.ListProviderReviews(ctx, id, page)
	})
}

// Create writes a review with a rating from 1 to 5.
func (s *Service) Create(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	if err := s.check(in); err != nil {
		return domain.Review{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Review, error) {
		return s.api.CreateReview(ctx, in)
	}, upsert)
}

// Update edits the caller's review.
func (s *Service) Update(ctx context.Context, id domain.ReviewID, in domain.ReviewInput) (domain.Review, error) {
	if err := s.check(in); err != nil {
		return domain.Review{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Review, error) {
		return s.api.UpdateReview(ctx, id, in)
	}, upsert)
}

// Delete removes the caller's review.
func (s *Service) Delete(ctx context.Context, id domain.ReviewID) error {
	_, err := state.Do(ctx, s.state, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteReview(ctx, id)
	}, func(cur []domain.Review, _ struct{}) []domain.Review {
		out := make([]domain.Review, 0, len(cur))
		for _, r := range cur {
			if r.ID != id {
				out = append(out, r)
			}
		}
		return out
	})
	return err
}

// Respond posts the provider's answer to a review.
func (s *Service) Respond(ctx context.Context, id domain.ReviewID, resp domain.ReviewResponse) (domain.Review, error) {
	if err := s.check(resp); err != nil {
		return domain.Review{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Review, error) {
		return s.api.RespondToReview(ctx, id, resp)
	}, upsert)
}

func (s *Service) check(v any) error {
	err := validate.Struct(v)
	if err != nil {
		s.state.Fail(err)
	}
	return err
}

func upsert(cur []domain.Review, r domain.Review) []domain.Review {
	out := append([]domain.Review(nil), cur...)
	for i := range out {
		if out[i].ID == r.ID {
			out[i] = r
			return out
		}
	}
	return append([]domain.Review{r}, out...)
}
