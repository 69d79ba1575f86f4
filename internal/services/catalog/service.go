package catalog

import (
	"context"

	"bookit/internal/domain"
	"bookit/internal/services/state"
	"bookit/internal/validate"
)

// Service mirrors the last search result.
type Service struct {
	api   domain.CatalogAPI
	state *state.Mirror[[]domain.Service]
}

// New constructs a catalog Service.
func New(api domain.CatalogAPI) *Service {
	return &Service{api: api, state: &state.Mirror[[]domain.Service]{}}
}

// State exposes the mirrored search result.
func (s *Service) State() state.View[[]domain.Service] { return s.state.View() }

// Search runs a filtered search and replaces the mirrored list.
func (s *Service) Search(ctx context.Context, f domain.ServiceFilter) ([]domain.Service, error) {
	err := validate.Combine(validate.Struct(f), priceRange(f))
	if err != nil {
		s.state.Fail(err)
		return nil, err
	}
	return state.Load(ctx, s.state, func(ctx context.Context) ([]domain.Service, error) {
		return s.api.SearchServices(ctx, f)
	})
}

func priceRange(f domain.ServiceFilter) error {
	if f.MinPrice.IsNegative() {
		return &validate.Error{Fields: []validate.FieldError{{Field: "minPrice", Message: "Must be greater than or equal to 0"}}}
	}
	if !f.MaxPrice.IsZero() && f.MaxPrice.LessThan(f.MinPrice) {
		return &validate.Error{Fields: []validate.FieldError{{Field: "maxPrice", Message: "Must not be below minPrice"}}}
	}
	return nil
}

// Get fetches one service.
func (s *Service) Get(ctx context.Context, id domain.ServiceID) (domain.Service, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Service, error) {
		return s.api.GetService(ctx, id)
	}, nil)
}

// Create publishes a new service.
func (s *Service) Create(ctx context.Context, in domain.ServiceInput) (domain.Service, error) {
	if err := s.check(in); err != nil {
		return domain.Service{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Service, error) {
		return s.api.CreateService(ctx, in)
	}, func(cur []domain.Service, svc domain.Service) []domain.Service {
		return append([]domain.Service{svc}, cur...)
	})
}

// Update replaces a service.
func (s *Service) Update(ctx context.Context, id domain.ServiceID, in domain.ServiceInput) (domain.Service, error) {
	if err := s.check(in); err != nil {
		return domain.Service{}, err
	}
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Service, error) {
		return s.api.UpdateService(ctx, id, in)
	}, replace)
}

// Delete removes a service.
func (s *Service) Delete(ctx context.Context, id domain.ServiceID) error {
	_, err := state.Do(ctx, s.state, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.DeleteService(ctx, id)
	}, func(cur []domain.Service, _ struct{}) []domain.Service {
		out := cur[:0:0]
		for _, svc := range cur {
			if svc.ID != id {
				out = append(out, svc)
			}
		}
		return out
	})
	return err
}

func (s *Service) check(in domain.ServiceInput) error {
	err := validate.Combine(validate.Struct(in), validate.PositiveAmount("price", in.Price))
	if err != nil {
		s.state.Fail(err)
	}
	return err
}

func replace(cur []domain.Service, svc domain.Service) []domain.Service {
	out := append([]domain.Service(nil), cur...)
	for i := range out {
		if out[i].ID == svc.ID {
			out[i] = svc
		}
	}
	return out
}
