package favorite

import (
	"context"

	"bookit/internal/domain"
	"bookit/internal/services/state"
)

// Service mirrors the favorites list.
type Service struct {
	api   domain.FavoriteAPI
	state *state.Mirror[[]domain.Favorite]
}

// New constructs a favorite Service.
func New(api domain.FavoriteAPI) *Service {
	return &Service{api: api, state: &state.Mirror[[]domain.Favorite]{}}
}

// State exposes the mirrored favorites.
func (s *Service) State() state.View[[]domain.Favorite] { return s.state.View() }

// List fetches the favorites.
func (s *Service) List(ctx context.Context) ([]domain.Favorite, error) {
	return state.Load(ctx, s.state, s.api.ListFavorites)
}

// Add saves a service.
func (s *Service) Add(ctx context.Context, id domain.ServiceID) (domain.Favorite, error) {
	return state.Do(ctx, s.state, func(ctx context.Context) (domain.Favorite, error) {
		return s.api.AddFavorite(ctx, id)
	}, func(cur []domain.Favorite, f domain.Favorite) []domain.Favorite {
		if f.Service.ID == "" {
			f.Service.ID = id
		}
		out := make([]domain.Favorite, 0, len(cur)+1)
		out = append(out, f)
		for _, c := range cur {
			if c.Service.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
}

// Remove unsaves a service.
func (s *Service) Remove(ctx context.Context, id domain.ServiceID) error {
	_, err := state.Do(ctx, s.state, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.api.RemoveFavorite(ctx, id)
	}, func(cur []domain.Favorite, _ struct{}) []domain.Favorite {
		out := make([]domain.Favorite, 0, len(cur))
		for _, c := range cur {
			if c.Service.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
	return err
}

// IsFavorite reports whether id is in the mirrored list.
func (s *Service) IsFavorite(id domain.ServiceID) bool {
	for _, f := range s.state.View().Data {
		if f.Service.ID == id {
			return true
		}
	}
	return false
}
