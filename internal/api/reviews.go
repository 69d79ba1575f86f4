package api

import (
	"context"

	"bookit/internal/domain"
)

var (
	_ domain.ReviewAPI   = (*Client)(nil)
	_ domain.FavoriteAPI = (*Client)(nil)
)

func (c *Client) ListServiceReviews(ctx context.Context, id domain.ServiceID, page domain.Page) ([]domain.Review, error) {
	var out []domain.Review
	return out, c.get(ctx, serviceReviewsPath(id.String()), pagedQuery(page.Page, page.Limit), &out)
}

func (c *Client) ListProviderReviews(ctx context.Context, id domain.ProviderID, page domain.Page) ([]domain.Review, error) {
	var out []domain.Review
	return out, c.get(ctx, providerReviewsPath(id.String()), pagedQuery(page.Page, page.Limit), &out)
}

func (c *Client) CreateReview(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	var out domain.Review
	return out, c.post(ctx, pathReviews, in, &out)
}

func (c *Client) UpdateReview(ctx context.Context, id domain.ReviewID, in domain.ReviewInput) (domain.Review, error) {
	var out domain.Review
	return out, c.put(ctx, join(pathReviews, id.String()), in, &out)
}

func (c *Client) DeleteReview(ctx context.Context, id domain.ReviewID) error {
	return c.delete(ctx, join(pathReviews, id.String()))
}

func (c *Client) RespondToReview(ctx context.Context, id domain.ReviewID, resp domain.ReviewResponse) (domain.Review, error) {
	var out domain.Review
	return out, c.post(ctx, reviewResponsePath(id.String()), resp, &out)
}

func (c *Client) ListFavorites(ctx context.Context) ([]domain.Favorite, error) {
	var out []domain.Favorite
	return out, c.get(ctx, pathFavorites, nil, &out)
}

func (c *Client) AddFavorite(ctx context.Context, id domain.ServiceID) (domain.Favorite, error) {
	var out domain.Favorite
	return out, c.post(ctx, join(pathFavorites, id.String()), nil, &out)
}

func (c *Client) RemoveFavorite(ctx context.Context, id domain.ServiceID) error {
	return c.delete(ctx, join(pathFavorites, id.String()))
}
