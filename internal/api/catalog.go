package api

import (
	"context"
	"net/url"
	"strconv"

	"bookit/internal/domain"
)

var _ domain.CatalogAPI = (*Client)(nil)

// SearchServices hits the search endpoint when any filter is set, otherwise lists.
func (c *Client) SearchServices(ctx context.Context, f domain.ServiceFilter) ([]domain.Service, error) {
	q := filterQuery(f)
	path := pathServices
	if q.Has("q") || q.Has("category") || q.Has("location") || q.Has("minPrice") ||
		q.Has("maxPrice") || q.Has("minRating") {
		path = pathServicesSearch
	}
	var out []domain.Service
	return out, c.get(ctx, path, q, &out)
}

func (c *Client) GetService(ctx context.Context, id domain.ServiceID) (domain.Service, error) {
	var out domain.Service
	return out, c.get(ctx, join(pathServices, id.String()), nil, &out)
}

func (c *Client) CreateService(ctx context.Context, in domain.ServiceInput) (domain.Service, error) {
	var out domain.Service
	return out, c.post(ctx, pathServices, in, &out)
}

func (c *Client) UpdateService(ctx context.Context, id domain.ServiceID, in domain.ServiceInput) (domain.Service, error) {
	var out domain.Service
	return out, c.put(ctx, join(pathServices, id.String()), in, &out)
}

func (c *Client) DeleteService(ctx context.Context, id domain.ServiceID) error {
	return c.delete(ctx, join(pathServices, id.String()))
}

func filterQuery(f domain.ServiceFilter) url.Values {
	q := pagedQuery(f.Page.Page, f.Limit)
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("q", f.Query)
	set("category", f.Category)
	set("location", f.Location)
	set("sortBy", f.SortBy)
	if f.MinPrice.IsPositive() {
		q.Set("minPrice", f.MinPrice.String())
	}
	if f.MaxPrice.IsPositive() {
		q.Set("maxPrice", f.MaxPrice.String())
	}
	if f.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	return q
}
