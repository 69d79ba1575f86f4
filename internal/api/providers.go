package api

import (
	"context"
	"net/url"

	"bookit/internal/domain"
)

var _ domain.ProviderAPI = (*Client)(nil)

// ProviderProfile fetches a public profile; an empty id means the caller's own.
func (c *Client) ProviderProfile(ctx context.Context, id domain.ProviderID) (domain.ProviderProfile, error) {
	path := pathProviderProfile
	if id != "" {
		path = join(pathProviders, id.String())
	}
	var out domain.ProviderProfile
	return out, c.get(ctx, path, nil, &out)
}

func (c *Client) UpdateProviderProfile(ctx context.Context, upd domain.ProviderProfileUpdate) (domain.ProviderProfile, error) {
	var out domain.ProviderProfile
	return out, c.put(ctx, pathProviderProfile, upd, &out)
}

func (c *Client) ProviderServices(ctx context.Context, id domain.ProviderID) ([]domain.Service, error) {
	var out []domain.Service
	return out, c.get(ctx, providerServicesPath(id.String()), nil, &out)
}

func (c *Client) ProviderBookings(ctx context.Context, q domain.BookingQuery) ([]domain.Booking, error) {
	vals := pagedQuery(q.Page.Page, q.Limit)
	if q.Status != "" {
		vals.Set("status", string(q.Status))
	}
	var out []domain.Booking
	return out, c.get(ctx, pathProviderBookings, vals, &out)
}

func (c *Client) ProviderMetrics(ctx context.Context) (domain.ProviderMetrics, error) {
	var out domain.ProviderMetrics
	return out, c.get(ctx, pathProviderMetrics, nil, &out)
}

// ProviderAvailability fetches a weekly schedule; an empty id means the caller's own.
func (c *Client) ProviderAvailability(ctx context.Context, id domain.ProviderID) (domain.Availability, error) {
	path := pathProviderAvailability
	if id != "" {
		path = providerAvailabilityPath(id.String())
	}
	var out domain.Availability
	return out, c.get(ctx, path, nil, &out)
}

func (c *Client) UpdateAvailability(ctx context.Context, a domain.Availability) (domain.Availability, error) {
	var out domain.Availability
	return out, c.put(ctx, pathProviderAvailability, a, &out)
}

func (c *Client) ProviderInsights(ctx context.Context, rng string) (domain.ProviderInsights, error) {
	q := url.Values{}
	if rng != "" {
		q.Set("range", rng)
	}
	var out domain.ProviderInsights
	return out, c.get(ctx, pathProviderInsights, q, &out)
}
