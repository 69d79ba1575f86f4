package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering published by a provider.
type Service struct {
	ID          ServiceID       `json:"_id"`
	Provider    ProviderID      `json:"provider"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"`
	DurationMin int             `json:"duration"`
	Location    string          `json:"location,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	ReviewCount int             `json:"reviewCount,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Active      bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt,omitempty"`
}

// ServiceInput creates or replaces a service.
type ServiceInput struct {
	Title       string          `json:"title" validate:"required,min=3,max=120"`
	Description string          `json:"description,omitempty" validate:"max=2000"`
	Category    string          `json:"category" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	DurationMin int             `json:"duration" validate:"required,gt=0,lte=1440"`
	Location    string          `json:"location,omitempty"`
	Images      []string        `json:"images,omitempty" validate:"dive,url"`
}

// ServiceFilter drives the search/filter endpoint. Zero values are omitted.
type ServiceFilter struct {
	Query     string          `json:"q,omitempty"`
	Category  string          `json:"category,omitempty"`
	Location  string          `json:"location,omitempty"`
	MinPrice  decimal.Decimal `json:"minPrice"`
	MaxPrice  decimal.Decimal `json:"maxPrice"`
	MinRating float64         `json:"minRating,omitempty" validate:"gte=0,lte=5"`
	SortBy    string          `json:"sortBy,omitempty" validate:"omitempty,oneof=price rating newest"`
	Page
}
