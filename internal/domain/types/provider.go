package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProviderProfile is the public business profile of a provider.
type ProviderProfile struct {
	ID           ProviderID `json:"_id"`
	User         UserID     `json:"user"`
	BusinessName string     `json:"businessName"`
	Description  string     `json:"description,omitempty"`
	Categories   []string   `json:"categories,omitempty"`
	Address      string     `json:"address,omitempty"`
	Rating       float64    `json:"rating,omitempty"`
	ReviewCount  int        `json:"reviewCount,omitempty"`
	Verified     bool       `json:"isVerified"`
}

// ProviderProfileUpdate edits the caller's provider profile.
type ProviderProfileUpdate struct {
	BusinessName string   `json:"businessName,omitempty" validate:"omitempty,min=2,max=120"`
	Description  string   `json:"description,omitempty" validate:"max=2000"`
	Categories   []string `json:"categories,omitempty"`
	Address      string   `json:"address,omitempty"`
}

// ProviderMetrics are dashboard totals computed by the server.
type ProviderMetrics struct {
	TotalBookings     int             `json:"totalBookings"`
	CompletedBookings int             `json:"completedBookings"`
	CancelledBookings int             `json:"cancelledBookings"`
	Revenue           decimal.Decimal `json:"totalRevenue"`
	AverageRating     float64         `json:"averageRating"`
	ReviewCount       int             `json:"totalReviews"`
}

// TimeSlot is an opening window on a weekday, times as HH:MM.
type TimeSlot struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

// DayAvailability lists the slots for one weekday (0 = Sunday).
type DayAvailability struct {
	Day       int        `json:"day" validate:"min=0,max=6"`
	Available bool       `json:"isAvailable"`
	Slots     []TimeSlot `json:"slots" validate:"dive"`
}

// Availability is a provider's weekly schedule.
type Availability struct {
	Days []DayAvailability `json:"availability" validate:"dive"`
}

// InsightPoint is one bucket of a provider insight series.
type InsightPoint struct {
	Period   string          `json:"period"`
	Bookings int             `json:"bookings"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ProviderInsights is the analytics payload for a time range.
type ProviderInsights struct {
	Range       string         `json:"range"`
	Series      []InsightPoint `json:"series"`
	TopServices []Service      `json:"topServices,omitempty"`
	GeneratedAt time.Time      `json:"generatedAt,omitempty"`
}
