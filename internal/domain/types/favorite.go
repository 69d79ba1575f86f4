package types

import "time"

// Favorite is a saved service.
type Favorite struct {
	ID        string    `json:"_id"`
	User      UserID    `json:"user"`
	Service   Service   `json:"service"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
