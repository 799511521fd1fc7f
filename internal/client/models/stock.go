package models

import "time"

// UserStock is a single watchlist entry.
type UserStock struct {
	UserID    int       `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// AvailableStock is a read-only catalog entry describing a symbol that
// can be added to the watchlist.
type AvailableStock struct {
	ID        int        `json:"id"`
	Symbol    string     `json:"symbol"`
	Name      string     `json:"name"`
	Enabled   bool       `json:"enabled"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
