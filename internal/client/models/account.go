package models

import "time"

// DeletionType tags which credential class a deleted account used.
// It selects the reactivation sub-protocol.
type DeletionType string

const (
	DeletionTypePassword DeletionType = "password"
	DeletionTypeGoogle   DeletionType = "google"
)

// DeletedAccountInfo is the probe result for a soft-deleted account.
// The account stays recoverable until ReactivationDeadline.
type DeletedAccountInfo struct {
	Email                string       `json:"email"`
	DeletionDate         time.Time    `json:"deletion_date"`
	ReactivationDeadline time.Time    `json:"reactivation_deadline"`
	DeletionType         DeletionType `json:"deletion_type"`
	CanReactivate        bool         `json:"can_reactivate"`
}

// TelegramStatus reports whether the account is linked to the
// notification bot.
type TelegramStatus struct {
	IsConnected bool       `json:"is_connected"`
	ConnectedAt *time.Time `json:"connected_at,omitempty"`
}
