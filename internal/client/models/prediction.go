package models

import "time"

// PredictionResult is the per-request output of POST /predict.
type PredictionResult struct {
	Symbol                       string    `json:"symbol"`
	Prediction                   float64   `json:"prediction"`
	Confidence                   float64   `json:"confidence"`
	PredictedMovement            string    `json:"predicted_movement"` // "up" or "down"
	UpProbability                float64   `json:"up_probability"`
	DownProbability              float64   `json:"down_probability"`
	MovementExceedsThreshold     bool      `json:"movement_exceeds_threshold"`
	Timestamp                    time.Time `json:"timestamp"`
	CurrentPrice                 float64   `json:"current_price"`
	NotificationSent             *bool     `json:"notification_sent,omitempty"`
	NotificationError            string    `json:"notification_error,omitempty"`
	SignificantMovementThreshold float64   `json:"significant_movement_threshold"`
}
