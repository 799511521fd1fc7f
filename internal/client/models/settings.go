package models

import (
	"errors"
	"fmt"
)

// Timeframes accepted by the backend for model training.
var Timeframes = []string{"1h", "6h", "1d", "1wk", "1mo"}

// UserSettings holds per-user prediction and notification preferences.
// NotificationDays is a 7-character string of '0'/'1' flags, index 0 = Monday.
type UserSettings struct {
	PredictionThreshold          float64 `json:"prediction_threshold"`
	SignificantMovementThreshold float64 `json:"significant_movement_threshold"`
	PredictionWindow             int     `json:"prediction_window"`
	HistoricalDays               int     `json:"historical_days"`
	TrainingTimeframe            string  `json:"training_timeframe"`
	NotificationDays             string  `json:"notification_days"`
	NotifyMarketOpen             bool    `json:"notify_market_open"`
	NotifyMidday                 bool    `json:"notify_midday"`
	NotifyMarketClose            bool    `json:"notify_market_close"`
	Timezone                     string  `json:"timezone"`
}

// UserSettingsUpdate is a partial settings payload for PUT /users/settings.
// Nil fields are omitted and left unchanged on the server.
type UserSettingsUpdate struct {
	PredictionThreshold          *float64 `json:"prediction_threshold,omitempty"`
	SignificantMovementThreshold *float64 `json:"significant_movement_threshold,omitempty"`
	PredictionWindow             *int     `json:"prediction_window,omitempty"`
	HistoricalDays               *int     `json:"historical_days,omitempty"`
	TrainingTimeframe            *string  `json:"training_timeframe,omitempty"`
	NotificationDays             *string  `json:"notification_days,omitempty"`
	NotifyMarketOpen             *bool    `json:"notify_market_open,omitempty"`
	NotifyMidday                 *bool    `json:"notify_midday,omitempty"`
	NotifyMarketClose            *bool    `json:"notify_market_close,omitempty"`
	Timezone                     *string  `json:"timezone,omitempty"`
}

var (
	ErrInvalidNotificationDays = errors.New("notification days must be 7 characters of '0' or '1'")
	ErrInvalidThreshold        = errors.New("threshold must be between 0 and 1")
	ErrInvalidTimeframe        = fmt.Errorf("training timeframe must be one of %v", Timeframes)
)

// ValidateNotificationDays checks the Monday-first day mask format.
func ValidateNotificationDays(days string) error {
	if len(days) != 7 {
		return ErrInvalidNotificationDays
	}
	for _, c := range days {
		if c != '0' && c != '1' {
			return ErrInvalidNotificationDays
		}
	}
	return nil
}

// Validate checks the fields that are present. It is called before an
// update is sent so the server never sees a malformed day mask.
func (u *UserSettingsUpdate) Validate() error {
	if u.NotificationDays != nil {
		if err := ValidateNotificationDays(*u.NotificationDays); err != nil {
			return err
		}
	}
	for _, t := range []*float64{u.PredictionThreshold, u.SignificantMovementThreshold} {
		if t != nil && (*t < 0 || *t > 1) {
			return ErrInvalidThreshold
		}
	}
	if u.PredictionWindow != nil && *u.PredictionWindow <= 0 {
		return fmt.Errorf("prediction window must be positive")
	}
	if u.HistoricalDays != nil && *u.HistoricalDays <= 0 {
		return fmt.Errorf("historical days must be positive")
	}
	if u.TrainingTimeframe != nil {
		ok := false
		for _, tf := range Timeframes {
			if *u.TrainingTimeframe == tf {
				ok = true
				break
			}
		}
		if !ok {
			return ErrInvalidTimeframe
		}
	}
	return nil
}
