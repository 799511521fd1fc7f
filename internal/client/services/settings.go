package services

import (
	"context"
	"errors"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
	"stockpilot/internal/logging"
)

var ErrEmptyConnectionToken = errors.New("connection token must not be empty")

// SettingsService reads and updates prediction/notification preferences
// and manages the telegram link.
type SettingsService struct {
	client api.Client
	log    logging.Logger
}

func NewSettingsService(client api.Client, log logging.Logger) *SettingsService {
	return &SettingsService{client: client, log: log}
}

// Get fetches the current settings. They are not cached; the settings
// panel always shows server state.
func (s *SettingsService) Get(ctx context.Context) (*models.UserSettings, error) {
	return s.client.GetSettings(ctx)
}

// Update applies a partial settings change after local validation, and
// returns the full settings as the server now sees them.
func (s *SettingsService) Update(ctx context.Context, upd models.UserSettingsUpdate) (*models.UserSettings, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	return s.client.UpdateSettings(ctx, upd)
}

// TelegramStatus reports whether the account is linked to the bot.
func (s *SettingsService) TelegramStatus(ctx context.Context) (*models.TelegramStatus, error) {
	return s.client.TelegramStatus(ctx)
}

// ConnectTelegram links the account using the one-time token the bot
// hands out, then re-reads the status.
func (s *SettingsService) ConnectTelegram(ctx context.Context, connectionToken string) (*models.TelegramStatus, error) {
	if connectionToken == "" {
		return nil, ErrEmptyConnectionToken
	}
	if err := s.client.ConnectTelegram(ctx, connectionToken); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "telegram linked")
	return s.client.TelegramStatus(ctx)
}
