package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
	"stockpilot/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memRepo is an in-memory token store.
type memRepo struct {
	mu      sync.Mutex
	access  string
	refresh string
	readErr error
	clears  int
}

func (m *memRepo) Read(ctx context.Context) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh, m.readErr
}

func (m *memRepo) Write(ctx context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
	return nil
}

func (m *memRepo) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.clears++
	return nil
}

func (m *memRepo) pair() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh
}

// fakeAPI implements api.Client with per-method hooks. Unset hooks
// return zero values.
type fakeAPI struct {
	LoginFn               func(ctx context.Context, email, password string) (*models.TokenPair, error)
	GoogleLoginFn         func(ctx context.Context, idToken string) (*models.TokenPair, error)
	RegisterFn            func(ctx context.Context, email, fullName, password string) (*models.TokenPair, error)
	AuthHealthFn          func(ctx context.Context) (*models.User, error)
	CheckDeletedAccountFn func(ctx context.Context, email string) (*models.DeletedAccountInfo, error)
	ReactivateFn          func(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error)
	DeleteAccountFn       func(ctx context.Context) error

	GetStocksFn          func(ctx context.Context) ([]models.UserStock, error)
	AddStocksFn          func(ctx context.Context, symbols []string) ([]models.UserStock, error)
	RemoveStocksFn       func(ctx context.Context, symbols []string) ([]models.UserStock, error)
	GetAvailableStocksFn func(ctx context.Context, enabledOnly bool) ([]models.AvailableStock, error)

	GetSettingsFn     func(ctx context.Context) (*models.UserSettings, error)
	UpdateSettingsFn  func(ctx context.Context, upd models.UserSettingsUpdate) (*models.UserSettings, error)
	TelegramStatusFn  func(ctx context.Context) (*models.TelegramStatus, error)
	ConnectTelegramFn func(ctx context.Context, connectionToken string) error

	PredictFn func(ctx context.Context, symbol string, notify bool) (*models.PredictionResult, error)
	TrainFn   func(ctx context.Context, symbol string, testSize *float64) (*models.TrainingMetrics, error)
	UntrainFn func(ctx context.Context, symbols []string) error
}

var _ api.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	if f.LoginFn == nil {
		return nil, nil
	}
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAPI) GoogleLogin(ctx context.Context, idToken string) (*models.TokenPair, error) {
	if f.GoogleLoginFn == nil {
		return nil, nil
	}
	return f.GoogleLoginFn(ctx, idToken)
}

func (f *fakeAPI) Register(ctx context.Context, email, fullName, password string) (*models.TokenPair, error) {
	if f.RegisterFn == nil {
		return nil, nil
	}
	return f.RegisterFn(ctx, email, fullName, password)
}

func (f *fakeAPI) AuthHealth(ctx context.Context) (*models.User, error) {
	if f.AuthHealthFn == nil {
		return &models.User{}, nil
	}
	return f.AuthHealthFn(ctx)
}

func (f *fakeAPI) CheckDeletedAccount(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
	if f.CheckDeletedAccountFn == nil {
		return nil, nil
	}
	return f.CheckDeletedAccountFn(ctx, email)
}

func (f *fakeAPI) Reactivate(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error) {
	if f.ReactivateFn == nil {
		return nil, nil
	}
	return f.ReactivateFn(ctx, req)
}

func (f *fakeAPI) DeleteAccount(ctx context.Context) error {
	if f.DeleteAccountFn == nil {
		return nil
	}
	return f.DeleteAccountFn(ctx)
}

func (f *fakeAPI) GetStocks(ctx context.Context) ([]models.UserStock, error) {
	if f.GetStocksFn == nil {
		return nil, nil
	}
	return f.GetStocksFn(ctx)
}

func (f *fakeAPI) AddStocks(ctx context.Context, symbols []string) ([]models.UserStock, error) {
	if f.AddStocksFn == nil {
		return nil, nil
	}
	return f.AddStocksFn(ctx, symbols)
}

func (f *fakeAPI) RemoveStocks(ctx context.Context, symbols []string) ([]models.UserStock, error) {
	if f.RemoveStocksFn == nil {
		return nil, nil
	}
	return f.RemoveStocksFn(ctx, symbols)
}

func (f *fakeAPI) GetAvailableStocks(ctx context.Context, enabledOnly bool) ([]models.AvailableStock, error) {
	if f.GetAvailableStocksFn == nil {
		return nil, nil
	}
	return f.GetAvailableStocksFn(ctx, enabledOnly)
}

func (f *fakeAPI) GetSettings(ctx context.Context) (*models.UserSettings, error) {
	if f.GetSettingsFn == nil {
		return nil, nil
	}
	return f.GetSettingsFn(ctx)
}

func (f *fakeAPI) UpdateSettings(ctx context.Context, upd models.UserSettingsUpdate) (*models.UserSettings, error) {
	if f.UpdateSettingsFn == nil {
		return nil, nil
	}
	return f.UpdateSettingsFn(ctx, upd)
}

func (f *fakeAPI) TelegramStatus(ctx context.Context) (*models.TelegramStatus, error) {
	if f.TelegramStatusFn == nil {
		return nil, nil
	}
	return f.TelegramStatusFn(ctx)
}

func (f *fakeAPI) ConnectTelegram(ctx context.Context, connectionToken string) error {
	if f.ConnectTelegramFn == nil {
		return nil
	}
	return f.ConnectTelegramFn(ctx, connectionToken)
}

func (f *fakeAPI) Predict(ctx context.Context, symbol string, notify bool) (*models.PredictionResult, error) {
	if f.PredictFn == nil {
		return nil, nil
	}
	return f.PredictFn(ctx, symbol, notify)
}

func (f *fakeAPI) Train(ctx context.Context, symbol string, testSize *float64) (*models.TrainingMetrics, error) {
	if f.TrainFn == nil {
		return nil, nil
	}
	return f.TrainFn(ctx, symbol, testSize)
}

func (f *fakeAPI) Untrain(ctx context.Context, symbols []string) error {
	if f.UntrainFn == nil {
		return nil
	}
	return f.UntrainFn(ctx, symbols)
}
