// Package api binds the stock prediction backend's HTTP surface to
// typed operations and owns the bearer-token transport, including the
// single-flight refresh protocol.
package api

import (
	"context"

	"stockpilot/internal/client/models"
)

// Client is the typed surface of the backend API. Methods return
// ErrUnavailable for transport failures, ErrUnauthorized when the
// session is gone for good, and *Error for any other non-2xx response.
type Client interface {
	// Auth and account lifecycle.
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.TokenPair, error)
	Register(ctx context.Context, email, fullName, password string) (*models.TokenPair, error)
	AuthHealth(ctx context.Context) (*models.User, error)
	CheckDeletedAccount(ctx context.Context, email string) (*models.DeletedAccountInfo, error)
	Reactivate(ctx context.Context, req ReactivateRequest) (*models.TokenPair, error)
	DeleteAccount(ctx context.Context) error

	// Watchlist and catalog.
	GetStocks(ctx context.Context) ([]models.UserStock, error)
	AddStocks(ctx context.Context, symbols []string) ([]models.UserStock, error)
	RemoveStocks(ctx context.Context, symbols []string) ([]models.UserStock, error)
	GetAvailableStocks(ctx context.Context, enabledOnly bool) ([]models.AvailableStock, error)

	// Preferences and messenger link.
	GetSettings(ctx context.Context) (*models.UserSettings, error)
	UpdateSettings(ctx context.Context, upd models.UserSettingsUpdate) (*models.UserSettings, error)
	TelegramStatus(ctx context.Context) (*models.TelegramStatus, error)
	ConnectTelegram(ctx context.Context, connectionToken string) error

	// Model operations.
	Predict(ctx context.Context, symbol string, notify bool) (*models.PredictionResult, error)
	Train(ctx context.Context, symbol string, testSize *float64) (*models.TrainingMetrics, error)
	Untrain(ctx context.Context, symbols []string) error
}

// googleReactivatePassword fills the password field of a federated
// reactivation request. The server schema requires the field to be
// present; the value itself is never used as a credential.
const googleReactivatePassword = "google_oauth_reactivation"

// ReactivateRequest selects the reactivation sub-protocol by the
// account's deletion type. Password is set for the password variant,
// GoogleToken for the federated one.
type ReactivateRequest struct {
	Email        string
	DeletionType models.DeletionType
	Password     string
	GoogleToken  string
}

// NewPasswordReactivation builds the request for an account that was
// deleted while using password credentials.
func NewPasswordReactivation(email, password string) ReactivateRequest {
	return ReactivateRequest{
		Email:        email,
		DeletionType: models.DeletionTypePassword,
		Password:     password,
	}
}

// NewGoogleReactivation builds the request for an account that was
// deleted while using a federated Google identity. idToken must be a
// fresh OIDC credential for the same email.
func NewGoogleReactivation(email, idToken string) ReactivateRequest {
	return ReactivateRequest{
		Email:        email,
		DeletionType: models.DeletionTypeGoogle,
		GoogleToken:  idToken,
	}
}

type reactivateBody struct {
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	GoogleToken string `json:"google_token,omitempty"`
}

// body maps the variant to its wire form. The placeholder password is a
// detail of the google variant only.
func (r ReactivateRequest) body() reactivateBody {
	if r.DeletionType == models.DeletionTypeGoogle {
		return reactivateBody{
			Email:       r.Email,
			GoogleToken: r.GoogleToken,
			Password:    googleReactivatePassword,
		}
	}
	return reactivateBody{Email: r.Email, Password: r.Password}
}
