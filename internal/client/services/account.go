package services

import (
	"context"

	"stockpilot/internal/client/api"
	"stockpilot/internal/logging"
)

// AccountService handles account deletion. Reactivation lives in
// ReactivateFlow since it is part of sign-in.
type AccountService struct {
	client api.Client
	auth   *AuthService
	log    logging.Logger
}

func NewAccountService(client api.Client, auth *AuthService, log logging.Logger) *AccountService {
	return &AccountService{client: client, auth: auth, log: log}
}

// Delete soft-deletes the calling user on the backend, then signs out
// locally. The account stays reactivatable until the deadline the
// backend applies.
func (a *AccountService) Delete(ctx context.Context) error {
	if err := a.client.DeleteAccount(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "account deleted")
	return a.auth.Logout(ctx)
}
