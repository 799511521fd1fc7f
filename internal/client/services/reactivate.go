package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
	"stockpilot/internal/logging"
)

// FlowState is the position of the reactivation flow layered on top of
// sign-in.
type FlowState int

const (
	// FlowIdle: no sign-in attempt in progress.
	FlowIdle FlowState = iota
	// FlowProbing: the sign-in email is being checked for a
	// reactivatable deleted account.
	FlowProbing
	// FlowOffering: a reactivatable account was found; waiting for the
	// user to cancel or confirm.
	FlowOffering
	// FlowReactivating: a reactivation request is in flight.
	FlowReactivating
	// FlowNormalSignIn: the probe found nothing; proceed with the
	// ordinary login.
	FlowNormalSignIn
)

var (
	// ErrIdentityMismatch: the fresh federated credential belongs to a
	// different identity than the deleted account. Detected locally;
	// the server is not contacted.
	ErrIdentityMismatch = errors.New("sign in with the same Google account the deleted account used")

	// ErrNoOffer is returned when a reactivation is attempted outside
	// the offering state.
	ErrNoOffer = errors.New("no reactivation offer pending")
)

// ReactivateFlow drives recovery of a soft-deleted account. It probes
// before the credential sign-in so the user is not shown a misleading
// bad-credentials error, then branches on the account's deletion type.
type ReactivateFlow struct {
	client api.Client
	auth   *AuthService
	log    logging.Logger

	mu    sync.Mutex
	state FlowState
	info  *models.DeletedAccountInfo
}

func NewReactivateFlow(client api.Client, auth *AuthService, log logging.Logger) *ReactivateFlow {
	return &ReactivateFlow{client: client, auth: auth, log: log}
}

// State returns the current flow state.
func (f *ReactivateFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Offer returns the pending deleted-account info, or nil.
func (f *ReactivateFlow) Offer() *models.DeletedAccountInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.info
}

func (f *ReactivateFlow) setState(state FlowState, info *models.DeletedAccountInfo) {
	f.mu.Lock()
	f.state = state
	f.info = info
	f.mu.Unlock()
}

// Begin probes the email submitted on the sign-in form. A reactivatable
// account moves the flow to FlowOffering and returns its info. A probe
// error or can_reactivate=false is treated as "not deleted": the flow
// moves to FlowNormalSignIn and returns nil so the caller proceeds with
// the ordinary login.
func (f *ReactivateFlow) Begin(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
	f.setState(FlowProbing, nil)

	info, err := f.client.CheckDeletedAccount(ctx, email)
	if err != nil || !info.CanReactivate {
		if err != nil {
			f.log.Debug(ctx, "deleted-account probe failed, proceeding with sign-in", "error", err)
		}
		f.setState(FlowNormalSignIn, nil)
		return nil, nil
	}

	f.setState(FlowOffering, info)
	return info, nil
}

// Cancel abandons a pending offer.
func (f *ReactivateFlow) Cancel() {
	f.setState(FlowIdle, nil)
}

// Reset returns the flow to idle after a normal sign-in concluded.
func (f *ReactivateFlow) Reset() {
	f.setState(FlowIdle, nil)
}

func (f *ReactivateFlow) pendingOffer(want models.DeletionType) (*models.DeletedAccountInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FlowOffering || f.info == nil {
		return nil, ErrNoOffer
	}
	if f.info.DeletionType != want {
		return nil, ErrNoOffer
	}
	return f.info, nil
}

// ReactivateWithPassword restores a password-deleted account. On
// success the session completes as a normal login with the returned
// token pair. On failure the offer stays pending so the user can retry
// or cancel.
func (f *ReactivateFlow) ReactivateWithPassword(ctx context.Context, password string) error {
	info, err := f.pendingOffer(models.DeletionTypePassword)
	if err != nil {
		return err
	}

	f.setState(FlowReactivating, info)

	pair, err := f.client.Reactivate(ctx, api.NewPasswordReactivation(info.Email, password))
	if err != nil {
		f.setState(FlowOffering, info)
		return err
	}

	if err := f.auth.CompleteLogin(ctx, pair); err != nil {
		f.setState(FlowOffering, info)
		return err
	}

	f.log.Info(ctx, "account reactivated", "email", info.Email)
	f.setState(FlowIdle, nil)
	return nil
}

// ReactivateWithGoogle restores a google-deleted account using a fresh
// OIDC credential. The credential must belong to the same identity:
// the email claims are compared case-insensitively before any server
// call. After a successful reactivation the normal google login path
// runs with the same credential so session bookkeeping stays on one
// code path.
func (f *ReactivateFlow) ReactivateWithGoogle(ctx context.Context, idToken string) error {
	info, err := f.pendingOffer(models.DeletionTypeGoogle)
	if err != nil {
		return err
	}

	email, err := GoogleTokenEmail(idToken)
	if err != nil {
		return err
	}
	if !strings.EqualFold(email, info.Email) {
		return ErrIdentityMismatch
	}

	f.setState(FlowReactivating, info)

	pair, err := f.client.Reactivate(ctx, api.NewGoogleReactivation(info.Email, idToken))
	if err != nil {
		f.setState(FlowOffering, info)
		return err
	}

	if err := f.auth.GoogleLogin(ctx, idToken); err != nil {
		// The account is restored even if the follow-up login failed;
		// fall back to the pair the reactivation returned.
		f.log.Warn(ctx, "google login after reactivation failed, using reactivation tokens", "error", err)
		if err := f.auth.CompleteLogin(ctx, pair); err != nil {
			f.setState(FlowOffering, info)
			return err
		}
	}

	f.log.Info(ctx, "account reactivated", "email", info.Email)
	f.setState(FlowIdle, nil)
	return nil
}
