// Package services contains the application services of the stockpilot
// client: the session controller, the account reactivation flow, and
// thin domain services over the API binding for the watchlist, user
// settings and account lifecycle.
package services

import (
	"context"
	"errors"
	"sync"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
	"stockpilot/internal/client/repositories/tokens"
	"stockpilot/internal/logging"
)

// SessionState is the lifecycle position of the client session.
type SessionState int

const (
	// SessionBootstrapping: startup validation of persisted tokens is
	// still in progress.
	SessionBootstrapping SessionState = iota
	// SessionAnonymous: no identified user.
	SessionAnonymous
	// SessionAuthenticated: a user is identified and the token store
	// holds a non-empty access token.
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionBootstrapping:
		return "bootstrapping"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the controller state. User is nil unless
// State is SessionAuthenticated.
type Session struct {
	State SessionState
	User  *models.User
}

// Subscriber receives a snapshot after every state transition.
type Subscriber func(Session)

// ErrSignInSuperseded is returned when a sign-in completes after an
// intervening sign-out; its effects are dropped.
var ErrSignInSuperseded = errors.New("sign-in superseded by sign-out")

// AuthService owns the session state machine and the identity
// operations: bootstrap, password/google login, register, logout.
//
// Identity operations are serialized: a second sign-in issued while one
// is in flight queues behind it, so token-store writes never interleave.
// Logout deliberately does not queue; instead a generation counter makes
// any in-flight sign-in abort at commit time.
type AuthService struct {
	client api.Client
	tokens tokens.Repository
	log    logging.Logger

	opMu sync.Mutex // serializes sign-in and bootstrap

	mu    sync.Mutex
	state SessionState
	user  *models.User
	gen   uint64
	subs  []Subscriber
}

func NewAuthService(client api.Client, repo tokens.Repository, log logging.Logger) *AuthService {
	return &AuthService{
		client: client,
		tokens: repo,
		log:    log,
		state:  SessionBootstrapping,
	}
}

// Current returns a snapshot of the session.
func (s *AuthService) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Session{State: s.state, User: s.user}
}

// IsLoading reports whether the controller is still bootstrapping.
func (s *AuthService) IsLoading() bool {
	return s.Current().State == SessionBootstrapping
}

// Subscribe registers fn to be called after every transition.
func (s *AuthService) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *AuthService) setState(state SessionState, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	snapshot := Session{State: state, User: user}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

func (s *AuthService) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Bootstrap resumes a persisted session on process start. With no
// stored access token the session is anonymous immediately; otherwise
// the token is validated against the auth-health endpoint, which also
// identifies the user. The transport refreshes an expired pair on its
// own; if that fails too, the store is already cleared when the error
// arrives here.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	access, _, err := s.tokens.Read(ctx)
	if err != nil {
		s.setState(SessionAnonymous, nil)
		return err
	}
	if access == "" {
		s.setState(SessionAnonymous, nil)
		return nil
	}

	user, err := s.client.AuthHealth(ctx)
	if err != nil {
		if !errors.Is(err, api.ErrUnauthorized) && !errors.Is(err, api.ErrUnavailable) {
			// Rejected for a reason other than expiry; drop the pair.
			if clearErr := s.tokens.Clear(ctx); clearErr != nil {
				s.log.Error(ctx, "clearing token store failed", "error", clearErr)
			}
		}
		s.setState(SessionAnonymous, nil)
		return err
	}

	s.log.Info(ctx, "session resumed", "user_id", user.ID)
	s.setState(SessionAuthenticated, user)
	return nil
}

// Login signs in with the password grant.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	return s.signIn(ctx, func(ctx context.Context) (*models.TokenPair, error) {
		return s.client.Login(ctx, email, password)
	})
}

// GoogleLogin signs in with a federated OIDC ID token.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) error {
	return s.signIn(ctx, func(ctx context.Context) (*models.TokenPair, error) {
		return s.client.GoogleLogin(ctx, idToken)
	})
}

// Register creates an account; the backend signs the user in directly.
func (s *AuthService) Register(ctx context.Context, email, fullName, password string) error {
	return s.signIn(ctx, func(ctx context.Context) (*models.TokenPair, error) {
		return s.client.Register(ctx, email, fullName, password)
	})
}

// CompleteLogin finishes a sign-in from a token pair acquired outside
// the usual grants, e.g. account reactivation.
func (s *AuthService) CompleteLogin(ctx context.Context, pair *models.TokenPair) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.commit(ctx, s.generation(), pair)
}

func (s *AuthService) signIn(ctx context.Context, acquire func(context.Context) (*models.TokenPair, error)) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	gen := s.generation()
	pair, err := acquire(ctx)
	if err != nil {
		return err
	}
	return s.commit(ctx, gen, pair)
}

// commit persists the pair, loads the user, and transitions to
// authenticated — unless a sign-out happened since gen was captured, in
// which case the pair is discarded and the session stays anonymous.
func (s *AuthService) commit(ctx context.Context, gen uint64, pair *models.TokenPair) error {
	if s.generation() != gen {
		return ErrSignInSuperseded
	}

	if err := s.tokens.Write(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return err
	}

	user, err := s.client.AuthHealth(ctx)
	if err != nil {
		return err
	}

	if s.generation() != gen {
		// Signed out while the user profile was loading.
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.log.Error(ctx, "clearing token store failed", "error", clearErr)
		}
		return ErrSignInSuperseded
	}

	s.log.Info(ctx, "signed in", "user_id", user.ID)
	s.setState(SessionAuthenticated, user)
	return nil
}

// Logout clears the token pair and transitions to anonymous. No server
// call is made. It does not wait for in-flight sign-ins; they abort
// when they observe the generation bump.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()

	err := s.tokens.Clear(ctx)
	s.setState(SessionAnonymous, nil)
	return err
}

// HandleSessionExpired is wired as the transport's session-expired
// callback: the refresh protocol failed and the token store is already
// empty, so the session falls back to anonymous.
func (s *AuthService) HandleSessionExpired() {
	s.mu.Lock()
	s.gen++
	alreadyAnonymous := s.state == SessionAnonymous
	s.mu.Unlock()

	if !alreadyAnonymous {
		s.setState(SessionAnonymous, nil)
	}
}
