package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
)

func signedIDToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func deletedInfo(deletionType models.DeletionType) *models.DeletedAccountInfo {
	now := time.Now()
	return &models.DeletedAccountInfo{
		Email:                "user@example.com",
		DeletionDate:         now.AddDate(0, 0, -3),
		ReactivationDeadline: now.AddDate(0, 0, 27),
		DeletionType:         deletionType,
		CanReactivate:        true,
	}
}

func newFlow(client *fakeAPI) (*ReactivateFlow, *AuthService, *memRepo) {
	repo := &memRepo{}
	auth := NewAuthService(client, repo, testLogger())
	return NewReactivateFlow(client, auth, testLogger()), auth, repo
}

func TestBegin_ProbeError_FallsThroughToNormalSignIn(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return nil, api.ErrUnavailable
		},
	}
	flow, _, _ := newFlow(client)

	offer, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Nil(t, offer)
	require.Equal(t, FlowNormalSignIn, flow.State())
}

func TestBegin_NotReactivatable_FallsThrough(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			info := deletedInfo(models.DeletionTypePassword)
			info.CanReactivate = false
			return info, nil
		},
	}
	flow, _, _ := newFlow(client)

	offer, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Nil(t, offer)
	require.Equal(t, FlowNormalSignIn, flow.State())
}

func TestBegin_ReactivatableAccount_Offers(t *testing.T) {
	want := deletedInfo(models.DeletionTypePassword)
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			require.Equal(t, "user@example.com", email)
			return want, nil
		},
	}
	flow, _, _ := newFlow(client)

	offer, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Equal(t, want, offer)
	require.Equal(t, FlowOffering, flow.State())
	require.Equal(t, want, flow.Offer())
}

func TestCancel_AbandonsOffer(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypePassword), nil
		},
	}
	flow, _, _ := newFlow(client)

	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	flow.Cancel()
	require.Equal(t, FlowIdle, flow.State())
	require.Nil(t, flow.Offer())
}

func TestReactivateWithPassword_NoOffer(t *testing.T) {
	flow, _, _ := newFlow(&fakeAPI{})
	err := flow.ReactivateWithPassword(context.Background(), "pw")
	require.ErrorIs(t, err, ErrNoOffer)
}

func TestReactivateWithPassword_WrongDeletionType(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypeGoogle), nil
		},
	}
	flow, _, _ := newFlow(client)
	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	err = flow.ReactivateWithPassword(context.Background(), "pw")
	require.ErrorIs(t, err, ErrNoOffer)
}

func TestReactivateWithPassword_Success(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypePassword), nil
		},
		ReactivateFn: func(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error) {
			require.Equal(t, "user@example.com", req.Email)
			require.Equal(t, models.DeletionTypePassword, req.DeletionType)
			require.Equal(t, "pw", req.Password)
			return &models.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, nil
		},
		AuthHealthFn: authHealthOK,
	}
	flow, auth, repo := newFlow(client)
	require.NoError(t, auth.Bootstrap(context.Background()))

	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	require.NoError(t, flow.ReactivateWithPassword(context.Background(), "pw"))
	require.Equal(t, FlowIdle, flow.State())
	require.Equal(t, SessionAuthenticated, auth.Current().State)

	access, _ := repo.pair()
	require.Equal(t, "acc", access)
}

func TestReactivateWithPassword_ServerRejects_OfferStaysPending(t *testing.T) {
	wantErr := &api.Error{Status: 401, Detail: "incorrect password"}
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypePassword), nil
		},
		ReactivateFn: func(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error) {
			return nil, wantErr
		},
	}
	flow, _, _ := newFlow(client)
	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	err = flow.ReactivateWithPassword(context.Background(), "wrong")
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, FlowOffering, flow.State())
}

func TestReactivateWithGoogle_EmailMismatch_NoServerCall(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypeGoogle), nil
		},
		ReactivateFn: func(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error) {
			t.Fatal("reactivate must not be called for a mismatched identity")
			return nil, nil
		},
	}
	flow, _, _ := newFlow(client)
	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	token := signedIDToken(t, jwt.MapClaims{"email": "someone.else@example.com"})
	err = flow.ReactivateWithGoogle(context.Background(), token)
	require.ErrorIs(t, err, ErrIdentityMismatch)
	require.Equal(t, FlowOffering, flow.State())
}

func TestReactivateWithGoogle_EmailMatchIsCaseInsensitive(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypeGoogle), nil
		},
		ReactivateFn: func(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error) {
			return &models.TokenPair{AccessToken: "acc1", RefreshToken: "ref1"}, nil
		},
		GoogleLoginFn: func(ctx context.Context, idToken string) (*models.TokenPair, error) {
			return &models.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"}, nil
		},
		AuthHealthFn: authHealthOK,
	}
	flow, auth, repo := newFlow(client)
	require.NoError(t, auth.Bootstrap(context.Background()))

	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	token := signedIDToken(t, jwt.MapClaims{"email": "User@Example.COM"})
	require.NoError(t, flow.ReactivateWithGoogle(context.Background(), token))
	require.Equal(t, FlowIdle, flow.State())
	require.Equal(t, SessionAuthenticated, auth.Current().State)

	// The follow-up google login pair wins.
	access, _ := repo.pair()
	require.Equal(t, "acc2", access)
}

func TestReactivateWithGoogle_LoginFails_FallsBackToReactivationPair(t *testing.T) {
	client := &fakeAPI{
		CheckDeletedAccountFn: func(ctx context.Context, email string) (*models.DeletedAccountInfo, error) {
			return deletedInfo(models.DeletionTypeGoogle), nil
		},
		ReactivateFn: func(ctx context.Context, req api.ReactivateRequest) (*models.TokenPair, error) {
			require.Equal(t, models.DeletionTypeGoogle, req.DeletionType)
			require.NotEmpty(t, req.GoogleToken)
			return &models.TokenPair{AccessToken: "acc1", RefreshToken: "ref1"}, nil
		},
		GoogleLoginFn: func(ctx context.Context, idToken string) (*models.TokenPair, error) {
			return nil, api.ErrUnavailable
		},
		AuthHealthFn: authHealthOK,
	}
	flow, auth, repo := newFlow(client)
	require.NoError(t, auth.Bootstrap(context.Background()))

	_, err := flow.Begin(context.Background(), "user@example.com")
	require.NoError(t, err)

	token := signedIDToken(t, jwt.MapClaims{"email": "user@example.com"})
	require.NoError(t, flow.ReactivateWithGoogle(context.Background(), token))
	require.Equal(t, SessionAuthenticated, auth.Current().State)

	access, _ := repo.pair()
	require.Equal(t, "acc1", access)
}

func TestGoogleTokenEmail(t *testing.T) {
	token := signedIDToken(t, jwt.MapClaims{"email": "user@example.com", "sub": "123"})
	email, err := GoogleTokenEmail(token)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", email)
}

func TestGoogleTokenEmail_MissingClaim(t *testing.T) {
	token := signedIDToken(t, jwt.MapClaims{"sub": "123"})
	_, err := GoogleTokenEmail(token)
	require.Error(t, err)
}

func TestGoogleTokenEmail_Garbage(t *testing.T) {
	_, err := GoogleTokenEmail("not-a-jwt")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrIdentityMismatch))
}
