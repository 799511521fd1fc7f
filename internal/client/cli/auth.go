package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
	"stockpilot/internal/client/services"
	"stockpilot/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getConfirmation = GetConfirmation

// Login runs the sign-in flow: the email is probed for a reactivatable
// deleted account first, so the user is offered recovery instead of a
// misleading bad-credentials error.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	offer, err := a.reactivate.Begin(ctx, email)
	if err != nil {
		return err
	}
	if offer != nil {
		return a.offerReactivation(ctx, offer)
	}
	defer a.reactivate.Reset()

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		log.Printf("Login unsuccessful: %s", api.ErrorDetail(err))
		return err
	}

	log.Printf("Login successful")
	return nil
}

func (a *App) offerReactivation(ctx context.Context, offer *models.DeletedAccountInfo) error {
	fmt.Printf("Your account was deleted on %s. You can reactivate it until %s.\n",
		offer.DeletionDate.Format("January 2, 2006"),
		offer.ReactivationDeadline.Format("January 2, 2006"))

	if offer.DeletionType == models.DeletionTypeGoogle {
		fmt.Println("Sign in with the same Google account to restore it.")
		idToken, err := getSimpleText(a.reader, "Paste Google ID token (empty to cancel)", os.Stdout)
		if err != nil {
			return err
		}
		if idToken == "" {
			a.reactivate.Cancel()
			return nil
		}
		if err := a.reactivate.ReactivateWithGoogle(ctx, idToken); err != nil {
			if errors.Is(err, services.ErrIdentityMismatch) {
				log.Printf("Reactivation failed: %s", err.Error())
			} else {
				log.Printf("Reactivation failed: %s", api.ErrorDetail(err))
			}
			a.reactivate.Cancel()
			return err
		}
	} else {
		confirmed, err := getConfirmation(a.reader, "Reactivate with your password?", os.Stdout)
		if err != nil {
			return err
		}
		if !confirmed {
			a.reactivate.Cancel()
			return nil
		}
		password, err := getPassword(os.Stdout)
		if err != nil {
			return err
		}
		defer shared.WipeByteArray(password)

		if err := a.reactivate.ReactivateWithPassword(ctx, string(password)); err != nil {
			log.Printf("Reactivation failed: %s", api.ErrorDetail(err))
			a.reactivate.Cancel()
			return err
		}
	}

	log.Printf("Account reactivated, welcome back!")
	return nil
}

// GoogleLogin signs in with a pasted OIDC ID token.
func (a *App) GoogleLogin(ctx context.Context) error {
	if a.config.GoogleClientID != "" {
		fmt.Printf("Obtain an ID token issued for client %s\n", a.config.GoogleClientID)
	}
	idToken, err := getSimpleText(a.reader, "Paste Google ID token", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.GoogleLogin(ctx, idToken); err != nil {
		log.Printf("Google login unsuccessful: %s", api.ErrorDetail(err))
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Register prompts for the new account's details and signs in with the
// pair the backend returns.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	if err := a.auth.Register(ctx, email, fullName, string(password)); err != nil {
		log.Printf("Registration unsuccessful: %s", api.ErrorDetail(err))
		return err
	}

	log.Printf("Success!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	log.Printf("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) {
	session := a.auth.Current()
	if session.User == nil {
		fmt.Println("Not signed in")
		return
	}
	fmt.Printf("%s <%s> (id %d)\n", session.User.FullName, session.User.Email, session.User.ID)
}
