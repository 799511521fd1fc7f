package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"stockpilot/internal/client/api"
)

func (a *App) deleteAccount(ctx context.Context) {
	fmt.Println("This deletes your account. You can reactivate it by signing in again within 30 days.")
	confirmed, err := getConfirmation(a.reader, "Delete account?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if !confirmed {
		return
	}
	if err := a.account.Delete(ctx); err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	fmt.Println("Account deleted. Goodbye!")
}
