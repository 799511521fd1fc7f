package cli

import (
	"context"
	"fmt"
	"log"

	"stockpilot/internal/client/api"
)

func (a *App) telegramStatus(ctx context.Context) {
	status, err := a.settings.TelegramStatus(ctx)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	if !status.IsConnected {
		fmt.Println("Telegram is not connected. Message the bot, then run 'connect <token>'.")
		return
	}
	if status.ConnectedAt != nil {
		fmt.Printf("Telegram connected since %s\n", status.ConnectedAt.Format("2006-01-02"))
	} else {
		fmt.Println("Telegram connected")
	}
}

func (a *App) connectTelegram(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: connect <token>")
		return
	}
	status, err := a.settings.ConnectTelegram(ctx, args[0])
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	if status.IsConnected {
		fmt.Println("Telegram connected, notifications are on")
	}
}
