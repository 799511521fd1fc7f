package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	session := a.auth.Current()
	if session.User != nil {
		return fmt.Sprintf("(%s)", session.User.Email)
	}
	return ""
}

// Root runs the interactive command loop until EOF or exit.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to stockpilot CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("sp %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: list, add, remove, catalog, predict, train, untrain, settings, set, telegram, connect, whoami, delete, logout, exit")
			} else {
				fmt.Println("Available commands: login, google, register, exit")
			}

		case "login":
			a.Login(ctx)
		case "google":
			a.GoogleLogin(ctx)
		case "register":
			a.Register(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami(ctx)

		case "l", "list":
			a.list(ctx)
		case "add":
			a.add(ctx, args)
		case "remove", "rm":
			a.remove(ctx, args)
		case "catalog":
			a.catalog(ctx)

		case "predict":
			a.predict(ctx, args)
		case "train":
			a.train(ctx, args)
		case "untrain":
			a.untrain(ctx, args)

		case "settings":
			a.showSettings(ctx)
		case "set":
			a.setSetting(ctx, args)

		case "telegram":
			a.telegramStatus(ctx)
		case "connect":
			a.connectTelegram(ctx, args)

		case "delete":
			a.deleteAccount(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
