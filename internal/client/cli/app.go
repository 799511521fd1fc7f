package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/config"
	"stockpilot/internal/client/repositories/tokens"
	"stockpilot/internal/client/services"
	"stockpilot/internal/client/storage"
	"stockpilot/internal/logging"
)

// App wires the configured transport, token store and services, and
// drives the interactive command loop. It is a consumer of the session
// controller, never a holder of business rules.
type App struct {
	config     *config.Config
	auth       *services.AuthService
	reactivate *services.ReactivateFlow
	stocks     *services.StockService
	settings   *services.SettingsService
	account    *services.AccountService
	reader     *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	repo := tokens.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, repo, logger)

	auth := services.NewAuthService(apiClient, repo, logger)
	apiClient.OnSessionExpired(auth.HandleSessionExpired)

	return &App{
		config:     c,
		auth:       auth,
		reactivate: services.NewReactivateFlow(apiClient, auth, logger),
		stocks:     services.NewStockService(apiClient, logger),
		settings:   services.NewSettingsService(apiClient, logger),
		account:    services.NewAccountService(apiClient, auth, logger),
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.auth.Current().State == services.SessionAuthenticated
}

func (a *App) Run(ctx context.Context) {
	if err := a.auth.Bootstrap(ctx); err != nil {
		log.Printf("could not resume session: %s", err.Error())
	}
	a.Root(ctx)
}
