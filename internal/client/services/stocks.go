package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
	"stockpilot/internal/logging"
)

// WatchlistLimit is the maximum number of symbols a user may track.
const WatchlistLimit = 5

var (
	ErrWatchlistLimit = fmt.Errorf("watchlist limit of %d symbols reached", WatchlistLimit)
	ErrEmptySymbol    = errors.New("symbol must not be empty")
)

// StockService manages the watchlist, the symbol catalog, and the
// per-symbol model operations.
type StockService struct {
	client api.Client
	log    logging.Logger
}

func NewStockService(client api.Client, log logging.Logger) *StockService {
	return &StockService{client: client, log: log}
}

// NormalizeSymbol canonicalizes user input to the backend's symbol form.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func normalizeSymbols(symbols []string) ([]string, error) {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		n := NormalizeSymbol(s)
		if n == "" {
			return nil, ErrEmptySymbol
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, ErrEmptySymbol
	}
	return out, nil
}

// List returns the user's watchlist.
func (s *StockService) List(ctx context.Context) ([]models.UserStock, error) {
	return s.client.GetStocks(ctx)
}

// Add registers symbols on the watchlist. The limit is enforced locally
// before the request so the user gets an immediate answer.
func (s *StockService) Add(ctx context.Context, symbols ...string) ([]models.UserStock, error) {
	normalized, err := normalizeSymbols(symbols)
	if err != nil {
		return nil, err
	}

	current, err := s.client.GetStocks(ctx)
	if err != nil {
		return nil, err
	}
	if len(current)+len(normalized) > WatchlistLimit {
		return nil, ErrWatchlistLimit
	}

	return s.client.AddStocks(ctx, normalized)
}

// Remove drops symbols from the watchlist.
func (s *StockService) Remove(ctx context.Context, symbols ...string) ([]models.UserStock, error) {
	normalized, err := normalizeSymbols(symbols)
	if err != nil {
		return nil, err
	}
	return s.client.RemoveStocks(ctx, normalized)
}

// Available returns the catalog of addable symbols.
func (s *StockService) Available(ctx context.Context, enabledOnly bool) ([]models.AvailableStock, error) {
	return s.client.GetAvailableStocks(ctx, enabledOnly)
}

// Predict requests an on-demand prediction for one symbol. When notify
// is set the backend also pushes the result to the linked messenger.
func (s *StockService) Predict(ctx context.Context, symbol string, notify bool) (*models.PredictionResult, error) {
	n := NormalizeSymbol(symbol)
	if n == "" {
		return nil, ErrEmptySymbol
	}
	return s.client.Predict(ctx, n, notify)
}

// Train fits the per-symbol model. testSize optionally overrides the
// backend's evaluation split.
func (s *StockService) Train(ctx context.Context, symbol string, testSize *float64) (*models.TrainingMetrics, error) {
	n := NormalizeSymbol(symbol)
	if n == "" {
		return nil, ErrEmptySymbol
	}
	if testSize != nil && (*testSize <= 0 || *testSize >= 1) {
		return nil, errors.New("test size must be between 0 and 1")
	}
	s.log.Info(ctx, "training model", "symbol", n)
	return s.client.Train(ctx, n, testSize)
}

// Untrain discards the trained models for the given symbols.
func (s *StockService) Untrain(ctx context.Context, symbols ...string) error {
	normalized, err := normalizeSymbols(symbols)
	if err != nil {
		return err
	}
	return s.client.Untrain(ctx, normalized)
}
