package cli

import (
	"context"
	"fmt"
	"log"

	"stockpilot/internal/client/api"
)

func (a *App) list(ctx context.Context) {
	stocks, err := a.stocks.List(ctx)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	if len(stocks) == 0 {
		fmt.Println("Watchlist is empty. Use 'add <symbol>' to track a stock.")
		return
	}
	for _, s := range stocks {
		fmt.Printf("%-8s added %s\n", s.Symbol, s.CreatedAt.Format("2006-01-02"))
	}
}

func (a *App) add(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: add <symbol> [symbol...]")
		return
	}
	stocks, err := a.stocks.Add(ctx, args...)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	fmt.Printf("Watchlist now has %d symbol(s)\n", len(stocks))
}

func (a *App) remove(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: remove <symbol> [symbol...]")
		return
	}
	stocks, err := a.stocks.Remove(ctx, args...)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	fmt.Printf("Watchlist now has %d symbol(s)\n", len(stocks))
}

func (a *App) catalog(ctx context.Context) {
	available, err := a.stocks.Available(ctx, true)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	for _, s := range available {
		fmt.Printf("%-8s %s\n", s.Symbol, s.Name)
	}
}
