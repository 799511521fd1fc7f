package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"stockpilot/internal/client/api"
)

func (a *App) predict(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: predict <symbol> [notify]")
		return
	}
	notify := len(args) > 1 && args[1] == "notify"

	result, err := a.stocks.Predict(ctx, args[0], notify)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}

	fmt.Printf("%s @ %.2f\n", result.Symbol, result.CurrentPrice)
	fmt.Printf("  movement:   %s (%.1f%% confidence)\n", result.PredictedMovement, result.Confidence*100)
	fmt.Printf("  up/down:    %.1f%% / %.1f%%\n", result.UpProbability*100, result.DownProbability*100)
	if result.MovementExceedsThreshold {
		fmt.Printf("  significant: exceeds %.1f%% threshold\n", result.SignificantMovementThreshold*100)
	}
	if result.NotificationSent != nil {
		if *result.NotificationSent {
			fmt.Println("  notification sent")
		} else if result.NotificationError != "" {
			fmt.Printf("  notification failed: %s\n", result.NotificationError)
		}
	}
}

func (a *App) train(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: train <symbol> [test-size]")
		return
	}

	var testSize *float64
	if len(args) > 1 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Println("test-size must be a number between 0 and 1")
			return
		}
		testSize = &v
	}

	fmt.Println("Training, this may take a while...")
	metrics, err := a.stocks.Train(ctx, args[0], testSize)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}

	p := metrics.ModelPerformance
	fmt.Printf("Model trained on %d samples (%d held out)\n", p.TrainingSamples, p.TestSamples)
	fmt.Printf("  accuracy: %.3f  precision: %.3f  recall: %.3f  f1: %.3f  roc-auc: %.3f\n",
		p.Accuracy, p.Precision, p.Recall, p.F1Score, p.ROCAUC)
	cm := p.ConfusionMatrix
	fmt.Printf("  confusion: tn=%d fp=%d fn=%d tp=%d\n",
		cm.TrueNegative, cm.FalsePositive, cm.FalseNegative, cm.TruePositive)

	for symbol, sp := range metrics.StockPerformance {
		fmt.Printf("  %s: return %.1f%%, volatility %.1f%%, drawdown %.1f%%, %d data points (%s to %s)\n",
			symbol, sp.TotalReturn*100, sp.Volatility*100, sp.MaxDrawdown*100,
			sp.DataPoints, sp.DateRange.Start, sp.DateRange.End)
	}

	ti := metrics.TrainingInfo
	fmt.Printf("  timeframe %s, window %d, threshold %.2f\n",
		ti.Timeframe, ti.PredictionWindow, ti.MovementThreshold)
}

func (a *App) untrain(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: untrain <symbol> [symbol...]")
		return
	}
	if err := a.stocks.Untrain(ctx, args...); err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	fmt.Println("Model(s) removed")
}
