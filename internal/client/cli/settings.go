package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"stockpilot/internal/client/api"
	"stockpilot/internal/client/models"
)

func (a *App) showSettings(ctx context.Context) {
	settings, err := a.settings.Get(ctx)
	if err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}

	fmt.Printf("prediction_threshold           %.2f\n", settings.PredictionThreshold)
	fmt.Printf("significant_movement_threshold %.2f\n", settings.SignificantMovementThreshold)
	fmt.Printf("prediction_window              %d\n", settings.PredictionWindow)
	fmt.Printf("historical_days                %d\n", settings.HistoricalDays)
	fmt.Printf("training_timeframe             %s\n", settings.TrainingTimeframe)
	fmt.Printf("notification_days              %s (Mon..Sun)\n", settings.NotificationDays)
	fmt.Printf("notify_market_open             %t\n", settings.NotifyMarketOpen)
	fmt.Printf("notify_midday                  %t\n", settings.NotifyMidday)
	fmt.Printf("notify_market_close            %t\n", settings.NotifyMarketClose)
	fmt.Printf("timezone                       %s\n", settings.Timezone)
}

// setSetting updates one settings field by name.
func (a *App) setSetting(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: set <field> <value>")
		fmt.Println("Fields: prediction_threshold, significant_movement_threshold, prediction_window,")
		fmt.Println("        historical_days, training_timeframe, notification_days,")
		fmt.Println("        notify_market_open, notify_midday, notify_market_close, timezone")
		return
	}

	upd, err := buildSettingsUpdate(args[0], args[1])
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if _, err := a.settings.Update(ctx, *upd); err != nil {
		log.Printf("error: %s", api.ErrorDetail(err))
		return
	}
	fmt.Println("Settings updated")
}

func buildSettingsUpdate(field, value string) (*models.UserSettingsUpdate, error) {
	upd := &models.UserSettingsUpdate{}

	switch field {
	case "prediction_threshold", "significant_movement_threshold":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", field)
		}
		if field == "prediction_threshold" {
			upd.PredictionThreshold = &v
		} else {
			upd.SignificantMovementThreshold = &v
		}
	case "prediction_window", "historical_days":
		v, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer", field)
		}
		if field == "prediction_window" {
			upd.PredictionWindow = &v
		} else {
			upd.HistoricalDays = &v
		}
	case "training_timeframe":
		upd.TrainingTimeframe = &value
	case "notification_days":
		upd.NotificationDays = &value
	case "notify_market_open", "notify_midday", "notify_market_close":
		v, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", field)
		}
		switch field {
		case "notify_market_open":
			upd.NotifyMarketOpen = &v
		case "notify_midday":
			upd.NotifyMidday = &v
		default:
			upd.NotifyMarketClose = &v
		}
	case "timezone":
		upd.Timezone = &value
	default:
		return nil, fmt.Errorf("unknown field: %s", field)
	}

	return upd, nil
}
