package models

// ClassMetrics holds precision/recall for a single prediction class.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	Support   int     `json:"support"`
}

// ConfusionMatrix summarizes binary classification outcomes on the test set.
type ConfusionMatrix struct {
	TrueNegative  int `json:"true_negative"`
	FalsePositive int `json:"false_positive"`
	FalseNegative int `json:"false_negative"`
	TruePositive  int `json:"true_positive"`
}

// ModelPerformance is the evaluation block of a training run.
type ModelPerformance struct {
	Accuracy     float64 `json:"accuracy"`
	Precision    float64 `json:"precision"`
	Recall       float64 `json:"recall"`
	F1Score      float64 `json:"f1_score"`
	ROCAUC       float64 `json:"roc_auc"`
	ClassMetrics struct {
		NoMovement          ClassMetrics `json:"no_movement"`
		SignificantMovement ClassMetrics `json:"significant_movement"`
	} `json:"class_metrics"`
	ClassDistribution struct {
		NoMovement          int `json:"no_movement"`
		SignificantMovement int `json:"significant_movement"`
	} `json:"class_distribution"`
	ConfusionMatrix ConfusionMatrix    `json:"confusion_matrix"`
	TopFeatures     map[string]float64 `json:"top_features"`
	TrainingSamples int                `json:"training_samples"`
	TestSamples     int                `json:"test_samples"`
}

// DateRange bounds the historical data used for a symbol.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// StockPerformance describes the historical behavior of one trained symbol.
type StockPerformance struct {
	TotalReturn          float64   `json:"total_return"`
	Volatility           float64   `json:"volatility"`
	MaxDrawdown          float64   `json:"max_drawdown"`
	AvgVolume            float64   `json:"avg_volume"`
	DataPoints           int       `json:"data_points"`
	DateRange            DateRange `json:"date_range"`
	CurrentPrice         float64   `json:"current_price"`
	SignificantMovements int       `json:"significant_movements"`
}

// TrainingInfo echoes the parameters the model was trained with.
type TrainingInfo struct {
	Timeframe         string   `json:"timeframe"`
	PredictionWindow  int      `json:"prediction_window"`
	MovementThreshold float64  `json:"movement_threshold"`
	TrainedSymbols    []string `json:"trained_symbols"`
}

// TrainingMetrics is the metrics payload returned by POST /train.
type TrainingMetrics struct {
	ModelPerformance ModelPerformance            `json:"model_performance"`
	StockPerformance map[string]StockPerformance `json:"stock_performance"`
	TrainingInfo     TrainingInfo                `json:"training_info"`
}
