package service

import (
	"context"

	"MoverScan/internal/domain/models"
)

// Backtester runs a strategy over a candle series. The simulation itself lives
// in a separate engine; implementations only relay the request.
type Backtester interface {
	Run(ctx context.Context, req models.BacktestRequest) (models.BacktestResult, error)
}
