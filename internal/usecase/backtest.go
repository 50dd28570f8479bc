package usecase

import (
	"context"
	"fmt"
	"strings"

	"MoverScan/internal/domain/models"
	domsvc "MoverScan/internal/domain/service"
)

// DefaultStrategies are the strategy ids the backtest engine understands.
var DefaultStrategies = []string{"sma_cross", "ema_cross", "rsi_reversion", "breakout", "buy_and_hold"}

// BacktestUseCase relays a candle series to the backtest engine.
type BacktestUseCase struct {
	candles    *CandlesUseCase
	backtester domsvc.Backtester
	strategies map[string]struct{}
}

func NewBacktestUseCase(candles *CandlesUseCase, backtester domsvc.Backtester, strategies []string) *BacktestUseCase {
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}
	set := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		set[strings.ToLower(s)] = struct{}{}
	}
	return &BacktestUseCase{candles: candles, backtester: backtester, strategies: set}
}

type BacktestParams struct {
	Symbol    string
	Timeframe string
	Strategy  string
	Params    map[string]float64
}

// Run validates the request, loads at least the minimum history and hands
// it to the engine. The engine is never called with a short series.
func (uc *BacktestUseCase) Run(ctx context.Context, p BacktestParams) (*models.BacktestResult, error) {
	strategy := strings.ToLower(strings.TrimSpace(p.Strategy))
	if _, ok := uc.strategies[strategy]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, p.Strategy)
	}

	s, err := uc.candles.series(ctx, p.Symbol, p.Timeframe)
	if err != nil {
		return nil, err
	}

	res, err := uc.backtester.Run(ctx, models.BacktestRequest{
		Symbol:    s.Symbol,
		Timeframe: s.Timeframe,
		Strategy:  strategy,
		Params:    p.Params,
		Candles:   s.Candles,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBacktestFailed, err)
	}
	return &res, nil
}
