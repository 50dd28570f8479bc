package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/middleware"
	"MoverScan/internal/services/features"
	applogger "MoverScan/pkg/logger"
	"MoverScan/pkg/util"
)

// CandlesUseCase retrieves candle history through the provider chain.
type CandlesUseCase struct {
	providers  []*middleware.GuardedCandles
	minCandles int
	logger     *applogger.Logger
	now        func() time.Time
}

func NewCandlesUseCase(providers []*middleware.GuardedCandles, minCandles int, logger *applogger.Logger) *CandlesUseCase {
	if minCandles <= 0 {
		minCandles = features.MinCandles
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &CandlesUseCase{providers: providers, minCandles: minCandles, logger: logger, now: time.Now}
}

// WithClock replaces the clock that anchors the lookback window.
func (uc *CandlesUseCase) WithClock(now func() time.Time) *CandlesUseCase {
	uc.now = now
	return uc
}

type GetCandlesParams struct {
	Symbol    string
	Timeframe string
	// Limit keeps the most recent bars. Zero keeps all.
	Limit int
}

// GetCandles walks the providers in order. The chain advances while a
// provider returns fewer than the minimum and the largest series seen wins.
// A short series is returned as is.
func (uc *CandlesUseCase) GetCandles(ctx context.Context, p GetCandlesParams) (*models.CandleSeries, error) {
	symbol := strings.ToUpper(strings.TrimSpace(p.Symbol))
	if symbol == "" {
		return nil, ErrSymbolRequired
	}
	tf, ok := domrepo.ParseTimeframe(p.Timeframe)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTimeframe, p.Timeframe)
	}

	now := uc.now().UTC()
	from, to := util.AlignFromTo(now.Add(-tf.Lookback()), now, tf.BarDuration())

	var best []models.Candle
	var provider string
	for _, g := range uc.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candles, _ := g.Candles(ctx, symbol, tf, from, to)
		if len(candles) > len(best) {
			best = candles
			provider = g.Name()
		}
		if len(best) >= uc.minCandles {
			break
		}
		uc.logger.Debug("candle provider short, trying next",
			applogger.String("provider", g.Name()),
			applogger.String("symbol", symbol),
			applogger.Int("count", len(candles)),
		)
	}

	best = sortCandles(best)
	if p.Limit > 0 && len(best) > p.Limit {
		best = best[len(best)-p.Limit:]
	}
	if best == nil {
		best = []models.Candle{}
	}

	return &models.CandleSeries{
		Symbol:    symbol,
		Timeframe: string(tf),
		From:      from,
		To:        to,
		Provider:  provider,
		Count:     len(best),
		Candles:   best,
	}, nil
}

// sortCandles orders bars by time and drops repeated timestamps.
func sortCandles(in []models.Candle) []models.Candle {
	if len(in) < 2 {
		return in
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].Time < in[j].Time })
	out := in[:1]
	for _, c := range in[1:] {
		if c.Time == out[len(out)-1].Time {
			continue
		}
		out = append(out, c)
	}
	return out
}

// series loads the full window and enforces the minimum length.
func (uc *CandlesUseCase) series(ctx context.Context, symbol, tf string) (*models.CandleSeries, error) {
	s, err := uc.GetCandles(ctx, GetCandlesParams{Symbol: symbol, Timeframe: tf})
	if err != nil {
		return nil, err
	}
	if s.Count < uc.minCandles {
		return nil, &InsufficientDataError{Count: s.Count, Required: uc.minCandles}
	}
	return s, nil
}
