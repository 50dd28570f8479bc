package usecase

import (
	"context"
	"fmt"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/features"
)

// AnalysisUseCase computes indicator snapshots from candle history.
type AnalysisUseCase struct {
	candles *CandlesUseCase
}

func NewAnalysisUseCase(candles *CandlesUseCase) *AnalysisUseCase {
	return &AnalysisUseCase{candles: candles}
}

func (uc *AnalysisUseCase) Analyze(ctx context.Context, symbol, tf string) (*models.AnalysisResult, error) {
	s, err := uc.candles.series(ctx, symbol, tf)
	if err != nil {
		return nil, err
	}
	frame, _ := domrepo.ParseTimeframe(s.Timeframe)
	res, err := features.Summarize(s, frame.BarsPerYear())
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", s.Symbol, err)
	}
	return &res, nil
}
