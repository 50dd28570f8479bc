package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrSymbolRequired       = errors.New("symbol is required")
	ErrQueryRequired        = errors.New("query is required")
	ErrNoSymbols            = errors.New("no symbols to scan")
	ErrUnsupportedTimeframe = errors.New("unsupported timeframe")
	ErrUnsupportedStrategy  = errors.New("unsupported strategy")
	ErrInsufficientData     = errors.New("insufficient data")
	ErrBacktestFailed       = errors.New("backtest failed")
)

// InsufficientDataError reports a series shorter than an analysis needs.
// It matches ErrInsufficientData under errors.Is.
type InsufficientDataError struct {
	Count    int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d candles, need %d", e.Count, e.Required)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }
