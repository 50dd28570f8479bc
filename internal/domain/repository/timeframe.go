package repository

import "time"

// Timeframe represents candle resolution buckets.
type Timeframe string

const (
	TF1m  Timeframe = "1m"
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF1h  Timeframe = "1h"
	TF1d  Timeframe = "1d"
)

type timeframeSpec struct {
	bar      time.Duration
	lookback time.Duration
}

var timeframes = map[Timeframe]timeframeSpec{
	TF1m:  {bar: time.Minute, lookback: 2 * 24 * time.Hour},
	TF5m:  {bar: 5 * time.Minute, lookback: 7 * 24 * time.Hour},
	TF15m: {bar: 15 * time.Minute, lookback: 14 * 24 * time.Hour},
	TF1h:  {bar: time.Hour, lookback: 60 * 24 * time.Hour},
	TF1d:  {bar: 24 * time.Hour, lookback: 365 * 24 * time.Hour},
}

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	_, ok := timeframes[tf]
	return ok
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF1d }

// ParseTimeframe maps a raw code to a supported timeframe. Empty input yields
// the default; unknown codes return false.
func ParseTimeframe(s string) (Timeframe, bool) {
	if s == "" {
		return DefaultTimeframe(), true
	}
	tf := Timeframe(s)
	return tf, IsValidTimeframe(tf)
}

// Lookback is how far back a history request for tf reaches.
func (tf Timeframe) Lookback() time.Duration { return timeframes[tf].lookback }

// BarDuration is the length of one bar.
func (tf Timeframe) BarDuration() time.Duration { return timeframes[tf].bar }

// BarsPerYear approximates the number of bars in a trading year, used to
// annualize volatility. Intraday bars assume 6.5 trading hours a day.
func (tf Timeframe) BarsPerYear() float64 {
	const tradingDays = 252
	if tf == TF1d {
		return tradingDays
	}
	bar := tf.BarDuration()
	if bar <= 0 {
		return tradingDays
	}
	return tradingDays * float64(390*time.Minute) / float64(bar)
}
