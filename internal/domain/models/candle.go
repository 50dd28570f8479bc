package models

import "time"

// Candle is an OHLCV bar. Time is the bar open in unix seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// CandleSeries is the candle history for one symbol and timeframe.
type CandleSeries struct {
	Symbol    string    `json:"symbol"`
	Timeframe string    `json:"timeframe"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Provider  string    `json:"provider"`
	Count     int       `json:"count"`
	Candles   []Candle  `json:"candles"`
}

// Closes returns the close prices in series order.
func (s *CandleSeries) Closes() []float64 {
	out := make([]float64, len(s.Candles))
	for i, c := range s.Candles {
		out[i] = c.Close
	}
	return out
}

// AnalysisResult summarizes indicator values at the latest bar.
type AnalysisResult struct {
	Symbol             string    `json:"symbol"`
	Timeframe          string    `json:"timeframe"`
	Provider           string    `json:"provider"`
	Candles            int       `json:"candles"`
	LastClose          float64   `json:"lastClose"`
	RSI14              float64   `json:"rsi14"`
	EMA20              float64   `json:"ema20"`
	EMA50              *float64  `json:"ema50,omitempty"`
	SMA20              float64   `json:"sma20"`
	ATR14              float64   `json:"atr14"`
	RealizedVolatility float64   `json:"realizedVolatility"`
	Timestamp          time.Time `json:"timestamp"`
}
