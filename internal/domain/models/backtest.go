package models

// BacktestRequest is sent to the external backtest engine.
type BacktestRequest struct {
	Symbol    string             `json:"symbol"`
	Timeframe string             `json:"timeframe"`
	Strategy  string             `json:"strategy"`
	Params    map[string]float64 `json:"params,omitempty"`
	Candles   []Candle           `json:"candles"`
}

// BacktestResult is relayed from the backtest engine as-is.
type BacktestResult struct {
	Strategy    string                 `json:"strategy"`
	Symbol      string                 `json:"symbol"`
	Timeframe   string                 `json:"timeframe"`
	Trades      int                    `json:"trades"`
	TotalReturn float64                `json:"totalReturn"`
	WinRate     float64                `json:"winRate"`
	MaxDrawdown float64                `json:"maxDrawdown"`
	Sharpe      float64                `json:"sharpe"`
	Raw         map[string]interface{} `json:"raw,omitempty"`
}
