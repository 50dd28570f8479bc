package models

// Requests for the public HTTP endpoints. Defaults are applied before validation.

// DefaultMinPercent is the movers threshold when the caller sends none. It is
// applied on absence rather than through a default tag so that an explicit 0
// is kept.
const DefaultMinPercent = 5.0

type MoversRequest struct {
	Symbols    string  `query:"symbols" json:"symbols"`
	MinPercent float64 `query:"min_percent" json:"min_percent" validate:"gte=0,lte=1000"`
	Limit      int     `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
	IncludeAll bool    `query:"include_all" json:"include_all"`
}

type NewsRequest struct {
	Query string `query:"q" json:"q" validate:"required"`
	Limit int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=20"`
}

type CandlesRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,ticker"`
	TF     string `query:"tf" json:"tf" default:"1d"`
	Limit  int    `query:"limit" json:"limit" default:"500" validate:"gte=1,lte=5000"`
}

type AnalysisRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required,ticker"`
	TF     string `query:"tf" json:"tf" default:"1d"`
}

type BacktestHTTPRequest struct {
	Symbol   string             `json:"symbol" validate:"required,ticker"`
	TF       string             `json:"tf" default:"1d"`
	Strategy string             `json:"strategy" validate:"required"`
	Params   map[string]float64 `json:"params"`
}
