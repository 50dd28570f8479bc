package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	drepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/session"
	"MoverScan/pkg/config"
	xhttp "MoverScan/pkg/http"
	"MoverScan/pkg/util"
)

const (
	Name           = "alphavantage"
	defaultBaseURL = "https://www.alphavantage.co"
)

var _ drepo.CandleProvider = (*Client)(nil)

var intradayIntervals = map[drepo.Timeframe]string{
	drepo.TF1m:  "1min",
	drepo.TF5m:  "5min",
	drepo.TF15m: "15min",
	drepo.TF1h:  "60min",
}

// Client is the historical-candle fallback backed by Alpha Vantage time series.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates an Alpha Vantage client. The free tier allows very few calls,
// so cfg.RateLimit should be set.
func New(cfg config.ProviderConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: base,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithRateLimit(cfg.RateLimit, cfg.Burst),
		),
	}
}

func (c *Client) Name() string { return Name }

type bar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// FetchCandles implements drepo.CandleProvider.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf drepo.Timeframe, from, to time.Time) ([]models.Candle, error) {
	params := map[string][]string{
		"symbol":     {strings.ToUpper(symbol)},
		"apikey":     {c.apiKey},
		"outputsize": {"full"},
	}
	if interval, ok := intradayIntervals[tf]; ok {
		params["function"] = []string{"TIME_SERIES_INTRADAY"}
		params["interval"] = []string{interval}
	} else if tf == drepo.TF1d {
		params["function"] = []string{"TIME_SERIES_DAILY"}
	} else {
		return nil, fmt.Errorf("alphavantage: unsupported timeframe %s", tf)
	}

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/query",
		QueryParams: params,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage %s: %w", symbol, err)
	}
	return parseSeries(body, from, to)
}

// parseSeries decodes a time-series payload and returns the candles inside
// [from, to] in ascending order. Throttle and error notices come back with
// status 200, so they are detected by key.
func parseSeries(body []byte, from, to time.Time) ([]models.Candle, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	for _, key := range []string{"Error Message", "Note", "Information"} {
		if msg, ok := raw[key]; ok {
			var s string
			_ = json.Unmarshal(msg, &s)
			return nil, fmt.Errorf("alphavantage: %s", s)
		}
	}

	var series map[string]bar
	for key, v := range raw {
		if strings.HasPrefix(key, "Time Series") {
			if err := json.Unmarshal(v, &series); err != nil {
				return nil, fmt.Errorf("alphavantage decode series: %w", err)
			}
			break
		}
	}

	out := make([]models.Candle, 0, len(series))
	for stamp, b := range series {
		ts, ok := parseStamp(stamp)
		if !ok {
			continue
		}
		if (!from.IsZero() && ts.Before(from)) || (!to.IsZero() && ts.After(to)) {
			continue
		}
		candle, ok := normalize(ts, b)
		if !ok {
			continue
		}
		out = append(out, candle)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// Stamps are exchange-local: "2006-01-02 15:04:05" intraday, "2006-01-02" daily.
func parseStamp(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, session.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalize(ts time.Time, b bar) (models.Candle, bool) {
	o, ok1 := util.ParseNumber(b.Open)
	h, ok2 := util.ParseNumber(b.High)
	l, ok3 := util.ParseNumber(b.Low)
	cl, ok4 := util.ParseNumber(b.Close)
	if !(ok1 && ok2 && ok3 && ok4) {
		return models.Candle{}, false
	}
	v, _ := util.ParseNumber(b.Volume)
	return models.Candle{Time: ts.Unix(), Open: o, High: h, Low: l, Close: cl, Volume: v}, true
}
