package finnhub

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	drepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/batch"
	"MoverScan/pkg/config"
	xhttp "MoverScan/pkg/http"
)

const (
	Name           = "finnhub"
	defaultBaseURL = "https://finnhub.io"
)

var _ drepo.QuoteProvider = (*Client)(nil)

// Client is a QuoteProvider backed by the Finnhub REST quote endpoint. The
// endpoint takes one symbol per call, so requests fan out per symbol.
type Client struct {
	apiKey      string
	baseURL     string
	concurrency int
	http        *xhttp.Client
	now         func() time.Time
}

// New creates a Finnhub quote client.
func New(cfg config.ProviderConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		apiKey:      cfg.APIKey,
		baseURL:     base,
		concurrency: cfg.Concurrency,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithRateLimit(cfg.RateLimit, cfg.Burst),
		),
		now: time.Now,
	}
}

func (c *Client) Name() string { return Name }

// quoteResponse is the /api/v1/quote payload.
type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

// FetchQuotes implements drepo.QuoteProvider.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	res := batch.FetchAll(ctx, symbols, 1, c.concurrency, func(ctx context.Context, chunk []string) ([]models.PartialQuote, error) {
		q, ok, err := c.fetchOne(ctx, chunk[0])
		if err != nil || !ok {
			return nil, err
		}
		return []models.PartialQuote{q}, nil
	})
	return res.Items, res.Err()
}

func (c *Client) fetchOne(ctx context.Context, symbol string) (models.PartialQuote, bool, error) {
	var raw quoteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/api/v1/quote",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"token":  {c.apiKey},
		},
	}, &raw)
	if err != nil {
		return models.PartialQuote{}, false, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}
	q, ok := normalize(symbol, raw, c.now())
	return q, ok, nil
}

// normalize maps a quote payload. Finnhub answers unknown symbols with an
// all-zero body, which is reported as not found.
func normalize(symbol string, raw quoteResponse, now time.Time) (models.PartialQuote, bool) {
	if raw.Current == 0 && raw.PreviousClose == 0 {
		return models.PartialQuote{}, false
	}
	observed := now
	if raw.Timestamp > 0 {
		observed = time.Unix(raw.Timestamp, 0).UTC()
	}
	return models.PartialQuote{
		Symbol:         strings.ToUpper(symbol),
		Source:         Name,
		ObservedAt:     observed,
		Price:          models.FloatIf(raw.Current, raw.Current > 0),
		LastTradePrice: models.FloatIf(raw.Current, raw.Current > 0),
		PreviousClose:  models.FloatIf(raw.PreviousClose, raw.PreviousClose > 0),
		Change:         models.Float(raw.Change),
		ChangePercent:  models.Float(raw.ChangePercent),
		High:           models.FloatIf(raw.High, raw.High > 0),
		Low:            models.FloatIf(raw.Low, raw.Low > 0),
		Open:           models.FloatIf(raw.Open, raw.Open > 0),
	}, true
}
