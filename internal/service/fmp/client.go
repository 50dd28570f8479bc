package fmp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	drepo "MoverScan/internal/domain/repository"
	"MoverScan/pkg/config"
	xhttp "MoverScan/pkg/http"
	"MoverScan/pkg/util"
)

const (
	Name           = "fmp"
	defaultBaseURL = "https://financialmodelingprep.com"
)

var _ drepo.GainersProvider = (*Client)(nil)

// Client reads the Financial Modeling Prep top gainers list.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
	now     func() time.Time
}

// New creates an FMP gainers client.
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
		now: time.Now,
	}
}

func (c *Client) Name() string { return Name }

// number accepts both JSON numbers and display strings like "+12.5%".
type number struct {
	v  float64
	ok bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.v, n.ok = util.ParseNumber(s)
		return nil
	}
	if err := json.Unmarshal(b, &n.v); err != nil {
		return err
	}
	n.ok = true
	return nil
}

type gainer struct {
	Symbol            string `json:"symbol"`
	Name              string `json:"name"`
	Change            number `json:"change"`
	Price             number `json:"price"`
	ChangesPercentage number `json:"changesPercentage"`
}

// FetchGainers implements drepo.GainersProvider. Rows below minPercent are
// dropped here to keep the list short.
func (c *Client) FetchGainers(ctx context.Context, minPercent float64) ([]models.PartialQuote, error) {
	var raw []gainer
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/api/v3/stock_market/gainers",
		QueryParams: map[string][]string{"apikey": {c.apiKey}},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fmp gainers: %w", err)
	}

	now := c.now()
	out := make([]models.PartialQuote, 0, len(raw))
	for _, g := range raw {
		q, ok := normalize(g, now)
		if !ok {
			continue
		}
		if *q.ChangePercent < minPercent {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// normalize maps a gainers row. The list carries no volume or range data.
func normalize(g gainer, now time.Time) (models.PartialQuote, bool) {
	if g.Symbol == "" || !g.Price.ok || g.Price.v <= 0 || !g.ChangesPercentage.ok {
		return models.PartialQuote{}, false
	}
	q := models.PartialQuote{
		Symbol:         strings.ToUpper(g.Symbol),
		DisplayName:    g.Name,
		Source:         Name,
		ObservedAt:     now,
		Price:          models.Float(g.Price.v),
		LastTradePrice: models.Float(g.Price.v),
		ChangePercent:  models.Float(g.ChangesPercentage.v),
		Change:         models.FloatIf(g.Change.v, g.Change.ok),
	}
	if g.Change.ok && g.Price.v-g.Change.v > 0 {
		q.PreviousClose = models.Float(g.Price.v - g.Change.v)
	}
	return q, true
}
