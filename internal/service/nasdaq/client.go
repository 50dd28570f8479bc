package nasdaq

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
	"MoverScan/pkg/util"
)

const (
	Name             = "nasdaq"
	defaultBaseURL   = "https://api.nasdaq.com"
	defaultChunkSize = 20
)

var _ drepo.QuoteProvider = (*Client)(nil)

// Client reads the Nasdaq watchlist API, which reports pre-market and
// after-hours prints. The API rejects non-browser clients.
type Client struct {
	baseURL     string
	chunkSize   int
	concurrency int
	http        *xhttp.Client
	now         func() time.Time
}

// New creates a Nasdaq watchlist client.
func New(cfg config.ProviderConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	chunk := cfg.ChunkSize
	if chunk <= 0 || chunk > defaultChunkSize {
		chunk = defaultChunkSize
	}
	return &Client{
		baseURL:     base,
		chunkSize:   chunk,
		concurrency: cfg.Concurrency,
		http: xhttp.NewClient(
			xhttp.WithTimeout(cfg.Timeout),
			xhttp.WithRateLimit(cfg.RateLimit, cfg.Burst),
			xhttp.WithBrowserHeaders(),
			xhttp.WithHeaders(map[string]string{
				"Origin":  "https://www.nasdaq.com",
				"Referer": "https://www.nasdaq.com/",
			}),
		),
		now: time.Now,
	}
}

func (c *Client) Name() string { return Name }

type watchlistResponse struct {
	Data   []watchlistRow `json:"data"`
	Status struct {
		RCode        int `json:"rCode"`
		BCodeMessage []struct {
			Code         int    `json:"code"`
			ErrorMessage string `json:"errorMessage"`
		} `json:"bCodeMessage"`
	} `json:"status"`
}

type watchlistRow struct {
	Symbol           string `json:"symbol"`
	CompanyName      string `json:"companyName"`
	LastSalePrice    string `json:"lastSalePrice"`
	NetChange        string `json:"netChange"`
	PercentageChange string `json:"percentageChange"`
	Volume           string `json:"volume"`
	MarketStatus     string `json:"marketStatus"`
}

// FetchQuotes implements drepo.QuoteProvider.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	res := batch.FetchAll(ctx, symbols, c.chunkSize, c.concurrency, c.fetchChunk)
	return res.Items, res.Err()
}

func (c *Client) fetchChunk(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	params := make([]string, 0, len(symbols))
	for _, s := range symbols {
		params = append(params, strings.ToLower(s)+"|stocks")
	}

	var raw watchlistResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/api/quote/watchlist",
		QueryParams: map[string][]string{"symbol": params},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("nasdaq watchlist: %w", err)
	}
	if raw.Status.RCode != 0 && raw.Status.RCode != 200 {
		msg := ""
		if len(raw.Status.BCodeMessage) > 0 {
			msg = raw.Status.BCodeMessage[0].ErrorMessage
		}
		return nil, fmt.Errorf("nasdaq watchlist: rCode %d %s", raw.Status.RCode, msg)
	}

	now := c.now()
	out := make([]models.PartialQuote, 0, len(raw.Data))
	for _, row := range raw.Data {
		if q, ok := normalize(row, now); ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// normalize maps one watchlist row. Outside regular hours the row reports the
// extended-hours print and its change; after hours the change is measured
// from today's regular close.
func normalize(row watchlistRow, now time.Time) (models.PartialQuote, bool) {
	price, ok := util.ParseNumber(row.LastSalePrice)
	if row.Symbol == "" || !ok || price <= 0 {
		return models.PartialQuote{}, false
	}
	change, hasChange := util.ParseNumber(row.NetChange)
	pct, hasPct := util.ParseNumber(row.PercentageChange)
	volume, hasVolume := util.ParseNumber(row.Volume)

	q := models.PartialQuote{
		Symbol:         strings.ToUpper(row.Symbol),
		DisplayName:    row.CompanyName,
		Source:         Name,
		ObservedAt:     now,
		LastTradePrice: models.Float(price),
	}

	status := strings.ToLower(row.MarketStatus)
	switch {
	case strings.Contains(status, "pre"):
		q.ExtendedPrice = models.Float(price)
		q.ExtendedChange = models.FloatIf(change, hasChange)
		q.ExtendedChangePercent = models.FloatIf(pct, hasPct)
		q.ExtendedVolume = models.FloatIf(volume, hasVolume)
		if hasChange {
			q.PreviousClose = models.FloatIf(price-change, price-change > 0)
		}
	case strings.Contains(status, "after"), strings.Contains(status, "post"):
		q.ExtendedPrice = models.Float(price)
		q.ExtendedChange = models.FloatIf(change, hasChange)
		q.ExtendedChangePercent = models.FloatIf(pct, hasPct)
		q.ExtendedVolume = models.FloatIf(volume, hasVolume)
		if hasChange {
			q.RegularClose = models.FloatIf(price-change, price-change > 0)
		}
	default:
		q.Price = models.Float(price)
		q.Change = models.FloatIf(change, hasChange)
		q.ChangePercent = models.FloatIf(pct, hasPct)
		q.Volume = models.FloatIf(volume, hasVolume)
		if hasChange {
			q.PreviousClose = models.FloatIf(price-change, price-change > 0)
		}
	}
	return q, true
}
