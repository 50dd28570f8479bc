package alpaca

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"golang.org/x/time/rate"

	"MoverScan/internal/domain/models"
	drepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/batch"
	"MoverScan/pkg/config"
)

const (
	Name             = "alpaca"
	defaultChunkSize = 200
)

var (
	_ drepo.QuoteProvider  = (*Client)(nil)
	_ drepo.CandleProvider = (*Client)(nil)
)

// marketData is the subset of *marketdata.Client used here.
type marketData interface {
	GetSnapshots(symbols []string, req marketdata.GetSnapshotRequest) (map[string]*marketdata.Snapshot, error)
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// Client serves snapshots and bars from the Alpaca market data API.
type Client struct {
	md          marketData
	feed        string
	chunkSize   int
	concurrency int
	limiter     *rate.Limiter
	now         func() time.Time
}

// New creates an Alpaca market data client.
func New(cfg config.ProviderConfig) *Client {
	opts := marketdata.ClientOpts{
		APIKey:     cfg.APIKey,
		APISecret:  cfg.APISecret,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		opts.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return newClient(marketdata.NewClient(opts), cfg)
}

func newClient(md marketData, cfg config.ProviderConfig) *Client {
	feed := cfg.Feed
	if feed == "" {
		feed = "iex"
	}
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	c := &Client{
		md:          md,
		feed:        feed,
		chunkSize:   chunk,
		concurrency: cfg.Concurrency,
		now:         time.Now,
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.Burst, 1))
	}
	return c
}

func (c *Client) Name() string { return Name }

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}

// FetchQuotes implements drepo.QuoteProvider using snapshots.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	res := batch.FetchAll(ctx, symbols, c.chunkSize, c.concurrency, c.fetchSnapshots)
	return res.Items, res.Err()
}

func (c *Client) fetchSnapshots(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	snaps, err := batch.Await(ctx, func() (map[string]*marketdata.Snapshot, error) {
		return c.md.GetSnapshots(symbols, marketdata.GetSnapshotRequest{Feed: marketdata.Feed(c.feed)})
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca snapshots: %w", err)
	}

	now := c.now()
	out := make([]models.PartialQuote, 0, len(snaps))
	// keep request order
	for _, sym := range symbols {
		if q, ok := normalizeSnapshot(sym, snaps[sym], now); ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// FetchCandles implements drepo.CandleProvider using historical bars.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf drepo.Timeframe, from, to time.Time) ([]models.Candle, error) {
	frame, ok := timeFrame(tf)
	if !ok {
		return nil, fmt.Errorf("alpaca: unsupported timeframe %s", tf)
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	bars, err := batch.Await(ctx, func() ([]marketdata.Bar, error) {
		return c.md.GetBars(strings.ToUpper(symbol), marketdata.GetBarsRequest{
			TimeFrame: frame,
			Start:     from,
			End:       to,
			Feed:      marketdata.Feed(c.feed),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}

	out := make([]models.Candle, 0, len(bars))
	for _, b := range bars {
		out = append(out, models.Candle{
			Time:   b.Timestamp.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	return out, nil
}

func timeFrame(tf drepo.Timeframe) (marketdata.TimeFrame, bool) {
	switch tf {
	case drepo.TF1m:
		return marketdata.OneMin, true
	case drepo.TF5m:
		return marketdata.NewTimeFrame(5, marketdata.Min), true
	case drepo.TF15m:
		return marketdata.NewTimeFrame(15, marketdata.Min), true
	case drepo.TF1h:
		return marketdata.OneHour, true
	case drepo.TF1d:
		return marketdata.OneDay, true
	default:
		return marketdata.TimeFrame{}, false
	}
}
