package yahoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"

	"MoverScan/internal/domain/models"
	drepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/batch"
	"MoverScan/pkg/config"
)

const (
	Name             = "yahoo"
	defaultChunkSize = 50
)

var (
	_ drepo.QuoteProvider  = (*Client)(nil)
	_ drepo.CandleProvider = (*Client)(nil)
)

// Client serves quotes and chart candles through finance-go. finance-go calls
// take no context, so each one is raced against ctx.
type Client struct {
	chunkSize   int
	concurrency int
	listQuotes  func(symbols []string) ([]*finance.Quote, error)
	chartBars   func(p *chart.Params) ([]*finance.ChartBar, error)
	now         func() time.Time
}

// New creates a Yahoo Finance client.
func New(cfg config.ProviderConfig) *Client {
	chunk := cfg.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	return &Client{
		chunkSize:   chunk,
		concurrency: cfg.Concurrency,
		listQuotes:  listQuotes,
		chartBars:   chartBars,
		now:         time.Now,
	}
}

func (c *Client) Name() string { return Name }

func listQuotes(symbols []string) ([]*finance.Quote, error) {
	var out []*finance.Quote
	iter := quote.List(symbols)
	for iter.Next() {
		out = append(out, iter.Quote())
	}
	return out, iter.Err()
}

func chartBars(p *chart.Params) ([]*finance.ChartBar, error) {
	var out []*finance.ChartBar
	iter := chart.Get(p)
	for iter.Next() {
		out = append(out, iter.Bar())
	}
	return out, iter.Err()
}

// FetchQuotes implements drepo.QuoteProvider.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	res := batch.FetchAll(ctx, symbols, c.chunkSize, c.concurrency, func(ctx context.Context, chunk []string) ([]models.PartialQuote, error) {
		raw, err := batch.Await(ctx, func() ([]*finance.Quote, error) { return c.listQuotes(chunk) })
		if err != nil {
			return nil, fmt.Errorf("yahoo quotes: %w", err)
		}
		now := c.now()
		out := make([]models.PartialQuote, 0, len(raw))
		for _, q := range raw {
			if pq, ok := normalizeQuote(q, now); ok {
				out = append(out, pq)
			}
		}
		return out, nil
	})
	return res.Items, res.Err()
}

var intervals = map[drepo.Timeframe]datetime.Interval{
	drepo.TF1m:  datetime.OneMin,
	drepo.TF5m:  datetime.FiveMins,
	drepo.TF15m: datetime.FifteenMins,
	drepo.TF1h:  datetime.OneHour,
	drepo.TF1d:  datetime.OneDay,
}

// FetchCandles implements drepo.CandleProvider.
func (c *Client) FetchCandles(ctx context.Context, symbol string, tf drepo.Timeframe, from, to time.Time) ([]models.Candle, error) {
	interval, ok := intervals[tf]
	if !ok {
		return nil, fmt.Errorf("yahoo: unsupported timeframe %s", tf)
	}
	params := &chart.Params{
		Symbol:   strings.ToUpper(symbol),
		Start:    datetime.New(&from),
		End:      datetime.New(&to),
		Interval: interval,
	}
	bars, err := batch.Await(ctx, func() ([]*finance.ChartBar, error) { return c.chartBars(params) })
	if err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	out := make([]models.Candle, 0, len(bars))
	for _, b := range bars {
		if candle, ok := normalizeBar(b); ok {
			out = append(out, candle)
		}
	}
	return out, nil
}

func normalizeBar(b *finance.ChartBar) (models.Candle, bool) {
	if b == nil {
		return models.Candle{}, false
	}
	o, _ := b.Open.Float64()
	h, _ := b.High.Float64()
	l, _ := b.Low.Float64()
	cl, _ := b.Close.Float64()
	// gaps come back as zero-valued bars
	if cl <= 0 {
		return models.Candle{}, false
	}
	return models.Candle{
		Time:   int64(b.Timestamp),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  cl,
		Volume: float64(b.Volume),
	}, true
}

// normalizeQuote maps a finance-go quote. Pre and post market fields are only
// populated while those sessions are active or recent.
func normalizeQuote(q *finance.Quote, now time.Time) (models.PartialQuote, bool) {
	if q == nil || q.Symbol == "" {
		return models.PartialQuote{}, false
	}
	name := q.ShortName
	if name == "" {
		name = q.Symbol
	}
	observed := now
	if q.RegularMarketTime > 0 {
		observed = time.Unix(int64(q.RegularMarketTime), 0).UTC()
	}

	pos := func(v float64) *float64 { return models.FloatIf(v, v > 0) }
	nz := func(v float64) *float64 { return models.FloatIf(v, v != 0) }

	pq := models.PartialQuote{
		Symbol:        strings.ToUpper(q.Symbol),
		DisplayName:   name,
		Source:        Name,
		ObservedAt:    observed,
		Price:         pos(q.RegularMarketPrice),
		PreviousClose: pos(q.RegularMarketPreviousClose),
		Change:        nz(q.RegularMarketChange),
		ChangePercent: nz(q.RegularMarketChangePercent),
		Volume:        pos(float64(q.RegularMarketVolume)),
		AverageVolume: pos(float64(q.AverageDailyVolume3Month)),
		High:          pos(q.RegularMarketDayHigh),
		Low:           pos(q.RegularMarketDayLow),
		Open:          pos(q.RegularMarketOpen),
	}

	switch strings.ToUpper(string(q.MarketState)) {
	case "PRE", "PREPRE":
		// Before the open the regular fields still describe the prior day:
		// its close is the base for the pre-market move.
		pq.PreviousClose = pos(q.RegularMarketPrice)
		pq.Change = nil
		pq.ChangePercent = nil
		pq.ExtendedPrice = pos(q.PreMarketPrice)
		pq.ExtendedChange = nz(q.PreMarketChange)
		pq.ExtendedChangePercent = nz(q.PreMarketChangePercent)
		pq.LastTradePrice = pos(q.PreMarketPrice)
		if q.PreMarketTime > 0 {
			pq.ObservedAt = time.Unix(int64(q.PreMarketTime), 0).UTC()
		}
	case "POST", "POSTPOST", "CLOSED":
		pq.RegularClose = pos(q.RegularMarketPrice)
		pq.ExtendedPrice = pos(q.PostMarketPrice)
		pq.ExtendedChange = nz(q.PostMarketChange)
		pq.ExtendedChangePercent = nz(q.PostMarketChangePercent)
		pq.LastTradePrice = pos(q.PostMarketPrice)
		if q.PostMarketTime > 0 {
			pq.ObservedAt = time.Unix(int64(q.PostMarketTime), 0).UTC()
		}
	default:
		pq.LastTradePrice = pos(q.RegularMarketPrice)
	}
	if pq.LastTradePrice == nil {
		pq.LastTradePrice = pq.Price
	}

	if pq.Price == nil && pq.ExtendedPrice == nil {
		return models.PartialQuote{}, false
	}
	return pq, true
}
