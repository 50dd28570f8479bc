package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/batch"
	applogger "MoverScan/pkg/logger"
)

// ErrPanic marks a provider call that panicked.
var ErrPanic = errors.New("provider panicked")

// Attempt results, also used as metric labels.
const (
	ResultOK      = "ok"
	ResultPartial = "partial"
	ResultEmpty   = "empty"
	ResultError   = "error"
	ResultTimeout = "timeout"
	ResultPanic   = "panic"
)

// Kinds of provider calls.
const (
	KindQuotes  = "quotes"
	KindGainers = "gainers"
	KindCandles = "candles"
	KindNews    = "news"
)

// DefaultTimeout bounds a provider call when none is configured.
const DefaultTimeout = 10 * time.Second

// GuardOptions configures the guard decorators.
type GuardOptions struct {
	Timeout time.Duration
	Metrics domrepo.Metrics
	Logger  *applogger.Logger
}

// guard runs call under its own timeout and converts errors, panics and
// timeouts into an attempt record. Records returned alongside an error are
// kept.
func guard[T any](ctx context.Context, kind, name string, opts GuardOptions, call func(ctx context.Context) ([]T, error)) ([]T, models.ProviderAttempt) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	records, err := batch.Await(cctx, func() (recs []T, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		return call(cctx)
	})
	elapsed := time.Since(start)

	result := classify(len(records), err)
	attempt := models.ProviderAttempt{
		Provider:   name,
		Records:    len(records),
		DurationMs: elapsed.Milliseconds(),
	}
	if err != nil {
		attempt.Error = err.Error()
	}
	if result == ResultError || result == ResultTimeout || result == ResultPanic {
		records = nil
		attempt.Records = 0
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordProviderAttempt(kind, name, result, elapsed.Seconds())
	}
	if opts.Logger != nil && err != nil {
		opts.Logger.Warn("provider call failed",
			applogger.String("kind", kind),
			applogger.String("provider", name),
			applogger.String("result", result),
			applogger.Duration("elapsed", elapsed),
			applogger.Error(err),
		)
	}
	return records, attempt
}

func classify(n int, err error) string {
	switch {
	case err == nil && n > 0:
		return ResultOK
	case err == nil:
		return ResultEmpty
	case n > 0:
		return ResultPartial
	case errors.Is(err, ErrPanic):
		return ResultPanic
	case errors.Is(err, context.DeadlineExceeded):
		return ResultTimeout
	default:
		return ResultError
	}
}

// GuardedQuotes is a QuoteProvider whose failures never escape.
type GuardedQuotes struct {
	inner domrepo.QuoteProvider
	opts  GuardOptions
}

// GuardQuotes decorates p.
func GuardQuotes(p domrepo.QuoteProvider, opts GuardOptions) *GuardedQuotes {
	return &GuardedQuotes{inner: p, opts: opts}
}

func (g *GuardedQuotes) Name() string { return g.inner.Name() }

// Quotes fetches symbols and reports how the call went.
func (g *GuardedQuotes) Quotes(ctx context.Context, symbols []string) ([]models.PartialQuote, models.ProviderAttempt) {
	return guard(ctx, KindQuotes, g.inner.Name(), g.opts, func(ctx context.Context) ([]models.PartialQuote, error) {
		return g.inner.FetchQuotes(ctx, symbols)
	})
}

// GuardedGainers is a GainersProvider whose failures never escape.
type GuardedGainers struct {
	inner domrepo.GainersProvider
	opts  GuardOptions
}

// GuardGainers decorates p.
func GuardGainers(p domrepo.GainersProvider, opts GuardOptions) *GuardedGainers {
	return &GuardedGainers{inner: p, opts: opts}
}

func (g *GuardedGainers) Name() string { return g.inner.Name() }

// Gainers fetches the gainers list.
func (g *GuardedGainers) Gainers(ctx context.Context, minPercent float64) ([]models.PartialQuote, models.ProviderAttempt) {
	return guard(ctx, KindGainers, g.inner.Name(), g.opts, func(ctx context.Context) ([]models.PartialQuote, error) {
		return g.inner.FetchGainers(ctx, minPercent)
	})
}

// GuardedCandles is a CandleProvider whose failures never escape.
type GuardedCandles struct {
	inner domrepo.CandleProvider
	opts  GuardOptions
}

// GuardCandles decorates p.
func GuardCandles(p domrepo.CandleProvider, opts GuardOptions) *GuardedCandles {
	return &GuardedCandles{inner: p, opts: opts}
}

func (g *GuardedCandles) Name() string { return g.inner.Name() }

// Candles fetches history for [from, to].
func (g *GuardedCandles) Candles(ctx context.Context, symbol string, tf domrepo.Timeframe, from, to time.Time) ([]models.Candle, models.ProviderAttempt) {
	return guard(ctx, KindCandles, g.inner.Name(), g.opts, func(ctx context.Context) ([]models.Candle, error) {
		return g.inner.FetchCandles(ctx, symbol, tf, from, to)
	})
}

// GuardedNews is a NewsFeed whose failures never escape.
type GuardedNews struct {
	inner domrepo.NewsFeed
	opts  GuardOptions
}

// GuardNews decorates f.
func GuardNews(f domrepo.NewsFeed, opts GuardOptions) *GuardedNews {
	return &GuardedNews{inner: f, opts: opts}
}

func (g *GuardedNews) Name() string { return g.inner.Name() }

// News fetches headlines for query.
func (g *GuardedNews) News(ctx context.Context, query string) ([]models.NewsItem, models.ProviderAttempt) {
	return guard(ctx, KindNews, g.inner.Name(), g.opts, func(ctx context.Context) ([]models.NewsItem, error) {
		return g.inner.FetchNews(ctx, query)
	})
}
