package repository

import (
	"context"
	"time"

	"MoverScan/internal/domain/models"
)

// QuoteProvider returns snapshot quotes for a set of symbols. It may return
// fewer records than symbols requested; a missing symbol means unknown.
type QuoteProvider interface {
	Name() string
	FetchQuotes(ctx context.Context, symbols []string) ([]models.PartialQuote, error)
}

// CandleProvider returns candles for [from, to] ascending by time.
type CandleProvider interface {
	Name() string
	FetchCandles(ctx context.Context, symbol string, tf Timeframe, from, to time.Time) ([]models.Candle, error)
}

// GainersProvider is a coarse list of the day's top gainers. Records usually
// carry only symbol, price and percent change.
type GainersProvider interface {
	Name() string
	FetchGainers(ctx context.Context, minPercent float64) ([]models.PartialQuote, error)
}

// NewsFeed returns headlines matching a query term.
type NewsFeed interface {
	Name() string
	FetchNews(ctx context.Context, query string) ([]models.NewsItem, error)
}

// EventPublisher emits computed results to downstream consumers.
type EventPublisher interface {
	PublishMovers(ctx context.Context, res *models.MoversResult) error
	PublishNews(ctx context.Context, res *models.NewsResult) error
	Close() error
}

type Metrics interface {
	RecordProviderAttempt(kind, provider, result string, seconds float64)
	RecordFallback(session, provider string)
	RecordMovers(session string, n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
