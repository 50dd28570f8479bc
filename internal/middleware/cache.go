package middleware

import (
	"context"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	"MoverScan/pkg/cache"
	applogger "MoverScan/pkg/logger"
)

// CachedQuotes serves recent per-symbol quotes from a cache and forwards only
// the misses to the wrapped provider. Cache failures degrade to a miss.
type CachedQuotes struct {
	inner  domrepo.QuoteProvider
	cache  cache.Service
	ttl    time.Duration
	logger *applogger.Logger
}

var _ domrepo.QuoteProvider = (*CachedQuotes)(nil)

// CacheQuotes decorates p with c.
func CacheQuotes(p domrepo.QuoteProvider, c cache.Service, ttl time.Duration, l *applogger.Logger) *CachedQuotes {
	if l == nil {
		l = applogger.Nop()
	}
	return &CachedQuotes{inner: p, cache: c, ttl: ttl, logger: l}
}

func (c *CachedQuotes) Name() string { return c.inner.Name() }

func (c *CachedQuotes) key(symbol string) string {
	return cache.Key("quotes", c.inner.Name(), strings.ToUpper(symbol))
}

// FetchQuotes implements domrepo.QuoteProvider.
func (c *CachedQuotes) FetchQuotes(ctx context.Context, symbols []string) ([]models.PartialQuote, error) {
	keys := make([]string, len(symbols))
	for i, s := range symbols {
		keys[i] = c.key(s)
	}

	hits, err := cache.MGetTyped[models.PartialQuote](ctx, c.cache, keys...)
	if err != nil {
		c.logger.Warn("quote cache read failed", applogger.String("provider", c.inner.Name()), applogger.Error(err))
		hits = nil
	}

	missing := make([]string, 0, len(symbols))
	for i, s := range symbols {
		if _, ok := hits[keys[i]]; !ok {
			missing = append(missing, s)
		}
	}

	var fresh []models.PartialQuote
	var fetchErr error
	if len(missing) > 0 {
		fresh, fetchErr = c.inner.FetchQuotes(ctx, missing)
		if len(fresh) > 0 {
			values := make(map[string]interface{}, len(fresh))
			for _, q := range fresh {
				values[c.key(q.Symbol)] = q
			}
			if err := c.cache.MSet(ctx, values, c.ttl); err != nil {
				c.logger.Warn("quote cache write failed", applogger.String("provider", c.inner.Name()), applogger.Error(err))
			}
		}
	}

	bySymbol := make(map[string]models.PartialQuote, len(hits)+len(fresh))
	for _, q := range hits {
		bySymbol[q.Symbol] = q
	}
	for _, q := range fresh {
		bySymbol[q.Symbol] = q
	}
	out := make([]models.PartialQuote, 0, len(bySymbol))
	for _, s := range symbols {
		if q, ok := bySymbol[strings.ToUpper(s)]; ok {
			out = append(out, q)
			delete(bySymbol, strings.ToUpper(s))
		}
	}
	return out, fetchErr
}
