package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/middleware"
	"MoverScan/internal/services/session"
	"MoverScan/internal/services/waterfall"
	applogger "MoverScan/pkg/logger"
	"MoverScan/pkg/metrics"
	"MoverScan/pkg/util"
)

// MoversConfig wires the provider chains a scan walks through.
type MoversConfig struct {
	// Chains lists quote providers per session in fallback order.
	Chains map[models.Session][]*middleware.GuardedQuotes
	// Gainers is tried after every chain tier came back empty. Optional.
	Gainers *middleware.GuardedGainers
	Plans   map[models.Session]waterfall.Plan
	// Universe is scanned when the caller names no symbols.
	Universe   []string
	MaxResults int
}

// MoversUseCase runs the session-aware movers scan.
type MoversUseCase struct {
	cfg       MoversConfig
	publisher domrepo.EventPublisher
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	now       func() time.Time
}

func NewMoversUseCase(cfg MoversConfig, publisher domrepo.EventPublisher, m domrepo.Metrics, logger *applogger.Logger) *MoversUseCase {
	if cfg.Plans == nil {
		cfg.Plans = waterfall.DefaultPlans()
	}
	if m == nil {
		m = metrics.Nop{}
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &MoversUseCase{
		cfg:       cfg,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the wall clock used for session classification.
func (uc *MoversUseCase) WithClock(now func() time.Time) *MoversUseCase {
	uc.now = now
	return uc
}

type ScanParams struct {
	Symbols    []string
	MinPercent float64
	Limit      int
	IncludeAll bool
}

// ParseSymbols splits a comma separated list, upper-cases it and drops
// blanks and repeats.
func ParseSymbols(raw string) []string {
	return util.SplitSymbols(raw)
}

func normalizeSymbols(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Scan classifies the session, walks the provider chain until one tier
// returns data, resolves every record through the session plan and keeps
// the records whose move reaches the threshold.
func (uc *MoversUseCase) Scan(ctx context.Context, p ScanParams) (*models.MoversResult, error) {
	start := time.Now()

	explicit := len(p.Symbols) > 0
	symbols := normalizeSymbols(p.Symbols)
	if !explicit {
		symbols = normalizeSymbols(uc.cfg.Universe)
	}
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	limit := p.Limit
	if uc.cfg.MaxResults > 0 && (limit <= 0 || limit > uc.cfg.MaxResults) {
		limit = uc.cfg.MaxResults
	}

	observed := uc.now()
	sess := session.Classify(observed)

	res := &models.MoversResult{
		RunID:      uuid.NewString(),
		Session:    sess,
		ObservedAt: observed.UTC(),
		Threshold:  p.MinPercent,
		Movers:     []models.Quote{},
		Attempts:   []models.ProviderAttempt{},
	}

	var records []models.PartialQuote
	for i, g := range uc.cfg.Chains[sess] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, attempt := g.Quotes(ctx, symbols)
		res.Attempts = append(res.Attempts, attempt)
		if len(recs) == 0 {
			continue
		}
		records = recs
		res.Provider = g.Name()
		if i > 0 {
			uc.metrics.RecordFallback(string(sess), g.Name())
		}
		break
	}

	if len(records) == 0 && uc.cfg.Gainers != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, attempt := uc.cfg.Gainers.Gainers(ctx, p.MinPercent)
		res.Attempts = append(res.Attempts, attempt)
		if explicit {
			recs = restrict(recs, symbols)
		}
		if len(recs) > 0 {
			records = recs
			res.Provider = uc.cfg.Gainers.Name()
			uc.metrics.RecordFallback(string(sess), uc.cfg.Gainers.Name())
		}
	}
	res.Exhausted = len(records) == 0

	plan := uc.cfg.Plans[sess]
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		rec := &records[i]
		sym := strings.ToUpper(strings.TrimSpace(rec.Symbol))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}

		q := resolveQuote(rec, plan, p.MinPercent)
		q.Symbol = sym
		q.Session = sess
		q.ObservedAt = res.ObservedAt
		if !p.IncludeAll && !q.Triggered {
			continue
		}
		res.Movers = append(res.Movers, q)
	}

	sort.SliceStable(res.Movers, func(i, j int) bool {
		return math.Abs(res.Movers[i].ChangePercent) > math.Abs(res.Movers[j].ChangePercent)
	})
	if limit > 0 && len(res.Movers) > limit {
		res.Movers = res.Movers[:limit]
	}

	uc.metrics.RecordMovers(string(sess), len(res.Movers))
	uc.metrics.RecordLatency("movers", time.Since(start).Seconds())
	uc.logger.Info("movers scan complete",
		applogger.String("run_id", res.RunID),
		applogger.String("session", string(sess)),
		applogger.String("provider", res.Provider),
		applogger.Int("symbols", len(symbols)),
		applogger.Int("movers", len(res.Movers)),
		applogger.Bool("exhausted", res.Exhausted),
	)

	if uc.publisher != nil {
		if err := uc.publisher.PublishMovers(ctx, res); err != nil {
			uc.metrics.RecordError("publish")
			uc.logger.Warn("publish movers failed", applogger.String("run_id", res.RunID), applogger.Error(err))
		}
	}
	return res, nil
}

func restrict(recs []models.PartialQuote, symbols []string) []models.PartialQuote {
	allowed := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		allowed[s] = struct{}{}
	}
	out := recs[:0]
	for _, r := range recs {
		if _, ok := allowed[strings.ToUpper(r.Symbol)]; ok {
			out = append(out, r)
		}
	}
	return out
}

// resolveQuote collapses a provider record into the canonical quote. The
// percent move is recomputed from price and previous close whenever the close
// is known, and triggered always follows the final percent.
func resolveQuote(p *models.PartialQuote, plan waterfall.Plan, threshold float64) models.Quote {
	price := plan.Price.Resolve(p, 0)
	prev := plan.PreviousClose.Resolve(p, 0)
	change := plan.Change.Resolve(p, 0)
	pct := plan.ChangePercent.Resolve(p, 0)
	if prev > 0 && price > 0 {
		change = price - prev
		pct = change / prev * 100
	}

	volume := plan.Volume.Resolve(p, 0)
	avg := waterfall.Resolve(0, p.AverageVolume)
	ratio := 1.0
	if avg > 0 {
		ratio = volume / avg
	}

	name := p.DisplayName
	if name == "" {
		name = p.Symbol
	}
	return models.Quote{
		Symbol:        p.Symbol,
		DisplayName:   name,
		Price:         price,
		Change:        change,
		ChangePercent: pct,
		Volume:        volume,
		AverageVolume: avg,
		VolumeRatio:   ratio,
		High:          waterfall.Resolve(0, p.High),
		Low:           waterfall.Resolve(0, p.Low),
		Open:          waterfall.Resolve(0, p.Open),
		PreviousClose: prev,
		Triggered:     math.Abs(pct) >= threshold,
		Source:        p.Source,
	}
}
