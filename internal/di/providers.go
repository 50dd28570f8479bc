package di

import (
	"fmt"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/domain/repository"
	"MoverScan/internal/handler/api"
	mid "MoverScan/internal/middleware"
	internalrepo "MoverScan/internal/repository"
	"MoverScan/internal/service/alpaca"
	"MoverScan/internal/service/alphavantage"
	"MoverScan/internal/service/finnhub"
	"MoverScan/internal/service/fmp"
	"MoverScan/internal/service/nasdaq"
	"MoverScan/internal/service/ratelimit"
	"MoverScan/internal/service/rss"
	"MoverScan/internal/service/yahoo"
	"MoverScan/internal/services/backtest"
	"MoverScan/internal/services/waterfall"
	"MoverScan/internal/usecase"
	"MoverScan/pkg/cache"
	pkgch "MoverScan/pkg/clickhouse"
	"MoverScan/pkg/config"
	httpmw "MoverScan/pkg/http/middleware"
	pkgkafka "MoverScan/pkg/kafka"
	applogger "MoverScan/pkg/logger"
	"MoverScan/pkg/metrics"
	"MoverScan/pkg/server"
)

// Adapters holds one client per enabled upstream. Disabled providers are nil.
type Adapters struct {
	Alpaca       *alpaca.Client
	Yahoo        *yahoo.Client
	Finnhub      *finnhub.Client
	Nasdaq       *nasdaq.Client
	FMP          *fmp.Client
	AlphaVantage *alphavantage.Client
	Warehouse    *internalrepo.WarehouseCandles
}

// QuoteChains maps each session to its guarded quote providers in order.
type QuoteChains map[models.Session][]*mid.GuardedQuotes

// ProvideLogger builds the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New()
}

// ProvideCache builds the optional provider response cache. It returns nil
// for the "none" backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	r := cfg.Cache.Redis
	c, err := cache.Open(cache.Options{
		Backend:    cfg.Cache.Backend,
		MemorySize: cfg.Cache.MemorySize,
		L1TTL:      cfg.Cache.TTL,
		Redis: cache.RedisOptions{
			Host:     r.Host,
			Port:     r.Port,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return c, nil
}

// ProvideClickHouseClient connects to ClickHouse when the candle warehouse
// is enabled, and returns nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Providers.Warehouse.Enabled {
		return nil, nil
	}
	c := cfg.ClickHouse
	client, err := pkgch.NewClient(pkgch.Options{
		Host:             c.Host,
		Port:             c.Port,
		Database:         c.Database,
		User:             c.User,
		Password:         c.Password,
		UseHTTP:          c.UseHTTP,
		DialTimeout:      c.DialTimeout,
		ReadTimeout:      c.ReadTimeout,
		MaxExecutionTime: c.MaxExecutionTime,
	})
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideEventPublisher publishes results to Kafka when enabled.
func ProvideEventPublisher(cfg *config.Config) (repository.EventPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}
	kc := cfg.Kafka
	producer, err := pkgkafka.NewProducer(pkgkafka.WriterConfig{
		Brokers:      kc.Brokers,
		RequiredAcks: kc.RequiredAcks,
		Compression:  kc.Compression,
		MaxAttempts:  kc.Producer.MaxAttempts,
		WriteTimeout: kc.Producer.WriteTimeout,
		ReadTimeout:  kc.Producer.ReadTimeout,
		BatchSize:    kc.Producer.BatchSize,
		BatchBytes:   kc.Producer.BatchBytes,
		Linger:       kc.Producer.Linger,
		Async:        kc.Producer.Async,
		KeyOrdered:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaEventPublisher(producer, cfg.Kafka.Topics.Movers, cfg.Kafka.Topics.News), nil
}

// ProvideAdapters constructs a client for every enabled provider.
func ProvideAdapters(cfg *config.Config, ch *pkgch.Client, logger *applogger.Logger) (*Adapters, error) {
	p := cfg.Providers
	a := &Adapters{}
	if p.Alpaca.Enabled {
		a.Alpaca = alpaca.New(p.Alpaca)
	}
	if p.Yahoo.Enabled {
		a.Yahoo = yahoo.New(p.Yahoo)
	}
	if p.Finnhub.Enabled {
		a.Finnhub = finnhub.New(p.Finnhub)
	}
	if p.Nasdaq.Enabled {
		a.Nasdaq = nasdaq.New(p.Nasdaq)
	}
	if p.FMP.Enabled {
		a.FMP = fmp.New(p.FMP)
	}
	if p.AlphaVantage.Enabled {
		a.AlphaVantage = alphavantage.New(p.AlphaVantage)
	}
	if p.Warehouse.Enabled && ch != nil {
		w, err := internalrepo.NewWarehouseCandles(ch, p.Warehouse.Table, logger)
		if err != nil {
			return nil, err
		}
		a.Warehouse = w
	}
	return a, nil
}

func guardOptions(pc config.ProviderConfig, m repository.Metrics, l *applogger.Logger) mid.GuardOptions {
	return mid.GuardOptions{Timeout: pc.Timeout, Metrics: m, Logger: l}
}

// ProvideQuoteChains resolves the configured session orders into guarded,
// optionally cached, quote providers.
func ProvideQuoteChains(cfg *config.Config, a *Adapters, c cache.Service, m repository.Metrics, l *applogger.Logger) (QuoteChains, error) {
	type entry struct {
		p  repository.QuoteProvider
		pc config.ProviderConfig
	}
	known := map[string]entry{}
	if a.Alpaca != nil {
		known[config.ProviderAlpaca] = entry{a.Alpaca, cfg.Providers.Alpaca}
	}
	if a.Yahoo != nil {
		known[config.ProviderYahoo] = entry{a.Yahoo, cfg.Providers.Yahoo}
	}
	if a.Finnhub != nil {
		known[config.ProviderFinnhub] = entry{a.Finnhub, cfg.Providers.Finnhub}
	}
	if a.Nasdaq != nil {
		known[config.ProviderNasdaq] = entry{a.Nasdaq, cfg.Providers.Nasdaq}
	}

	guarded := make(map[string]*mid.GuardedQuotes, len(known))
	for name, e := range known {
		var p repository.QuoteProvider = e.p
		if c != nil {
			p = mid.CacheQuotes(p, c, cfg.Cache.TTL, l)
		}
		guarded[name] = mid.GuardQuotes(p, guardOptions(e.pc, m, l))
	}

	chains := make(QuoteChains, len(models.Sessions))
	for _, s := range models.Sessions {
		for _, name := range cfg.Scanner.Providers[string(s)] {
			g, ok := guarded[name]
			if !ok {
				return nil, fmt.Errorf("scanner.providers.%s: provider %q not available", s, name)
			}
			chains[s] = append(chains[s], g)
		}
	}
	return chains, nil
}

// ProvideGainers returns the configured last-tier gainers provider, or nil.
func ProvideGainers(cfg *config.Config, a *Adapters, m repository.Metrics, l *applogger.Logger) *mid.GuardedGainers {
	if cfg.Scanner.GainersFallback != config.ProviderFMP || a.FMP == nil {
		return nil
	}
	return mid.GuardGainers(a.FMP, guardOptions(cfg.Providers.FMP, m, l))
}

// buildPlans applies per-session waterfall overrides on top of the defaults.
// An omitted list keeps the default order for that field.
func buildPlans(overrides map[string]config.WaterfallConfig) (map[models.Session]waterfall.Plan, error) {
	plans := waterfall.DefaultPlans()
	for name, wc := range overrides {
		s := models.Session(name)
		plan, ok := plans[s]
		if !ok {
			return nil, fmt.Errorf("scanner.waterfall: unknown session %q", name)
		}
		for _, f := range []struct {
			field string
			raw   []string
			dst   *waterfall.Order
		}{
			{"price", wc.Price, &plan.Price},
			{"previous_close", wc.PreviousClose, &plan.PreviousClose},
			{"change", wc.Change, &plan.Change},
			{"change_percent", wc.ChangePercent, &plan.ChangePercent},
			{"volume", wc.Volume, &plan.Volume},
		} {
			if len(f.raw) == 0 {
				continue
			}
			o, err := waterfall.ParseOrder(f.raw)
			if err != nil {
				return nil, fmt.Errorf("scanner.waterfall.%s.%s: %w", name, f.field, err)
			}
			*f.dst = o
		}
		plans[s] = plan
	}
	return plans, nil
}

// ProvideMoversUseCase assembles the movers pipeline.
func ProvideMoversUseCase(
	cfg *config.Config,
	chains QuoteChains,
	gainers *mid.GuardedGainers,
	pub repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) (*usecase.MoversUseCase, error) {
	plans, err := buildPlans(cfg.Scanner.Waterfall)
	if err != nil {
		return nil, err
	}
	return usecase.NewMoversUseCase(usecase.MoversConfig{
		Chains:     chains,
		Gainers:    gainers,
		Plans:      plans,
		Universe:   cfg.Scanner.Symbols,
		MaxResults: cfg.Scanner.MaxResults,
	}, pub, m, l), nil
}

// ProvideCandleProviders resolves candles.providers into guarded providers.
func ProvideCandleProviders(cfg *config.Config, a *Adapters, m repository.Metrics, l *applogger.Logger) ([]*mid.GuardedCandles, error) {
	out := make([]*mid.GuardedCandles, 0, len(cfg.Candles.Providers))
	for _, name := range cfg.Candles.Providers {
		var (
			p  repository.CandleProvider
			pc config.ProviderConfig
		)
		switch {
		case name == config.ProviderAlpaca && a.Alpaca != nil:
			p, pc = a.Alpaca, cfg.Providers.Alpaca
		case name == config.ProviderYahoo && a.Yahoo != nil:
			p, pc = a.Yahoo, cfg.Providers.Yahoo
		case name == config.ProviderAlphaVantage && a.AlphaVantage != nil:
			p, pc = a.AlphaVantage, cfg.Providers.AlphaVantage
		case name == config.ProviderWarehouse && a.Warehouse != nil:
			p = a.Warehouse
			pc.Timeout = cfg.ClickHouse.ReadTimeout
		default:
			return nil, fmt.Errorf("candles.providers: provider %q not available", name)
		}
		out = append(out, mid.GuardCandles(p, guardOptions(pc, m, l)))
	}
	return out, nil
}

// ProvideNewsFeeds builds the configured RSS feeds in merge order.
func ProvideNewsFeeds(cfg *config.Config, m repository.Metrics, l *applogger.Logger) []*mid.GuardedNews {
	opts := mid.GuardOptions{Timeout: cfg.News.Timeout, Metrics: m, Logger: l}
	out := make([]*mid.GuardedNews, 0, len(cfg.News.Feeds))
	for _, name := range cfg.News.Feeds {
		switch name {
		case config.FeedGoogle:
			out = append(out, mid.GuardNews(rss.NewGoogle(cfg.News.Google.BaseURL, cfg.News.Timeout), opts))
		case config.FeedYahoo:
			out = append(out, mid.GuardNews(rss.NewYahoo(cfg.News.Yahoo.BaseURL, cfg.News.Timeout), opts))
		}
	}
	return out
}

func ProvideNewsUseCase(feeds []*mid.GuardedNews, pub repository.EventPublisher, m repository.Metrics, l *applogger.Logger) *usecase.NewsUseCase {
	return usecase.NewNewsUseCase(feeds, pub, m, l)
}

func ProvideCandlesUseCase(cfg *config.Config, providers []*mid.GuardedCandles, l *applogger.Logger) *usecase.CandlesUseCase {
	return usecase.NewCandlesUseCase(providers, cfg.Candles.MinCandles, l)
}

func ProvideAnalysisUseCase(candles *usecase.CandlesUseCase) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(candles)
}

func ProvideBacktestUseCase(cfg *config.Config, candles *usecase.CandlesUseCase) *usecase.BacktestUseCase {
	return usecase.NewBacktestUseCase(candles, backtest.New(cfg.Backtest), cfg.Backtest.Strategies)
}

func ProvideSessionUseCase() *usecase.SessionUseCase {
	return usecase.NewSessionUseCase()
}

// ProvideMarketHandler builds the /api handler with per-client rate limiting.
func ProvideMarketHandler(
	cfg *config.Config,
	l *applogger.Logger,
	movers *usecase.MoversUseCase,
	news *usecase.NewsUseCase,
	candles *usecase.CandlesUseCase,
	analysis *usecase.AnalysisUseCase,
	bt *usecase.BacktestUseCase,
	sess *usecase.SessionUseCase,
) *api.MarketHandler {
	h := api.NewMarketHandler(l, movers, news, candles, analysis, bt, sess).
		WithTimeouts(cfg.Scanner.Timeout, cfg.Candles.Timeout)
	rl := cfg.Server.RateLimit
	h.Use(httpmw.RateLimit(ratelimit.New(), rl.Capacity, rl.RefillPerSec))
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.MarketHandler,
	pub repository.EventPublisher,
	ch *pkgch.Client,
	c cache.Service,
) *server.App {
	return server.New(cfg, l, h, pub, ch, c)
}
