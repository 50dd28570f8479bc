package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in fallback orders.
const (
	ProviderAlpaca       = "alpaca"
	ProviderYahoo        = "yahoo"
	ProviderFinnhub      = "finnhub"
	ProviderNasdaq       = "nasdaq"
	ProviderFMP          = "fmp"
	ProviderAlphaVantage = "alphavantage"
	ProviderWarehouse    = "warehouse"

	FeedGoogle = "google"
	FeedYahoo  = "yahoo"
)

// Provider call timeouts must stay inside this window.
const (
	MinProviderTimeout = 8 * time.Second
	MaxProviderTimeout = 15 * time.Second
)

// ProviderConfig is shared by every upstream adapter. RateLimit is requests
// per second; 0 disables limiting.
type ProviderConfig struct {
	Enabled     bool          `yaml:"enabled"`
	APIKey      string        `yaml:"api_key"`
	APISecret   string        `yaml:"api_secret"`
	BaseURL     string        `yaml:"base_url"`
	Feed        string        `yaml:"feed"`
	ChunkSize   int           `yaml:"chunk_size" default:"50"`
	Concurrency int           `yaml:"concurrency" default:"4"`
	Timeout     time.Duration `yaml:"timeout" default:"10s"`
	RateLimit   float64       `yaml:"rate_limit"`
	Burst       int           `yaml:"burst" default:"1"`
}

// WaterfallConfig lists quote-field priority per canonical field.
type WaterfallConfig struct {
	Price         []string `yaml:"price"`
	PreviousClose []string `yaml:"previous_close"`
	Change        []string `yaml:"change"`
	ChangePercent []string `yaml:"change_percent"`
	Volume        []string `yaml:"volume"`
}

// BacktestConfig points at the external backtest engine. An empty strategy
// list accepts the built-in set.
type BacktestConfig struct {
	ServiceURL string        `yaml:"service_url"`
	Timeout    time.Duration `yaml:"timeout" default:"20s"`
	Attempts   int           `yaml:"attempts" default:"2"`
	Strategies []string      `yaml:"strategies"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Log         struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"40s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"5s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
		RateLimit       struct {
			Capacity     float64 `yaml:"capacity" default:"60"`
			RefillPerSec float64 `yaml:"refill_per_sec" default:"1"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
	Scanner struct {
		Symbols          []string                   `yaml:"symbols"`
		DefaultThreshold float64                    `yaml:"default_threshold" default:"5"`
		MaxResults       int                        `yaml:"max_results" default:"50"`
		Timeout          time.Duration              `yaml:"timeout" default:"30s"`
		GainersFallback  string                     `yaml:"gainers_fallback"`
		Providers        map[string][]string        `yaml:"providers"`
		Waterfall        map[string]WaterfallConfig `yaml:"waterfall"`
	} `yaml:"scanner"`
	Providers struct {
		Alpaca       ProviderConfig `yaml:"alpaca"`
		Yahoo        ProviderConfig `yaml:"yahoo"`
		Finnhub      ProviderConfig `yaml:"finnhub"`
		Nasdaq       ProviderConfig `yaml:"nasdaq"`
		FMP          ProviderConfig `yaml:"fmp"`
		AlphaVantage ProviderConfig `yaml:"alphavantage"`
		Warehouse    struct {
			Enabled bool   `yaml:"enabled"`
			Table   string `yaml:"table" default:"market.candles"`
		} `yaml:"warehouse"`
	} `yaml:"providers"`
	Candles struct {
		Providers  []string      `yaml:"providers"`
		MinCandles int           `yaml:"min_candles" default:"30"`
		Timeout    time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"candles"`
	News struct {
		Feeds   []string      `yaml:"feeds"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
		Google  struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"google"`
		Yahoo struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"yahoo"`
	} `yaml:"news"`
	Backtest BacktestConfig `yaml:"backtest"`
	Cache struct {
		Backend    string        `yaml:"backend" default:"none"`
		TTL        time.Duration `yaml:"ttl" default:"15s"`
		MemorySize int           `yaml:"memory_size" default:"5000"`
		Redis      struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"moverscan"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		RequiredAcks int      `yaml:"required_acks" default:"1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Topics       struct {
			Movers string `yaml:"movers" default:"moverscan.movers"`
			News   string `yaml:"news" default:"moverscan.news"`
		} `yaml:"topics"`
		Producer struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"100ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"market"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"10s"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// API keys are normally supplied this way.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	c.applyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes and fills defaults without validating.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	c.fillOrders()
	return &c, nil
}

func (c *Config) fillOrders() {
	enabled := map[string]bool{
		ProviderAlpaca:       c.Providers.Alpaca.Enabled,
		ProviderYahoo:        c.Providers.Yahoo.Enabled,
		ProviderFinnhub:      c.Providers.Finnhub.Enabled,
		ProviderNasdaq:       c.Providers.Nasdaq.Enabled,
		ProviderWarehouse:    c.Providers.Warehouse.Enabled,
		ProviderAlphaVantage: c.Providers.AlphaVantage.Enabled,
	}
	onlyEnabled := func(names ...string) []string {
		out := make([]string, 0, len(names))
		for _, n := range names {
			if enabled[n] {
				out = append(out, n)
			}
		}
		return out
	}

	// Unset orders fall back to the stock preference, restricted to enabled providers.
	if c.Scanner.Providers == nil {
		c.Scanner.Providers = map[string][]string{}
	}
	for session, order := range map[string][]string{
		"pre":     onlyEnabled(ProviderNasdaq, ProviderAlpaca, ProviderYahoo),
		"regular": onlyEnabled(ProviderAlpaca, ProviderYahoo, ProviderFinnhub),
		"post":    onlyEnabled(ProviderNasdaq, ProviderAlpaca, ProviderYahoo),
	} {
		if len(c.Scanner.Providers[session]) == 0 {
			c.Scanner.Providers[session] = order
		}
	}
	if len(c.Candles.Providers) == 0 {
		c.Candles.Providers = onlyEnabled(ProviderAlpaca, ProviderYahoo, ProviderWarehouse, ProviderAlphaVantage)
	}
	if len(c.News.Feeds) == 0 {
		c.News.Feeds = []string{FeedGoogle, FeedYahoo}
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Providers.Alpaca.APIKey, "ALPACA_API_KEY")
	set(&c.Providers.Alpaca.APISecret, "ALPACA_API_SECRET")
	set(&c.Providers.Finnhub.APIKey, "FINNHUB_API_KEY")
	set(&c.Providers.FMP.APIKey, "FMP_API_KEY")
	set(&c.Providers.AlphaVantage.APIKey, "ALPHAVANTAGE_API_KEY")
	set(&c.Backtest.ServiceURL, "BACKTEST_SERVICE_URL")
	set(&c.ClickHouse.Password, "CLICKHOUSE_PASSWORD")
	set(&c.Cache.Redis.Password, "REDIS_PASSWORD")

	if v := getenv("SCANNER_SYMBOLS"); v != "" {
		c.Scanner.Symbols = strings.Split(v, ",")
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Cache.Redis.Host = host
		if ok {
			var p int
			if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
				c.Cache.Redis.Port = p
			}
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}

	quoteProviders := map[string]*ProviderConfig{
		ProviderAlpaca:  &c.Providers.Alpaca,
		ProviderYahoo:   &c.Providers.Yahoo,
		ProviderFinnhub: &c.Providers.Finnhub,
		ProviderNasdaq:  &c.Providers.Nasdaq,
	}
	all := map[string]*ProviderConfig{
		ProviderFMP:          &c.Providers.FMP,
		ProviderAlphaVantage: &c.Providers.AlphaVantage,
	}
	for k, v := range quoteProviders {
		all[k] = v
	}
	for name, p := range all {
		if !p.Enabled {
			continue
		}
		if p.Timeout < MinProviderTimeout || p.Timeout > MaxProviderTimeout {
			return fmt.Errorf("providers.%s.timeout must be between %s and %s, got %s", name, MinProviderTimeout, MaxProviderTimeout, p.Timeout)
		}
	}
	if c.Providers.Alpaca.Enabled && (c.Providers.Alpaca.APIKey == "" || c.Providers.Alpaca.APISecret == "") {
		return fmt.Errorf("providers.alpaca.api_key and api_secret are required")
	}
	for name, p := range map[string]*ProviderConfig{
		ProviderFinnhub:      &c.Providers.Finnhub,
		ProviderFMP:          &c.Providers.FMP,
		ProviderAlphaVantage: &c.Providers.AlphaVantage,
	} {
		if p.Enabled && p.APIKey == "" {
			return fmt.Errorf("providers.%s.api_key is required", name)
		}
	}

	for _, session := range []string{"pre", "regular", "post"} {
		for _, name := range c.Scanner.Providers[session] {
			p, ok := quoteProviders[name]
			if !ok {
				return fmt.Errorf("scanner.providers.%s: unknown quote provider '%s'", session, name)
			}
			if !p.Enabled {
				return fmt.Errorf("scanner.providers.%s: provider '%s' is not enabled", session, name)
			}
		}
	}
	for session := range c.Scanner.Providers {
		if session != "pre" && session != "regular" && session != "post" {
			return fmt.Errorf("scanner.providers: unknown session '%s'", session)
		}
	}
	switch c.Scanner.GainersFallback {
	case "":
	case ProviderFMP:
		if !c.Providers.FMP.Enabled {
			return fmt.Errorf("scanner.gainers_fallback: provider 'fmp' is not enabled")
		}
	default:
		return fmt.Errorf("scanner.gainers_fallback must be '' or 'fmp', got '%s'", c.Scanner.GainersFallback)
	}

	candleEnabled := map[string]bool{
		ProviderAlpaca:       c.Providers.Alpaca.Enabled,
		ProviderYahoo:        c.Providers.Yahoo.Enabled,
		ProviderWarehouse:    c.Providers.Warehouse.Enabled,
		ProviderAlphaVantage: c.Providers.AlphaVantage.Enabled,
	}
	for _, name := range c.Candles.Providers {
		enabled, ok := candleEnabled[name]
		if !ok {
			return fmt.Errorf("candles.providers: unknown candle provider '%s'", name)
		}
		if !enabled {
			return fmt.Errorf("candles.providers: provider '%s' is not enabled", name)
		}
	}
	if c.Providers.Warehouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when providers.warehouse is enabled")
	}

	for _, f := range c.News.Feeds {
		if f != FeedGoogle && f != FeedYahoo {
			return fmt.Errorf("news.feeds: unknown feed '%s'", f)
		}
	}

	switch c.Cache.Backend {
	case "none", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis, layered, got '%s'", c.Cache.Backend)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}
