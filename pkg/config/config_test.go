package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimal = `
environment: test
providers:
  yahoo:
    enabled: true
  finnhub:
    enabled: true
    api_key: k
`

func TestParse_Defaults(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Providers.Yahoo.Timeout)
	assert.Equal(t, 5.0, c.Scanner.DefaultThreshold)
	assert.Equal(t, "none", c.Cache.Backend)
	assert.Equal(t, []string{"yahoo"}, c.Scanner.Providers["pre"])
	assert.Equal(t, []string{"yahoo", "finnhub"}, c.Scanner.Providers["regular"])
	assert.Equal(t, []string{"yahoo"}, c.Candles.Providers)
	assert.Equal(t, []string{FeedGoogle, FeedYahoo}, c.News.Feeds)
	assert.Equal(t, "moverscan.movers", c.Kafka.Topics.Movers)
}

func TestValidate_ProviderTimeoutWindow(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	c.Providers.Yahoo.Timeout = 5 * time.Second
	assert.ErrorContains(t, c.Validate(), "providers.yahoo.timeout")

	c.Providers.Yahoo.Timeout = 16 * time.Second
	assert.Error(t, c.Validate())

	c.Providers.Yahoo.Timeout = 15 * time.Second
	assert.NoError(t, c.Validate())
}

func TestValidate_UnknownProviderInOrder(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	c.Scanner.Providers["pre"] = []string{"bloomberg"}
	assert.ErrorContains(t, c.Validate(), "unknown quote provider")

	c.Scanner.Providers["pre"] = []string{"alpaca"}
	assert.ErrorContains(t, c.Validate(), "not enabled")
}

func TestValidate_MissingKeys(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	c.Providers.Finnhub.APIKey = ""
	assert.ErrorContains(t, c.Validate(), "providers.finnhub.api_key")
}

func TestValidate_CacheBackend(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	c.Cache.Backend = "memcached"
	assert.ErrorContains(t, c.Validate(), "cache.backend")
}

func TestLoadWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal+`
  fmp:
    enabled: true
scanner:
  gainers_fallback: fmp
`), 0o600))

	t.Setenv("FMP_API_KEY", "from-env")
	t.Setenv("SCANNER_SYMBOLS", "AAPL,MSFT")
	t.Setenv("REDIS_ADDR", "cache.local:6380")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Providers.FMP.APIKey)
	assert.Equal(t, []string{"AAPL", "MSFT"}, c.Scanner.Symbols)
	assert.Equal(t, "cache.local", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)

	_, err = Load(path)
	assert.ErrorContains(t, err, "providers.fmp.api_key")
}

func TestLoad_SampleConfig(t *testing.T) {
	t.Setenv("ALPACA_API_KEY", "id")
	t.Setenv("ALPACA_API_SECRET", "secret")
	t.Setenv("FINNHUB_API_KEY", "f")
	t.Setenv("FMP_API_KEY", "m")
	t.Setenv("ALPHAVANTAGE_API_KEY", "a")

	c, err := LoadWithEnv(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nasdaq", "alpaca", "yahoo"}, c.Scanner.Providers["pre"])
	assert.Equal(t, 0.1, c.Providers.AlphaVantage.RateLimit)
}
