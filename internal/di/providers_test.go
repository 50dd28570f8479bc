package di

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoverScan/internal/domain/models"
	internalrepo "MoverScan/internal/repository"
	"MoverScan/pkg/cache"
	"MoverScan/pkg/config"
	"MoverScan/pkg/metrics"
)

const minimalConfig = `
environment: test
scanner:
  symbols: [AAPL, MSFT]
  gainers_fallback: fmp
  providers:
    pre: [yahoo]
    regular: [alpaca, yahoo]
    post: [yahoo]
  waterfall:
    post:
      price: [last_trade_price, price]
providers:
  alpaca:
    enabled: true
    api_key: k
    api_secret: s
  yahoo:
    enabled: true
  fmp:
    enabled: true
    api_key: k
candles:
  providers: [yahoo, alpaca]
news:
  feeds: [yahoo, google]
`

func loadConfig(t *testing.T, raw string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestBuildPlans_Overrides(t *testing.T) {
	plans, err := buildPlans(map[string]config.WaterfallConfig{
		"post": {Price: []string{"last_trade_price", "price"}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.FieldLastTradePrice, plans[models.SessionPost].Price[0])
	assert.Equal(t, models.FieldRegularClose, plans[models.SessionPost].PreviousClose[0])
	assert.Equal(t, models.FieldPrice, plans[models.SessionRegular].Price[0])

	_, err = buildPlans(map[string]config.WaterfallConfig{"lunch": {}})
	assert.Error(t, err)

	_, err = buildPlans(map[string]config.WaterfallConfig{"pre": {Volume: []string{"bid_size"}}})
	assert.Error(t, err)
}

func TestProvideQuoteChains(t *testing.T) {
	cfg := loadConfig(t, minimalConfig)
	a, err := ProvideAdapters(cfg, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, a.Alpaca)
	assert.Nil(t, a.Nasdaq)

	chains, err := ProvideQuoteChains(cfg, a, cache.NewMemoryCache(100), metrics.Nop{}, nil)
	require.NoError(t, err)
	require.Len(t, chains[models.SessionRegular], 2)
	assert.Equal(t, "alpaca", chains[models.SessionRegular][0].Name())
	assert.Equal(t, "yahoo", chains[models.SessionPre][0].Name())

	g := ProvideGainers(cfg, a, metrics.Nop{}, nil)
	require.NotNil(t, g)
	assert.Equal(t, "fmp", g.Name())
}

func TestProvideCandleProviders(t *testing.T) {
	cfg := loadConfig(t, minimalConfig)
	a, err := ProvideAdapters(cfg, nil, nil)
	require.NoError(t, err)

	ps, err := ProvideCandleProviders(cfg, a, metrics.Nop{}, nil)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "yahoo", ps[0].Name())

	cfg.Candles.Providers = append(cfg.Candles.Providers, config.ProviderWarehouse)
	_, err = ProvideCandleProviders(cfg, a, metrics.Nop{}, nil)
	assert.Error(t, err)
}

func TestProvideNewsFeeds_KeepsOrder(t *testing.T) {
	cfg := loadConfig(t, minimalConfig)
	feeds := ProvideNewsFeeds(cfg, metrics.Nop{}, nil)
	require.Len(t, feeds, 2)
	assert.Equal(t, "yahoo", feeds[0].Name())
	assert.Equal(t, "google", feeds[1].Name())
}

func TestProvideInfrastructureDisabled(t *testing.T) {
	cfg := loadConfig(t, minimalConfig)

	c, err := ProvideCache(cfg)
	require.NoError(t, err)
	assert.Nil(t, c)

	cfg.Cache.Backend = "memory"
	cfg.Cache.TTL = time.Second
	c, err = ProvideCache(cfg)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.NoError(t, c.Close())

	ch, err := ProvideClickHouseClient(cfg)
	require.NoError(t, err)
	assert.Nil(t, ch)

	pub, err := ProvideEventPublisher(cfg)
	require.NoError(t, err)
	assert.IsType(t, internalrepo.NoopPublisher{}, pub)
}
