package nasdaq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoverScan/pkg/config"
	xhttp "MoverScan/pkg/http"
)

const watchlistBody = `{
  "data": [
    {"symbol":"AAPL","companyName":"Apple Inc. Common Stock","lastSalePrice":"$214.00","netChange":"+14.00","percentageChange":"+7.00%","volume":"1,234,567","marketStatus":"Pre-Market"},
    {"symbol":"MSFT","companyName":"Microsoft","lastSalePrice":"N/A","netChange":"","percentageChange":"","volume":"","marketStatus":"Pre-Market"}
  ],
  "status": {"rCode": 200}
}`

func TestFetchQuotes_ChunksAndHeaders(t *testing.T) {
	var seen [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, xhttp.BrowserUserAgent, r.Header.Get("User-Agent"))
		seen = append(seen, r.URL.Query()["symbol"])
		_, _ = w.Write([]byte(watchlistBody))
	}))
	defer srv.Close()

	c := New(config.ProviderConfig{BaseURL: srv.URL, ChunkSize: 1, Concurrency: 1, Timeout: 10 * time.Second})
	quotes, err := c.FetchQuotes(context.Background(), []string{"AAPL", "MSFT"})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"aapl|stocks"}, {"msft|stocks"}}, seen)
	// each call returns the same body; the N/A row is dropped both times
	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
}

func TestNormalize_PreMarket(t *testing.T) {
	q, ok := normalize(watchlistRow{
		Symbol:           "aapl",
		LastSalePrice:    "$214.00",
		NetChange:        "+14.00",
		PercentageChange: "+7.00%",
		Volume:           "1,234,567",
		MarketStatus:     "Pre-Market",
	}, time.Now())
	require.True(t, ok)

	assert.Equal(t, "AAPL", q.Symbol)
	assert.Nil(t, q.Price)
	assert.Equal(t, 214.0, *q.ExtendedPrice)
	assert.Equal(t, 7.0, *q.ExtendedChangePercent)
	assert.Equal(t, 200.0, *q.PreviousClose)
	assert.Equal(t, 1234567.0, *q.ExtendedVolume)
}

func TestNormalize_AfterHoursUsesRegularClose(t *testing.T) {
	q, ok := normalize(watchlistRow{
		Symbol:        "TSLA",
		LastSalePrice: "$190.00",
		NetChange:     "-10.00",
		MarketStatus:  "After-Hours",
	}, time.Now())
	require.True(t, ok)

	assert.Nil(t, q.PreviousClose)
	assert.Equal(t, 200.0, *q.RegularClose)
	assert.Nil(t, q.ExtendedChangePercent)
}

func TestNormalize_RegularSession(t *testing.T) {
	q, ok := normalize(watchlistRow{Symbol: "NVDA", LastSalePrice: "$120.5", PercentageChange: "-1.5%", MarketStatus: "Market Open"}, time.Now())
	require.True(t, ok)
	assert.Equal(t, 120.5, *q.Price)
	assert.Equal(t, -1.5, *q.ChangePercent)
	assert.Nil(t, q.ExtendedPrice)
}

func TestFetchQuotes_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"status":{"rCode":400,"bCodeMessage":[{"code":1001,"errorMessage":"Symbol not exists"}]}}`))
	}))
	defer srv.Close()

	c := New(config.ProviderConfig{BaseURL: srv.URL, Timeout: 10 * time.Second})
	quotes, err := c.FetchQuotes(context.Background(), []string{"ZZZZ"})
	assert.Empty(t, quotes)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Symbol not exists"))
}
