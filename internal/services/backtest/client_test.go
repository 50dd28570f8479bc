package backtest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MoverScan/internal/domain/models"
	"MoverScan/pkg/config"
)

func TestRun_PostsSeriesAndRelaysResult(t *testing.T) {
	var got models.BacktestRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/backtest", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"trades":4,"totalReturn":0.12,"winRate":0.5,"maxDrawdown":-0.04,"sharpe":1.3,"equity":[1,1.1]}`))
	}))
	defer srv.Close()

	b := New(config.BacktestConfig{ServiceURL: srv.URL + "/", Timeout: time.Second, Attempts: 2})
	res, err := b.Run(context.Background(), models.BacktestRequest{
		Symbol:    "AAPL",
		Timeframe: "1d",
		Strategy:  "sma_cross",
		Candles:   []models.Candle{{Time: 1, Close: 10}, {Time: 2, Close: 11}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Len(t, got.Candles, 2)

	assert.Equal(t, 4, res.Trades)
	assert.Equal(t, "sma_cross", res.Strategy)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.InDelta(t, 1.3, res.Sharpe, 1e-9)
	assert.Contains(t, res.Raw, "equity")
}

func TestRun_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"trades":1}`))
	}))
	defer srv.Close()

	b := New(config.BacktestConfig{ServiceURL: srv.URL, Timeout: time.Second, Attempts: 2})
	b.backoff = time.Millisecond
	res, err := b.Run(context.Background(), models.BacktestRequest{Strategy: "breakout"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Trades)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRun_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad strategy", http.StatusBadRequest)
	}))
	defer srv.Close()

	b := New(config.BacktestConfig{ServiceURL: srv.URL, Timeout: time.Second, Attempts: 3})
	_, err := b.Run(context.Background(), models.BacktestRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRun_NoServiceURL(t *testing.T) {
	_, err := New(config.BacktestConfig{}).Run(context.Background(), models.BacktestRequest{})
	assert.Error(t, err)
}
