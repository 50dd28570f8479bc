package alpaca

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/services/session"
	"MoverScan/pkg/config"
)

type fakeMarketData struct {
	snapshots map[string]*marketdata.Snapshot
	bars      []marketdata.Bar
	err       error
	calls     [][]string
	barsReq   marketdata.GetBarsRequest
}

func (f *fakeMarketData) GetSnapshots(symbols []string, _ marketdata.GetSnapshotRequest) (map[string]*marketdata.Snapshot, error) {
	f.calls = append(f.calls, symbols)
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]*marketdata.Snapshot)
	for _, s := range symbols {
		if snap, ok := f.snapshots[s]; ok {
			out[s] = snap
		}
	}
	return out, nil
}

func (f *fakeMarketData) GetBars(_ string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	f.barsReq = req
	return f.bars, f.err
}

func ny(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, session.Location())
}

func TestNormalizeSnapshot_PreMarketUsesStaleDailyBar(t *testing.T) {
	snap := &marketdata.Snapshot{
		LatestTrade:  &marketdata.Trade{Price: 107, Timestamp: ny(2024, 10, 10, 8, 15)},
		DailyBar:     &marketdata.Bar{Close: 100, Timestamp: ny(2024, 10, 9, 0, 0)},
		PrevDailyBar: &marketdata.Bar{Close: 90, Timestamp: ny(2024, 10, 8, 0, 0)},
	}
	q, ok := normalizeSnapshot("aapl", snap, time.Now())
	require.True(t, ok)

	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, 100.0, *q.PreviousClose)
	assert.Equal(t, 107.0, *q.ExtendedPrice)
	assert.InDelta(t, 7.0, *q.ExtendedChangePercent, 1e-9)
	assert.Nil(t, q.RegularClose)
}

func TestNormalizeSnapshot_Regular(t *testing.T) {
	snap := &marketdata.Snapshot{
		LatestTrade:  &marketdata.Trade{Price: 99, Timestamp: ny(2024, 10, 10, 11, 0)},
		DailyBar:     &marketdata.Bar{Open: 101, High: 102, Low: 98, Close: 99, Volume: 5000, Timestamp: ny(2024, 10, 10, 0, 0)},
		PrevDailyBar: &marketdata.Bar{Close: 100, Timestamp: ny(2024, 10, 9, 0, 0)},
	}
	q, ok := normalizeSnapshot("MSFT", snap, time.Now())
	require.True(t, ok)

	assert.Equal(t, 99.0, *q.Price)
	assert.Equal(t, 100.0, *q.PreviousClose)
	assert.InDelta(t, -1.0, *q.ChangePercent, 1e-9)
	assert.Equal(t, 5000.0, *q.Volume)
	assert.Nil(t, q.ExtendedPrice)
}

func TestNormalizeSnapshot_PostMarket(t *testing.T) {
	snap := &marketdata.Snapshot{
		LatestTrade:  &marketdata.Trade{Price: 110, Timestamp: ny(2024, 10, 10, 17, 30)},
		DailyBar:     &marketdata.Bar{Close: 100, Timestamp: ny(2024, 10, 10, 0, 0)},
		PrevDailyBar: &marketdata.Bar{Close: 95, Timestamp: ny(2024, 10, 9, 0, 0)},
	}
	q, ok := normalizeSnapshot("NVDA", snap, time.Now())
	require.True(t, ok)

	assert.Equal(t, 100.0, *q.Price)
	assert.Equal(t, 100.0, *q.RegularClose)
	assert.Equal(t, 110.0, *q.ExtendedPrice)
	assert.InDelta(t, 10.0, *q.ExtendedChangePercent, 1e-9)
}

func TestNormalizeSnapshot_Empty(t *testing.T) {
	_, ok := normalizeSnapshot("X", &marketdata.Snapshot{}, time.Now())
	assert.False(t, ok)
	_, ok = normalizeSnapshot("X", nil, time.Now())
	assert.False(t, ok)
}

func TestFetchQuotes_Chunks(t *testing.T) {
	fake := &fakeMarketData{snapshots: map[string]*marketdata.Snapshot{
		"A": {DailyBar: &marketdata.Bar{Close: 10}},
		"C": {DailyBar: &marketdata.Bar{Close: 30}},
	}}
	c := newClient(fake, config.ProviderConfig{ChunkSize: 2, Concurrency: 1})

	quotes, err := c.FetchQuotes(context.Background(), []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Len(t, fake.calls, 2)
	require.Len(t, quotes, 2)
	assert.Equal(t, "A", quotes[0].Symbol)
	assert.Equal(t, "C", quotes[1].Symbol)
}

func TestFetchQuotes_Error(t *testing.T) {
	c := newClient(&fakeMarketData{err: errors.New("forbidden")}, config.ProviderConfig{})
	quotes, err := c.FetchQuotes(context.Background(), []string{"A"})
	assert.Empty(t, quotes)
	assert.ErrorContains(t, err, "forbidden")
}

func TestFetchCandles(t *testing.T) {
	fake := &fakeMarketData{bars: []marketdata.Bar{
		{Timestamp: time.Unix(100, 0), Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10},
	}}
	c := newClient(fake, config.ProviderConfig{})
	from, to := time.Unix(0, 0), time.Unix(200, 0)

	candles, err := c.FetchCandles(context.Background(), "aapl", drepo.TF5m, from, to)
	require.NoError(t, err)
	require.Len(t, candles, 1)
	assert.Equal(t, int64(100), candles[0].Time)
	assert.Equal(t, 10.0, candles[0].Volume)
	assert.Equal(t, marketdata.NewTimeFrame(5, marketdata.Min), fake.barsReq.TimeFrame)
	assert.Equal(t, from, fake.barsReq.Start)

	_, err = c.FetchCandles(context.Background(), "aapl", drepo.Timeframe("2h"), from, to)
	assert.Error(t, err)
}
