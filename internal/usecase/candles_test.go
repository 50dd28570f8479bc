package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/domain/repository"
	"MoverScan/internal/domain/repository/mocks"
	"MoverScan/internal/middleware"
)

var fixedNow = time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)

func bars(n int, step time.Duration) []models.Candle {
	out := make([]models.Candle, n)
	start := fixedNow.Add(-time.Duration(n) * step)
	for i := range out {
		px := 100 + float64(i%7) - float64(i%3)
		out[i] = models.Candle{
			Time:   start.Add(time.Duration(i) * step).Unix(),
			Open:   px,
			High:   px + 1,
			Low:    px - 1,
			Close:  px + 0.5,
			Volume: 1000,
		}
	}
	return out
}

func candleProvider(ctrl *gomock.Controller, name string, candles []models.Candle, err error) *middleware.GuardedCandles {
	p := mocks.NewMockCandleProvider(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	p.EXPECT().FetchCandles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(candles, err).AnyTimes()
	return middleware.GuardCandles(p, middleware.GuardOptions{})
}

type fakeBacktester struct {
	calls int
	req   models.BacktestRequest
	err   error
}

func (f *fakeBacktester) Run(_ context.Context, req models.BacktestRequest) (models.BacktestResult, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return models.BacktestResult{}, f.err
	}
	return models.BacktestResult{Strategy: req.Strategy, Symbol: req.Symbol, Trades: 3}, nil
}

func TestGetCandles_AdvancesPastShortProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	short := candleProvider(ctrl, "alpaca", bars(10, time.Hour), nil)
	full := candleProvider(ctrl, "yahoo", bars(40, time.Hour), nil)

	last := mocks.NewMockCandleProvider(ctrl)
	last.EXPECT().Name().Return("alphavantage").AnyTimes()

	uc := NewCandlesUseCase([]*middleware.GuardedCandles{short, full, middleware.GuardCandles(last, middleware.GuardOptions{})}, 0, nil).
		WithClock(func() time.Time { return fixedNow })
	s, err := uc.GetCandles(context.Background(), GetCandlesParams{Symbol: "aapl", Timeframe: "1h", Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", s.Symbol)
	assert.Equal(t, "yahoo", s.Provider)
	assert.Equal(t, 25, s.Count)
	assert.Equal(t, fixedNow.Add(-60*24*time.Hour), s.From)
	assert.Equal(t, fixedNow, s.To)

	all := bars(40, time.Hour)
	assert.Equal(t, all[len(all)-1].Time, s.Candles[len(s.Candles)-1].Time)
}

func TestGetCandles_KeepsLargestShortSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := candleProvider(ctrl, "alpaca", bars(12, time.Hour), nil)
	b := candleProvider(ctrl, "yahoo", nil, errors.New("404"))
	c := candleProvider(ctrl, "warehouse", bars(5, time.Hour), nil)

	s, err := NewCandlesUseCase([]*middleware.GuardedCandles{a, b, c}, 0, nil).
		GetCandles(context.Background(), GetCandlesParams{Symbol: "AAPL", Timeframe: "1h"})
	require.NoError(t, err)
	assert.Equal(t, "alpaca", s.Provider)
	assert.Equal(t, 12, s.Count)
}

func TestGetCandles_Validation(t *testing.T) {
	uc := NewCandlesUseCase(nil, 0, nil)
	_, err := uc.GetCandles(context.Background(), GetCandlesParams{Timeframe: "1d"})
	assert.ErrorIs(t, err, ErrSymbolRequired)

	_, err = uc.GetCandles(context.Background(), GetCandlesParams{Symbol: "AAPL", Timeframe: "4h"})
	assert.ErrorIs(t, err, ErrUnsupportedTimeframe)

	s, err := uc.GetCandles(context.Background(), GetCandlesParams{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, string(repository.TF1d), s.Timeframe)
	assert.Equal(t, 0, s.Count)
	assert.NotNil(t, s.Candles)
}

func TestSortCandles(t *testing.T) {
	in := []models.Candle{{Time: 3}, {Time: 1}, {Time: 2}, {Time: 1}}
	out := sortCandles(in)
	require.Len(t, out, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{out[0].Time, out[1].Time, out[2].Time})
}

func TestBacktest_InsufficientDataSkipsEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	candles := NewCandlesUseCase([]*middleware.GuardedCandles{candleProvider(ctrl, "alpaca", bars(25, time.Hour), nil)}, 0, nil)
	bt := &fakeBacktester{}

	_, err := NewBacktestUseCase(candles, bt, nil).Run(context.Background(), BacktestParams{
		Symbol: "AAPL", Timeframe: "1h", Strategy: "sma_cross",
	})
	require.ErrorIs(t, err, ErrInsufficientData)
	var ide *InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 25, ide.Count)
	assert.Equal(t, 30, ide.Required)
	assert.Equal(t, 0, bt.calls)
}

func TestBacktest_RelaysSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	candles := NewCandlesUseCase([]*middleware.GuardedCandles{candleProvider(ctrl, "alpaca", bars(60, 24*time.Hour), nil)}, 0, nil)
	bt := &fakeBacktester{}

	res, err := NewBacktestUseCase(candles, bt, nil).Run(context.Background(), BacktestParams{
		Symbol: "msft", Strategy: "RSI_Reversion", Params: map[string]float64{"period": 14},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, bt.calls)
	assert.Equal(t, "MSFT", bt.req.Symbol)
	assert.Equal(t, "1d", bt.req.Timeframe)
	assert.Equal(t, "rsi_reversion", bt.req.Strategy)
	assert.Len(t, bt.req.Candles, 60)
	assert.Equal(t, 3, res.Trades)
}

func TestBacktest_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	candles := NewCandlesUseCase([]*middleware.GuardedCandles{candleProvider(ctrl, "alpaca", bars(40, 24*time.Hour), nil)}, 0, nil)

	bt := &fakeBacktester{err: errors.New("engine 500")}
	uc := NewBacktestUseCase(candles, bt, nil)

	_, err := uc.Run(context.Background(), BacktestParams{Symbol: "AAPL", Strategy: "martingale"})
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)
	assert.Equal(t, 0, bt.calls)

	_, err = uc.Run(context.Background(), BacktestParams{Symbol: "AAPL", Strategy: "breakout"})
	assert.ErrorIs(t, err, ErrBacktestFailed)
	assert.Contains(t, err.Error(), "engine 500")
}

func TestAnalyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	candles := NewCandlesUseCase([]*middleware.GuardedCandles{candleProvider(ctrl, "yahoo", bars(60, 24*time.Hour), nil)}, 0, nil)

	res, err := NewAnalysisUseCase(candles).Analyze(context.Background(), "AAPL", "1d")
	require.NoError(t, err)
	assert.Equal(t, 60, res.Candles)
	assert.Equal(t, "yahoo", res.Provider)
	assert.NotNil(t, res.EMA50)
	assert.Greater(t, res.RSI14, 0.0)

	short := NewCandlesUseCase([]*middleware.GuardedCandles{candleProvider(ctrl, "yahoo", bars(10, 24*time.Hour), nil)}, 0, nil)
	_, err = NewAnalysisUseCase(short).Analyze(context.Background(), "AAPL", "1d")
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestSessionUseCase(t *testing.T) {
	info := NewSessionUseCase().WithClock(at(9, 30)).Current()
	assert.Equal(t, models.SessionRegular, info.Session)
	assert.Equal(t, 570, info.MinuteOfDay)
}
