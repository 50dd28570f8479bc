package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/domain/repository/mocks"
	"MoverScan/internal/middleware"
	"MoverScan/internal/services/session"
	"MoverScan/internal/services/waterfall"
	"MoverScan/pkg/metrics"
)

func at(hour, minute int) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 3, 5, hour, minute, 0, 0, session.Location())
	}
}

func quoteProvider(ctrl *gomock.Controller, name string, recs []models.PartialQuote, err error) *middleware.GuardedQuotes {
	p := mocks.NewMockQuoteProvider(ctrl)
	p.EXPECT().Name().Return(name).AnyTimes()
	p.EXPECT().FetchQuotes(gomock.Any(), gomock.Any()).Return(recs, err).AnyTimes()
	return middleware.GuardQuotes(p, middleware.GuardOptions{Timeout: time.Second})
}

func planFor(s models.Session) waterfall.Plan { return waterfall.DefaultPlans()[s] }

func partial(sym string, price, prev float64) models.PartialQuote {
	return models.PartialQuote{
		Symbol:        sym,
		Source:        "test",
		Price:         models.Float(price),
		PreviousClose: models.Float(prev),
	}
}

func TestScan_PreSessionFallsBackToGainers(t *testing.T) {
	ctrl := gomock.NewController(t)
	primary := quoteProvider(ctrl, "nasdaq", nil, nil)

	gp := mocks.NewMockGainersProvider(ctrl)
	gp.EXPECT().Name().Return("fmp").AnyTimes()
	gp.EXPECT().FetchGainers(gomock.Any(), 7.0).Return([]models.PartialQuote{{
		Symbol:        "XYZ",
		Source:        "fmp",
		Price:         models.Float(10.9),
		Change:        models.Float(0.9),
		ChangePercent: models.Float(9),
		PreviousClose: models.Float(10),
	}}, nil)

	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().RecordFallback("pre", "fmp")
	m.EXPECT().RecordMovers("pre", 1)
	m.EXPECT().RecordLatency("movers", gomock.Any())

	uc := NewMoversUseCase(MoversConfig{
		Chains:   map[models.Session][]*middleware.GuardedQuotes{models.SessionPre: {primary}},
		Gainers:  middleware.GuardGainers(gp, middleware.GuardOptions{}),
		Universe: []string{"AAPL"},
	}, nil, m, nil).WithClock(at(8, 0))

	res, err := uc.Scan(context.Background(), ScanParams{MinPercent: 7})
	require.NoError(t, err)
	assert.Equal(t, models.SessionPre, res.Session)
	assert.Equal(t, "fmp", res.Provider)
	assert.False(t, res.Exhausted)
	require.Len(t, res.Movers, 1)

	q := res.Movers[0]
	assert.True(t, q.Triggered)
	assert.Equal(t, models.SessionPre, q.Session)
	assert.InDelta(t, 9.0, q.ChangePercent, 1e-9)
	assert.Equal(t, 0.0, q.Volume)
	assert.Equal(t, 1.0, q.VolumeRatio)
	assert.Len(t, res.Attempts, 2)
	assert.NotEmpty(t, res.RunID)
}

func TestScan_GainersRestrictedToExplicitSymbols(t *testing.T) {
	ctrl := gomock.NewController(t)
	gp := mocks.NewMockGainersProvider(ctrl)
	gp.EXPECT().Name().Return("fmp").AnyTimes()
	gp.EXPECT().FetchGainers(gomock.Any(), gomock.Any()).Return([]models.PartialQuote{
		partial("AAA", 12, 10),
		partial("BBB", 12, 10),
	}, nil)

	uc := NewMoversUseCase(MoversConfig{
		Chains:  map[models.Session][]*middleware.GuardedQuotes{models.SessionRegular: {quoteProvider(ctrl, "alpaca", nil, nil)}},
		Gainers: middleware.GuardGainers(gp, middleware.GuardOptions{}),
	}, nil, metrics.Nop{}, nil).WithClock(at(11, 0))

	res, err := uc.Scan(context.Background(), ScanParams{Symbols: []string{"bbb"}, MinPercent: 5})
	require.NoError(t, err)
	require.Len(t, res.Movers, 1)
	assert.Equal(t, "BBB", res.Movers[0].Symbol)
}

func TestScan_StopsAtFirstNonEmptyProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := quoteProvider(ctrl, "alpaca", nil, errors.New("503"))
	second := quoteProvider(ctrl, "yahoo", []models.PartialQuote{partial("AAPL", 110, 100)}, nil)

	third := mocks.NewMockQuoteProvider(ctrl)
	third.EXPECT().Name().Return("finnhub").AnyTimes()

	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().RecordFallback("regular", "yahoo")
	m.EXPECT().RecordMovers("regular", 1)
	m.EXPECT().RecordLatency(gomock.Any(), gomock.Any())

	uc := NewMoversUseCase(MoversConfig{
		Chains: map[models.Session][]*middleware.GuardedQuotes{
			models.SessionRegular: {failing, second, middleware.GuardQuotes(third, middleware.GuardOptions{})},
		},
		Universe: []string{"AAPL"},
	}, nil, m, nil).WithClock(at(10, 0))

	res, err := uc.Scan(context.Background(), ScanParams{MinPercent: 5})
	require.NoError(t, err)
	assert.Equal(t, "yahoo", res.Provider)
	require.Len(t, res.Attempts, 2)
	assert.Contains(t, res.Attempts[0].Error, "503")
	assert.InDelta(t, 10.0, res.Movers[0].ChangePercent, 1e-9)
}

func TestScan_ExhaustedIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := NewMoversUseCase(MoversConfig{
		Chains:   map[models.Session][]*middleware.GuardedQuotes{models.SessionPost: {quoteProvider(ctrl, "nasdaq", nil, nil)}},
		Universe: []string{"AAPL"},
	}, nil, nil, nil).WithClock(at(18, 0))

	res, err := uc.Scan(context.Background(), ScanParams{MinPercent: 5})
	require.NoError(t, err)
	assert.True(t, res.Exhausted)
	assert.Empty(t, res.Movers)
	assert.Equal(t, models.SessionPost, res.Session)
}

func TestScan_PreMarketMoveIsFromPriorClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := models.PartialQuote{
		Symbol:                "NVDA",
		Source:                "yahoo",
		Price:                 models.Float(100),
		PreviousClose:         models.Float(100),
		ExtendedPrice:         models.Float(101),
		ExtendedChange:        models.Float(1),
		ExtendedChangePercent: models.Float(1),
	}
	uc := NewMoversUseCase(MoversConfig{
		Chains:   map[models.Session][]*middleware.GuardedQuotes{models.SessionPre: {quoteProvider(ctrl, "yahoo", []models.PartialQuote{rec}, nil)}},
		Universe: []string{"NVDA"},
	}, nil, nil, nil).WithClock(at(8, 0))

	res, err := uc.Scan(context.Background(), ScanParams{MinPercent: 7})
	require.NoError(t, err)
	assert.Equal(t, models.SessionPre, res.Session)
	assert.Empty(t, res.Movers)

	res, err = uc.Scan(context.Background(), ScanParams{MinPercent: 7, IncludeAll: true})
	require.NoError(t, err)
	require.Len(t, res.Movers, 1)
	assert.InDelta(t, 1.0, res.Movers[0].ChangePercent, 1e-9)
	assert.False(t, res.Movers[0].Triggered)
}

func TestScan_NoSymbols(t *testing.T) {
	uc := NewMoversUseCase(MoversConfig{}, nil, nil, nil)
	_, err := uc.Scan(context.Background(), ScanParams{})
	assert.ErrorIs(t, err, ErrNoSymbols)
}

func TestScan_TriggeredFollowsThresholdAndSortCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	recs := []models.PartialQuote{
		partial("A", 101, 100),
		partial("B", 90, 100),
		partial("C", 106, 100),
		partial("D", 103, 100),
		partial("A", 150, 100),
	}
	uc := NewMoversUseCase(MoversConfig{
		Chains:   map[models.Session][]*middleware.GuardedQuotes{models.SessionRegular: {quoteProvider(ctrl, "alpaca", recs, nil)}},
		Universe: []string{"A", "B", "C", "D"},
	}, nil, nil, nil).WithClock(at(12, 0))

	res, err := uc.Scan(context.Background(), ScanParams{MinPercent: 5, IncludeAll: true, Limit: 3})
	require.NoError(t, err)
	require.Len(t, res.Movers, 3)
	assert.Equal(t, []string{"B", "C", "D"}, []string{res.Movers[0].Symbol, res.Movers[1].Symbol, res.Movers[2].Symbol})
	for _, q := range res.Movers {
		assert.Equal(t, math.Abs(q.ChangePercent) >= 5, q.Triggered, q.Symbol)
	}

	res, err = uc.Scan(context.Background(), ScanParams{MinPercent: 5})
	require.NoError(t, err)
	require.Len(t, res.Movers, 2)
	for _, q := range res.Movers {
		assert.True(t, q.Triggered)
	}
}

func TestScan_PublishFailureIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockEventPublisher(ctrl)
	pub.EXPECT().PublishMovers(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().RecordMovers(gomock.Any(), 1)
	m.EXPECT().RecordLatency(gomock.Any(), gomock.Any())
	m.EXPECT().RecordError("publish")

	uc := NewMoversUseCase(MoversConfig{
		Chains:   map[models.Session][]*middleware.GuardedQuotes{models.SessionRegular: {quoteProvider(ctrl, "alpaca", []models.PartialQuote{partial("A", 110, 100)}, nil)}},
		Universe: []string{"A"},
	}, pub, m, nil).WithClock(at(12, 0))

	res, err := uc.Scan(context.Background(), ScanParams{MinPercent: 5})
	require.NoError(t, err)
	assert.Len(t, res.Movers, 1)
}

func TestResolveQuote_UsesProviderPercentWithoutClose(t *testing.T) {
	p := &models.PartialQuote{
		Symbol:                "TSLA",
		ExtendedPrice:         models.Float(200),
		ExtendedChangePercent: models.Float(-6.5),
		ChangePercent:         models.Float(1),
		Volume:                models.Float(500),
		AverageVolume:         models.Float(250),
	}
	q := resolveQuote(p, planFor(models.SessionPost), 5)
	assert.Equal(t, 200.0, q.Price)
	assert.Equal(t, -6.5, q.ChangePercent)
	assert.True(t, q.Triggered)
	assert.Equal(t, 2.0, q.VolumeRatio)
	assert.Equal(t, "TSLA", q.DisplayName)
}

func TestParseSymbols(t *testing.T) {
	assert.Equal(t, []string{"AAPL", "MSFT"}, ParseSymbols(" aapl, MSFT,,aapl "))
	assert.Nil(t, ParseSymbols("  "))
}
