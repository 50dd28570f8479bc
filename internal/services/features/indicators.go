package features

import (
    "fmt"
    "time"

    "MoverScan/internal/domain/models"

    "github.com/markcheno/go-talib"
)

// MinCandles is the shortest series any downstream analysis accepts.
const MinCandles = 30

const (
    rsiPeriod  = 14
    atrPeriod  = 14
    fastPeriod = 20
    slowPeriod = 50
    volWindow  = 20
)

// Summarize computes the latest indicator values for an ascending series.
func Summarize(series *models.CandleSeries, barsPerYear float64) (models.AnalysisResult, error) {
    n := len(series.Candles)
    if n < MinCandles {
        return models.AnalysisResult{}, fmt.Errorf("need %d candles, have %d", MinCandles, n)
    }
    closes := series.Closes()
    highs := make([]float64, n)
    lows := make([]float64, n)
    for i, c := range series.Candles {
        highs[i] = c.High
        lows[i] = c.Low
    }

    res := models.AnalysisResult{
        Symbol:    series.Symbol,
        Timeframe: series.Timeframe,
        Provider:  series.Provider,
        Candles:   n,
        LastClose: closes[n-1],
        RSI14:     last(talib.Rsi(closes, rsiPeriod)),
        EMA20:     last(talib.Ema(closes, fastPeriod)),
        SMA20:     last(talib.Sma(closes, fastPeriod)),
        ATR14:     last(talib.Atr(highs, lows, closes, atrPeriod)),
        Timestamp: time.Unix(series.Candles[n-1].Time, 0).UTC(),
    }
    if n >= slowPeriod {
        v := last(talib.Ema(closes, slowPeriod))
        res.EMA50 = &v
    }
    res.RealizedVolatility = RealizedVolatility(ComputeLogReturns(series.Candles), volWindow, barsPerYear)
    return res, nil
}

func last(xs []float64) float64 {
    if len(xs) == 0 {
        return 0
    }
    return xs[len(xs)-1]
}
