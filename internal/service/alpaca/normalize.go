package alpaca

import (
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MoverScan/internal/domain/models"
	"MoverScan/internal/services/session"
)

func nyDay(t time.Time) string {
	return t.In(session.Location()).Format(time.DateOnly)
}

// normalizeSnapshot maps a snapshot to a PartialQuote.
//
// Before the open the snapshot's daily bar still belongs to the previous
// session, so the latest trade is measured against it rather than against
// PrevDailyBar. After the close the latest trade is an extended print and the
// daily bar close is today's regular close.
func normalizeSnapshot(symbol string, s *marketdata.Snapshot, now time.Time) (models.PartialQuote, bool) {
	if s == nil {
		return models.PartialQuote{}, false
	}
	q := models.PartialQuote{
		Symbol:     strings.ToUpper(symbol),
		Source:     Name,
		ObservedAt: now,
	}

	daily, prev := s.DailyBar, s.PrevDailyBar
	var last float64
	var lastSession models.Session
	if t := s.LatestTrade; t != nil && t.Price > 0 {
		last = t.Price
		lastSession = session.Classify(t.Timestamp)
		q.LastTradePrice = models.Float(last)
		q.ObservedAt = t.Timestamp
		if daily != nil && nyDay(daily.Timestamp) < nyDay(t.Timestamp) {
			prev, daily = daily, nil
		}
	}

	if prev != nil && prev.Close > 0 {
		q.PreviousClose = models.Float(prev.Close)
	}
	if daily != nil {
		q.Open = models.FloatIf(daily.Open, daily.Open > 0)
		q.High = models.FloatIf(daily.High, daily.High > 0)
		q.Low = models.FloatIf(daily.Low, daily.Low > 0)
		q.Volume = models.FloatIf(float64(daily.Volume), daily.Volume > 0)
		q.RegularClose = models.FloatIf(daily.Close, daily.Close > 0)
	}
	if s.MinuteBar != nil && lastSession != models.SessionRegular {
		q.ExtendedVolume = models.FloatIf(float64(s.MinuteBar.Volume), s.MinuteBar.Volume > 0)
	}

	switch {
	case last > 0 && lastSession == models.SessionPre:
		q.Price = models.Float(last)
		q.ExtendedPrice = models.Float(last)
		setChange(&q.ExtendedChange, &q.ExtendedChangePercent, last, q.PreviousClose)
	case last > 0 && lastSession == models.SessionPost && daily != nil && daily.Close > 0:
		q.Price = models.Float(daily.Close)
		q.ExtendedPrice = models.Float(last)
		setChange(&q.Change, &q.ChangePercent, daily.Close, q.PreviousClose)
		setChange(&q.ExtendedChange, &q.ExtendedChangePercent, last, q.RegularClose)
	case last > 0:
		q.Price = models.Float(last)
		setChange(&q.Change, &q.ChangePercent, last, q.PreviousClose)
	case daily != nil && daily.Close > 0:
		q.Price = models.Float(daily.Close)
		setChange(&q.Change, &q.ChangePercent, daily.Close, q.PreviousClose)
	default:
		return models.PartialQuote{}, false
	}
	return q, true
}

func setChange(change, pct **float64, price float64, ref *float64) {
	if ref == nil || *ref <= 0 {
		return
	}
	d := price - *ref
	*change = models.Float(d)
	*pct = models.Float(d / *ref * 100)
}
