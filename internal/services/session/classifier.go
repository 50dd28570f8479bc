package session

import (
	"time"

	"MoverScan/internal/domain/models"
)

// Session bands in New York minutes since midnight.
const (
	PreMarketOpen = 4 * 60
	RegularOpen   = 9*60 + 30
	RegularClose  = 16 * 60
)

var newYork = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// Location returns the zone sessions are evaluated in.
func Location() *time.Location { return newYork }

// MinuteOfDay returns hour*60+minute of now in New York.
func MinuteOfDay(now time.Time) int {
	ny := now.In(newYork)
	return ny.Hour()*60 + ny.Minute()
}

// Classify maps a wall-clock instant to its trading session. Weekends and
// holidays are not considered.
func Classify(now time.Time) models.Session {
	return ForMinute(MinuteOfDay(now))
}

// ForMinute classifies a New York minute-of-day.
func ForMinute(m int) models.Session {
	switch {
	case m >= PreMarketOpen && m < RegularOpen:
		return models.SessionPre
	case m >= RegularOpen && m < RegularClose:
		return models.SessionRegular
	default:
		return models.SessionPost
	}
}

// Describe returns the session and the minute it was derived from.
func Describe(now time.Time) models.SessionInfo {
	m := MinuteOfDay(now)
	return models.SessionInfo{
		Session:     ForMinute(m),
		ObservedAt:  now.UTC(),
		MinuteOfDay: m,
	}
}
