package session

import (
	"testing"
	"time"

	"MoverScan/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMinutePartitionsDay(t *testing.T) {
	counts := map[models.Session]int{}
	for m := 0; m < 24*60; m++ {
		s := ForMinute(m)
		require.True(t, s.Valid(), "minute %d", m)
		counts[s]++
	}
	assert.Equal(t, RegularOpen-PreMarketOpen, counts[models.SessionPre])
	assert.Equal(t, RegularClose-RegularOpen, counts[models.SessionRegular])
	assert.Equal(t, 24*60-(RegularClose-PreMarketOpen), counts[models.SessionPost])
}

func TestForMinuteBoundaries(t *testing.T) {
	cases := []struct {
		minute int
		want   models.Session
	}{
		{0, models.SessionPost},
		{239, models.SessionPost},
		{240, models.SessionPre},
		{569, models.SessionPre},
		{570, models.SessionRegular},
		{959, models.SessionRegular},
		{960, models.SessionPost},
		{1439, models.SessionPost},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ForMinute(tc.minute), "minute %d", tc.minute)
	}
}

func TestClassifyConvertsToNewYork(t *testing.T) {
	// 13:00 UTC is 09:00 EDT in July and 08:00 EST in January.
	summer := time.Date(2024, 7, 15, 13, 0, 0, 0, time.UTC)
	winter := time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, models.SessionPre, Classify(summer))
	assert.Equal(t, models.SessionPre, Classify(winter))

	// 14:00 UTC in July is 10:00 EDT.
	assert.Equal(t, models.SessionRegular, Classify(time.Date(2024, 7, 15, 14, 0, 0, 0, time.UTC)))
	// 21:30 UTC in July is 17:30 EDT.
	assert.Equal(t, models.SessionPost, Classify(time.Date(2024, 7, 15, 21, 30, 0, 0, time.UTC)))
}

func TestDescribe(t *testing.T) {
	info := Describe(time.Date(2024, 7, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, 9*60+45, info.MinuteOfDay)
	assert.Equal(t, models.SessionRegular, info.Session)
}
