package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(level zerolog.Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	zerolog.DurationFieldUnit = time.Millisecond
	return &Logger{zl: zerolog.New(buf).Level(level)}, buf
}

func TestFieldsAreTyped(t *testing.T) {
	l, buf := capture(zerolog.DebugLevel)
	l.With(String("run_id", "r1")).Info("scan",
		Int("movers", 3),
		Bool("exhausted", false),
		Duration("took", 1500*time.Millisecond),
		Error(errors.New("boom")),
	)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "r1", line["run_id"])
	assert.Equal(t, float64(3), line["movers"])
	assert.Equal(t, false, line["exhausted"])
	assert.Equal(t, float64(1500), line["took"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "info", line["level"])
}

func TestLevelFilters(t *testing.T) {
	l, buf := capture(zerolog.WarnLevel)
	l.Info("hidden")
	assert.Zero(t, buf.Len())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&Config{Level: "chatty", Output: "stdout"})
	assert.Error(t, err)
}
