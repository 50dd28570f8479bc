package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BucketRefills(t *testing.T) {
	now := time.Unix(1000, 0)
	l := New()
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.2.3.4", 2, 1))
	assert.True(t, l.Allow("1.2.3.4", 2, 1))
	assert.False(t, l.Allow("1.2.3.4", 2, 1))
	assert.True(t, l.Allow("5.6.7.8", 2, 1), "keys are independent")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.2.3.4", 2, 1))
	assert.False(t, l.Allow("1.2.3.4", 2, 1))
}

func TestLimiter_PrunesIdleKeys(t *testing.T) {
	now := time.Unix(1000, 0)
	l := New()
	l.now = func() time.Time { return now }

	l.Allow("a", 5, 1)
	l.Allow("b", 5, 1)
	assert.Equal(t, 2, l.Len())

	now = now.Add(2 * time.Minute)
	l.Allow("c", 5, 1)
	assert.Equal(t, 1, l.Len())
}
