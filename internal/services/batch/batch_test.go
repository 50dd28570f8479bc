package batch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symbols(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("S%03d", i)
	}
	return out
}

func TestChunk(t *testing.T) {
	assert.Nil(t, Chunk(nil, 5))
	assert.Len(t, Chunk(symbols(10), 0), 1)
	got := Chunk(symbols(7), 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"S000", "S001", "S002"}, got[0])
	assert.Equal(t, []string{"S006"}, got[2])
}

func TestFetchAllCallCount(t *testing.T) {
	for _, tc := range []struct{ n, size int }{{1, 1}, {10, 3}, {100, 25}, {101, 25}, {5, 50}} {
		var calls int32
		res := FetchAll(context.Background(), symbols(tc.n), tc.size, 4, func(_ context.Context, chunk []string) ([]string, error) {
			atomic.AddInt32(&calls, 1)
			assert.LessOrEqual(t, len(chunk), tc.size)
			return chunk, nil
		})
		want := (tc.n + tc.size - 1) / tc.size
		assert.Equal(t, int32(want), calls, "L=%d C=%d", tc.n, tc.size)
		assert.Equal(t, want, res.Calls)
		assert.Equal(t, symbols(tc.n), res.Items, "concatenation keeps chunk order")
	}
}

func TestFetchAllEmpty(t *testing.T) {
	res := FetchAll(context.Background(), nil, 10, 2, func(context.Context, []string) ([]int, error) {
		t.Fatal("no call expected")
		return nil, nil
	})
	assert.Zero(t, res.Calls)
	assert.Empty(t, res.Items)
}

func TestFetchAllChunkFailureKeepsOthers(t *testing.T) {
	boom := errors.New("upstream 503")
	res := FetchAll(context.Background(), symbols(9), 3, 3, func(_ context.Context, chunk []string) ([]string, error) {
		if chunk[0] == "S003" {
			return nil, boom
		}
		return chunk, nil
	})
	assert.Len(t, res.Items, 6)
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Err(), boom)
}

func TestFetchAllChunkPanicKeepsOthers(t *testing.T) {
	res := FetchAll(context.Background(), symbols(9), 3, 3, func(_ context.Context, chunk []string) ([]string, error) {
		if chunk[0] == "S003" {
			var m map[string]*int
			return []string{fmt.Sprint(*m["missing"])}, nil
		}
		return chunk, nil
	})
	assert.Equal(t, 3, res.Calls)
	assert.Len(t, res.Items, 6)
	assert.NotContains(t, res.Items, "S003")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Err().Error(), "chunk 1 (3 symbols): panicked")
}

func TestFetchAllRespectsConcurrency(t *testing.T) {
	var inFlight, peak int32
	FetchAll(context.Background(), symbols(20), 1, 2, func(_ context.Context, chunk []string) ([]string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return chunk, nil
	})
	assert.LessOrEqual(t, peak, int32(2))
}

func TestSettleCollectsEveryOutcome(t *testing.T) {
	tasks := []Task[int]{
		{Name: "ok", Run: func(context.Context) (int, error) { return 1, nil }},
		{Name: "fail", Run: func(context.Context) (int, error) { return 0, errors.New("timeout") }},
		{Name: "panic", Run: func(context.Context) (int, error) { panic("bad payload") }},
	}
	out := Settle(context.Background(), tasks)
	require.Len(t, out, 3)
	assert.True(t, out[0].OK())
	assert.Equal(t, 1, out[0].Value)
	assert.EqualError(t, out[1].Err, "timeout")
	assert.Equal(t, "fail", out[1].Name)
	assert.ErrorContains(t, out[2].Err, "panicked")
}

func TestSettleRunsConcurrently(t *testing.T) {
	slow := func(context.Context) (int, error) {
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	}
	start := time.Now()
	Settle(context.Background(), []Task[int]{{Name: "a", Run: slow}, {Name: "b", Run: slow}, {Name: "c", Run: slow}})
	assert.Less(t, time.Since(start), 140*time.Millisecond)
}

func TestAwait_ReturnsValue(t *testing.T) {
	v, err := Await(context.Background(), func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestAwait_ContextWins(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)
	_, err := Await(ctx, func() (int, error) {
		<-release
		return 1, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAwait_RecoversPanic(t *testing.T) {
	_, err := Await(context.Background(), func() (int, error) { panic("boom") })
	assert.ErrorContains(t, err, "boom")
}
