package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ChunkFunc fetches one chunk of symbols.
type ChunkFunc[T any] func(ctx context.Context, chunk []string) ([]T, error)

// Result is the merged output of FetchAll. Errors holds one entry per failed
// chunk; the items of successful chunks are kept regardless.
type Result[T any] struct {
	Items  []T
	Calls  int
	Errors []error
}

// Err returns the first chunk error, if any.
func (r Result[T]) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Chunk splits symbols into contiguous slices of at most size. A size of 0 or
// less yields a single chunk.
func Chunk(symbols []string, size int) [][]string {
	if len(symbols) == 0 {
		return nil
	}
	if size <= 0 || size >= len(symbols) {
		return [][]string{symbols}
	}
	out := make([][]string, 0, (len(symbols)+size-1)/size)
	for i := 0; i < len(symbols); i += size {
		end := i + size
		if end > len(symbols) {
			end = len(symbols)
		}
		out = append(out, symbols[i:end])
	}
	return out
}

// FetchAll calls fetch once per chunk, with at most concurrency calls in
// flight, and concatenates results in chunk order. A panicking chunk is
// recorded in Errors like any other failed chunk.
func FetchAll[T any](ctx context.Context, symbols []string, chunkSize, concurrency int, fetch ChunkFunc[T]) Result[T] {
	chunks := Chunk(symbols, chunkSize)
	if len(chunks) == 0 {
		return Result[T]{}
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	parts := make([][]T, len(chunks))
	errs := make([]error, len(chunks))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			items, err := runChunk(ctx, chunk, fetch)
			if err != nil {
				errs[i] = fmt.Errorf("chunk %d (%d symbols): %w", i, len(chunk), err)
			}
			parts[i] = items
			return nil
		})
	}
	_ = g.Wait()

	res := Result[T]{Calls: len(chunks)}
	for i := range chunks {
		res.Items = append(res.Items, parts[i]...)
		if errs[i] != nil {
			res.Errors = append(res.Errors, errs[i])
		}
	}
	return res
}

// runChunk settles a panicking chunk as that chunk's error. Callers cannot
// recover it themselves since it runs on an errgroup goroutine.
func runChunk[T any](ctx context.Context, chunk []string, fetch ChunkFunc[T]) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("panicked: %v", r)
		}
	}()
	return fetch(ctx, chunk)
}
