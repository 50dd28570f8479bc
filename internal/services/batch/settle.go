package batch

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Task is one unit of a fan-out.
type Task[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Outcome is the settled result of a Task: either a value or the reason it
// failed. Elapsed is measured per task.
type Outcome[T any] struct {
	Name    string
	Value   T
	Err     error
	Elapsed time.Duration
}

// OK reports whether the task succeeded.
func (o Outcome[T]) OK() bool { return o.Err == nil }

// Settle runs every task concurrently and waits for all of them. Outcomes are
// returned in task order. A panicking task settles as a failure.
func Settle[T any](ctx context.Context, tasks []Task[T]) []Outcome[T] {
	out := make([]Outcome[T], len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task[T]) {
			defer wg.Done()
			start := time.Now()
			v, err := runTask(ctx, task)
			out[i] = Outcome[T]{Name: task.Name, Value: v, Err: err, Elapsed: time.Since(start)}
		}(i, task)
	}
	wg.Wait()
	return out
}

func runTask[T any](ctx context.Context, task Task[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Name, r)
		}
	}()
	if task.Run == nil {
		return v, fmt.Errorf("task %s has no func", task.Name)
	}
	return task.Run(ctx)
}
