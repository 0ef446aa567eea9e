// Package parallel provides bounded-concurrency helpers.
package parallel

import (
	"context"
	"sync"
)

// Map runs fn(i) for every index in [0, n) with at most workers goroutines
// in flight and returns the results in index order. A workers value of 0 or
// 1 runs everything on the calling goroutine. If the context is cancelled,
// indices that were never executed hold their zero value and the context
// error is returned.
func Map[T any](ctx context.Context, n, workers int, fn func(i int) T) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}

	if workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			results[i] = fn(i)
		}
		return results, nil
	}

	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			wg.Wait()
			return results, ctx.Err()
		case semaphore <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			results[i] = fn(i)
		}(i)
	}

	wg.Wait()
	return results, ctx.Err()
}
