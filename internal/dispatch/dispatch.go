package dispatch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Map invokes fn once for every index in [0, n) across a bounded pool of
// workers and blocks until all submitted work completes. Callers key results
// by index (deterministic file names or slice slots), never by completion
// order, so ordering survives arbitrary scheduling.
//
// The first error cancels the remaining work and is returned; no partial
// success is reported. workers <= 0 selects the number of CPUs.
func Map(ctx context.Context, n, workers int, fn func(ctx context.Context, index int) error) error {
	if n <= 0 {
		return nil
	}
	if fn == nil {
		return fmt.Errorf("dispatch: nil work function")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	indices := make(chan int)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indices {
				if err := ctx.Err(); err != nil {
					return
				}
				if err := fn(ctx, index); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case indices <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
