package staticpages

import (
	"context"
	"runtime"
	"sync"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps goroutines; the page set is a handful of small files.
	MaxWorkers = 8
)

// ResolveWorkers determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// pageJob is the outcome of building one page.
type pageJob struct {
	page ProducedPage
	err  error
}

// buildBatch runs build for every name on at most workers goroutines.
// Results are indexed by position in names, so order never depends on scheduling.
func buildBatch(ctx context.Context, names []string, workers int, build func(context.Context, string) (ProducedPage, error)) []pageJob {
	if len(names) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < MinWorkers {
		concurrency = MinWorkers
	}
	if concurrency > len(names) {
		concurrency = len(names)
	}

	results := make([]pageJob, len(names))
	var wg sync.WaitGroup
	jobs := make(chan int, len(names))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = pageJob{err: err}
					continue
				}
				page, err := build(ctx, names[idx])
				results[idx] = pageJob{page: page, err: err}
			}
		}()
	}

	for i := range names {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
