// Package parallel splits index ranges across goroutines once a loop is
// large enough to be worth it.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/YuminosukeSato/primer/pkg/errors"
)

// DefaultThreshold is the amount of work (cells touched) below which For
// runs sequentially.
const DefaultThreshold = 1000

var threshold atomic.Int64

func init() {
	threshold.Store(DefaultThreshold)
}

// SetThreshold changes the process-wide threshold. Zero makes every
// non-trivial loop parallel.
func SetThreshold(n int) error {
	if n < 0 {
		return errors.NewValidationError("parallel_threshold", "must not be negative", n)
	}
	threshold.Store(int64(n))
	return nil
}

// Threshold returns the current threshold.
func Threshold() int {
	return int(threshold.Load())
}

// For calls fn over [0, items) in contiguous chunks. work is the size of
// the whole loop, e.g. rows*cols; when it does not exceed the threshold,
// fn is called once with (0, items) on the calling goroutine.
// fn must only write to state owned by its own range.
func For(items, work int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if work <= Threshold() || items == 1 {
		fn(0, items)
		return
	}
	run(items, runtime.GOMAXPROCS(0), fn)
}

func run(items, workers int, fn func(start, end int)) {
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
