package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"logvault/internal/sentinel"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes     int32
	Errors        int32
	InvalidInputs int32
	Unavailable   int32
	// FirstError is the first unexpected error observed, for failure messages.
	FirstError error
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.InvalidInputs + r.Unavailable
}

// RunConcurrent starts goroutines that all call fn at once (a shared start
// barrier maximises lock contention) and buckets their errors by sentinel.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, invalid, unavail atomic.Int32
	var first atomic.Pointer[error]
	start := make(chan struct{})

	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrInvalidInput):
				invalid.Add(1)
			case errors.Is(err, sentinel.ErrUnavailable):
				unavail.Add(1)
			default:
				errs.Add(1)
				first.CompareAndSwap(nil, &err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	result := &ConcurrentResult{
		Successes:     successes.Load(),
		Errors:        errs.Load(),
		InvalidInputs: invalid.Load(),
		Unavailable:   unavail.Load(),
	}
	if p := first.Load(); p != nil {
		result.FirstError = *p
	}
	return result
}
