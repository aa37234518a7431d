package catalog

import (
	"context"

	"github.com/sourcegraph/conc/iter"
)

// Call is one request in a Batch.
type Call func(ctx context.Context) (any, error)

// BatchResult holds the outcome of one Call. Exactly one of Data and Err is set.
type BatchResult struct {
	Data any
	Err  error
}

// Batch runs independent calls concurrently and returns their outcomes in call
// order. A failing call does not cancel the others.
func Batch(ctx context.Context, calls ...Call) []BatchResult {
	results := make([]BatchResult, len(calls))
	iter.ForEachIdx(calls, func(i int, call *Call) {
		data, err := (*call)(ctx)
		if err != nil {
			results[i] = BatchResult{Err: err}
			return
		}
		results[i] = BatchResult{Data: data}
	})
	return results
}
