package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"privacyguard/pkg/domain"
	"privacyguard/pkg/record"
)

// BatchItem pairs a record with the context it should be processed under.
type BatchItem struct {
	Record  *record.Record
	Context domain.ProcessingContext
}

// BatchResult carries the outcome for one batch position. Err is per-item;
// one failing record does not fail its neighbors.
type BatchResult struct {
	Index  int
	Result *ProcessingResult
	Err    error
}

// ProcessBatch runs Process over items on a bounded worker pool. Key
// derivation makes each pass CPU-heavy, so workers defaults to the number of
// schedulable CPUs when non-positive. Results are returned in input order.
// The only group-level failure is context cancellation; everything else is
// reported per item.
func (e *Engine) ProcessBatch(ctx context.Context, items []BatchItem, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return err
			}
			res, err := e.Process(ctx, item.Record, item.Context)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
