// Package workers fans independent engine requests out over a bounded number
// of goroutines.
package workers

import (
	"context"
	"fmt"
	"sync"

	"github.com/aristath/mentor/internal/engine"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a non-positive worker count is requested.
const DefaultWorkers = 10

// ProgressCallback is called once per completed request. Calls are serialised.
type ProgressCallback func(current, total int, message string)

// Ranker ranks candidates for one request.
type Ranker interface {
	Rank(ctx context.Context, req engine.RankRequest) (*engine.RankResponse, error)
}

// Analyzer corrects a verdict for one instrument.
type Analyzer interface {
	Analyze(ctx context.Context, req engine.AnalyzeRequest) (*engine.AnalyzeResponse, error)
}

// RankOutcome pairs a ranking response with its error.
type RankOutcome struct {
	Response *engine.RankResponse
	Err      error
}

// AnalyzeOutcome pairs an analysis response with its error.
type AnalyzeOutcome struct {
	Response *engine.AnalyzeResponse
	Err      error
}

// WorkerPool runs independent requests with bounded concurrency.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// Workers returns the concurrency limit.
func (p *WorkerPool) Workers() int {
	return p.numWorkers
}

// RankBatch ranks every request. Outcomes are in request order; one failing
// request does not stop the others.
func (p *WorkerPool) RankBatch(ctx context.Context, r Ranker, reqs []engine.RankRequest, progress ProgressCallback) []RankOutcome {
	outcomes := make([]RankOutcome, len(reqs))
	p.run(ctx, len(reqs), progress, "Ranking", func(ctx context.Context, i int) {
		resp, err := r.Rank(ctx, reqs[i])
		outcomes[i] = RankOutcome{Response: resp, Err: err}
	}, func(i int, err error) {
		outcomes[i] = RankOutcome{Err: err}
	})
	return outcomes
}

// AnalyzeBatch analyses every request. Outcomes are in request order.
func (p *WorkerPool) AnalyzeBatch(ctx context.Context, a Analyzer, reqs []engine.AnalyzeRequest, progress ProgressCallback) []AnalyzeOutcome {
	outcomes := make([]AnalyzeOutcome, len(reqs))
	p.run(ctx, len(reqs), progress, "Analyzing", func(ctx context.Context, i int) {
		resp, err := a.Analyze(ctx, reqs[i])
		outcomes[i] = AnalyzeOutcome{Response: resp, Err: err}
	}, func(i int, err error) {
		outcomes[i] = AnalyzeOutcome{Err: err}
	})
	return outcomes
}

// run executes job for indexes [0, total). Jobs that have not started when ctx
// is cancelled get the context error through skip.
func (p *WorkerPool) run(
	ctx context.Context,
	total int,
	progress ProgressCallback,
	verb string,
	job func(ctx context.Context, i int),
	skip func(i int, err error),
) {
	if total == 0 {
		return
	}

	var (
		g         errgroup.Group
		mu        sync.Mutex
		completed int
	)
	g.SetLimit(p.numWorkers)

	for i := 0; i < total; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				skip(i, err)
			} else {
				job(ctx, i)
			}

			if progress != nil {
				mu.Lock()
				completed++
				progress(completed, total, fmt.Sprintf("%s request %d of %d", verb, completed, total))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
}
