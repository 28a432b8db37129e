package pipeline

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/graph"
)

// Result is the outcome of one configuration in a batch.
type Result struct {
	Resolution common.Resolution
	Graph      *graph.Graph
	Err        error
}

// CompileAll configures one independent graph per resolution on a bounded worker pool. Every configuration owns its
// context, so no state is shared between tasks.
//
// Parameters:
//   - p: the policy applied to every resolution
//   - resolutions: the resolutions to configure
//   - workers: the maximum number of concurrent configurations, at least 1
//   - opts: options forwarded to every configuration context
//
// Returns:
//   - []Result: one result per resolution, in input order
func CompileAll(p Policy, resolutions []common.Resolution, workers int, opts ...graph.ContextBuilderOption) []Result {
	results := make([]Result, len(resolutions))
	if len(resolutions) == 0 {
		return results
	}
	workers = max(1, min(workers, len(resolutions)))
	pool := worker.NewDynamicWorkerPool(workers, len(resolutions), 1*time.Second)

	var wg sync.WaitGroup
	for i, res := range resolutions {
		wg.Add(1)
		id, r := i, res
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				g, err := Configure(r, p, opts...)
				// each task writes only its own slot
				results[id] = Result{Resolution: r, Graph: g, Err: err}
				return g, err
			},
		})
	}
	wg.Wait()
	return results
}
