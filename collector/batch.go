package collector

import (
	"context"
	"sync"

	"github.com/dxpr/content-intel/entity"
)

// BatchResult aggregates per-entity reports from one batch request, keyed by
// "entityType/id". Failed entities land in Errors under the same key.
type BatchResult struct {
	Reports map[string]*Report `json:"reports"`
	Errors  map[string]string  `json:"errors,omitempty"`
}

type batchJob struct {
	key string
	e   entity.Entity
}

type batchOutcome struct {
	key    string
	report *Report
	err    error
}

// CollectMany collects reports for several entities concurrently. Entities
// are independent, so the batch fans out over a bounded worker pool; the
// result is assembled deterministically by key regardless of completion
// order, and one entity's failure never affects the others.
func (c *Collector) CollectMany(ctx context.Context, entities []entity.Entity, fieldFilter, pluginFilter []string) *BatchResult {
	result := &BatchResult{
		Reports: make(map[string]*Report, len(entities)),
		Errors:  make(map[string]string),
	}
	if len(entities) == 0 {
		return result
	}

	workers := c.opts.BatchWorkers
	if workers > len(entities) {
		workers = len(entities)
	}

	jobs := make(chan batchJob)
	outcomes := make(chan batchOutcome, len(entities))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				report, err := c.Collect(ctx, job.e, fieldFilter, pluginFilter)
				outcomes <- batchOutcome{key: job.key, report: report, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, e := range entities {
			if e == nil {
				continue
			}
			select {
			case jobs <- batchJob{key: e.EntityType() + "/" + e.ID(), e: e}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		if outcome.err != nil {
			result.Errors[outcome.key] = outcome.err.Error()
			continue
		}
		result.Reports[outcome.key] = outcome.report
	}
	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result
}
