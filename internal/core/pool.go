package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gmodtools/swepscan/internal/classifier"
	"github.com/gmodtools/swepscan/internal/extract"
	"github.com/gmodtools/swepscan/pkg/models"
)

// cacheOutcome is one worker's result for one cache file. Workers never
// touch the aggregate; everything they learn travels through this struct.
type cacheOutcome struct {
	path      string
	outcome   models.DecodeOutcome
	extracted *extract.Result
}

// processCacheBatch decodes cache candidates on a bounded worker pool and
// drains outcomes on the calling goroutine. A batch that exceeds its time
// budget is abandoned: remaining tasks are counted incomplete, never
// reported as errors.
func (o *Orchestrator) processCacheBatch(ctx context.Context, files []models.CandidateFile) error {
	workers := o.config.WorkerCount()
	if workers > len(files) {
		workers = len(files)
	}

	poolCtx, cancelPool := context.WithCancel(ctx)
	defer cancelPool()

	tasks := make(chan models.CandidateFile, len(files))
	for _, cf := range files {
		tasks <- cf
	}
	close(tasks)

	// Buffered to capacity so abandoned workers can always finish their
	// in-flight send and exit.
	outcomes := make(chan cacheOutcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go o.cacheWorker(poolCtx, &wg, tasks, outcomes)
	}

	batchCtx, cancelBatch := context.WithTimeout(ctx, o.config.BatchBudget())
	defer cancelBatch()

	received := 0
	for received < len(files) {
		select {
		case out := <-outcomes:
			received++
			o.absorbCacheOutcome(out)
			o.reportProgress(models.PhaseCacheDirectories, received, len(files), out.path)

			if o.cancelled() {
				o.results.Cancelled = true
				o.abandonBatch(len(files)-received, "cancelled")
				cancelPool()
				wg.Wait()
				return nil
			}

		case <-batchCtx.Done():
			o.abandonBatch(len(files)-received, "batch timeout")
			cancelPool()
			wg.Wait()
			return nil
		}
	}

	wg.Wait()
	return nil
}

// cacheWorker decodes and extracts; pure work only, no aggregate access.
func (o *Orchestrator) cacheWorker(ctx context.Context, wg *sync.WaitGroup, tasks <-chan models.CandidateFile, outcomes chan<- cacheOutcome) {
	defer wg.Done()

	for cf := range tasks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		out := cacheOutcome{path: cf.Path}
		out.outcome = o.cascade.Decode(ctx, cf.Path)

		if !out.outcome.Empty() && classifier.IsWeaponScript(out.outcome.Text) {
			out.extracted = extract.Extract(out.outcome.Text, cf.Path)
		}

		outcomes <- out
	}
}

// absorbCacheOutcome merges one drained outcome into the aggregate.
func (o *Orchestrator) absorbCacheOutcome(out cacheOutcome) {
	o.results.Stats.FilesProcessed++
	o.results.Stats.CacheFilesProcessed++

	if out.outcome.Empty() {
		// Nothing recoverable. A full-budget miss most likely means every
		// strategy ran out of time rather than out of input.
		if out.outcome.Elapsed >= o.config.DecodeBudget() {
			o.results.Stats.DecodeTimeouts++
		}
		return
	}

	o.logger.Debug("Cache file decoded",
		zap.String("path", out.path),
		zap.String("strategy", string(out.outcome.Strategy)),
		zap.Duration("elapsed", out.outcome.Elapsed))

	o.merge(out.extracted)
}

// abandonBatch accounts for tasks that will never be drained.
func (o *Orchestrator) abandonBatch(remaining int, reason string) {
	if remaining <= 0 {
		return
	}
	o.results.Stats.IncompleteTasks += remaining
	o.logger.Warn("Abandoning cache batch",
		zap.Int("remaining", remaining),
		zap.String("reason", reason),
		zap.Duration("budget", o.config.BatchBudget()))
}
