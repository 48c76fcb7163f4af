package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/cfreplace/internal/logging"
)

// Runner orchestrates batch application using a Pipeline.
type Runner struct {
	// Pipeline handles per-job processing with safety guarantees.
	Pipeline *Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers jobs under opts.Paths and processes them.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	jobs, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunJobs(ctx, jobs, opts.Jobs)
}

// RunJobs processes jobs concurrently on at most workers goroutines
// (0 or negative means runtime.NumCPU()). Outcomes keep the order of jobs
// regardless of completion order.
func (r *Runner) RunJobs(ctx context.Context, jobs []Job, workers int) (*Result, error) {
	result := &Result{
		Outcomes: make([]Outcome, 0, len(jobs)),
		Stats:    Stats{JobsTotal: len(jobs)},
	}

	if len(jobs) == 0 {
		return result, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(jobs))

	logging.FromContext(ctx).Debug("running jobs",
		logging.FieldJobsTotal, len(jobs),
		logging.FieldJobs, workers,
	)

	type indexed struct {
		index   int
		outcome Outcome
	}

	workCh := make(chan int)
	outCh := make(chan indexed)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				outcome := r.process(ctx, jobs[i])
				select {
				case <-ctx.Done():
					return
				case outCh <- indexed{index: i, outcome: outcome}:
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for i := range jobs {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make([]*Outcome, len(jobs))
	for item := range outCh {
		outcomes[item.index] = &item.outcome
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) process(ctx context.Context, job Job) Outcome {
	outcome := Outcome{Job: job}

	jr, err := r.Pipeline.ProcessJob(ctx, job)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = jr
	}

	return outcome
}
