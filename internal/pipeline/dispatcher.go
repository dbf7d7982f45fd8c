package pipeline

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Task is one image's end-to-end processing, ready to run.
type Task func()

// Dispatcher runs an ordered collection of tasks with bounded
// parallelism: at most N tasks execute at any instant, tasks are
// admitted in submission order, and no task is dropped. There is no
// per-task timeout or cancellation; a hung task occupies one of the N
// slots until it returns.
type Dispatcher struct {
	workers int
	logger  hclog.Logger
}

// NewDispatcher creates a Dispatcher with the given concurrency limit.
func NewDispatcher(workers int, logger hclog.Logger) (*Dispatcher, error) {
	if workers < 1 {
		return nil, fmt.Errorf("concurrency limit must be at least 1, got %d", workers)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Dispatcher{workers: workers, logger: logger}, nil
}

// Run executes every task and blocks until all have completed. A task
// that panics is recorded and the worker keeps serving the queue, so
// every submitted task still runs to completion.
func (d *Dispatcher) Run(tasks []Task) {
	if len(tasks) == 0 {
		return
	}

	workers := d.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	jobs := make(chan Task)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for task := range jobs {
				d.runOne(worker, task)
			}
		}(i)
	}

	// Feed in submission order; the unbuffered channel queues admission
	// until a slot frees up.
	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)
	wg.Wait()
}

// runOne executes a single task, containing any panic that escapes it.
// Tasks built by the orchestrator convert their own faults into
// structured outcomes; this guard only keeps the worker alive.
func (d *Dispatcher) runOne(worker int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("task panicked past its own fault boundary", "worker", worker, "panic", fmt.Sprint(r))
		}
	}()
	task()
}
