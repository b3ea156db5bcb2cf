package services

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/kenjikellens/ivids-core/internal/errors"
	"github.com/kenjikellens/ivids-core/internal/logger"
	"github.com/kenjikellens/ivids-core/internal/models"
)

type workerJob struct {
	name string
	fn   func(ctx context.Context)
	done chan struct{}
}

// Worker runs submitted jobs one at a time, in submission order, on a single
// goroutine. Every job receives the worker's base context, which is cancelled
// by Close.
type Worker struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []workerJob
	pending int
	policy  models.BusyPolicy
	closed  bool

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func NewWorker(ctx context.Context, policy models.BusyPolicy) *Worker {
	if !policy.IsValid() {
		policy = models.BusyPolicyQueue
	}
	base, cancel := context.WithCancel(ctx)
	w := &Worker{
		policy:  policy,
		ctx:     base,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// Submit enqueues fn and returns a channel closed once it has finished or was
// discarded by Close. With BusyPolicyReject a job is refused while another one
// is queued or running.
func (w *Worker) Submit(name string, fn func(ctx context.Context)) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, domainErrors.ErrUpdaterClosed
	}
	if w.policy == models.BusyPolicyReject && w.pending > 0 {
		return nil, domainErrors.ErrOperationInFlight.WithContext("operation", name)
	}

	job := workerJob{name: name, fn: fn, done: make(chan struct{})}
	w.queue = append(w.queue, job)
	w.pending++
	w.cond.Signal()
	return job.done, nil
}

// Busy reports whether a job is queued or running.
func (w *Worker) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending > 0
}

// Close cancels the running job's context, discards queued jobs and waits for
// the worker goroutine to exit. It is safe to call more than once.
func (w *Worker) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		w.cancel()
		w.cond.Broadcast()
	}
	w.mu.Unlock()
	<-w.stopped
}

func (w *Worker) loop() {
	defer close(w.stopped)

	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closed {
			w.cond.Wait()
		}
		if w.closed {
			discarded := w.queue
			w.queue = nil
			w.pending = 0
			w.mu.Unlock()
			for _, j := range discarded {
				close(j.done)
			}
			return
		}
		job := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		w.run(job)

		w.mu.Lock()
		w.pending--
		w.mu.Unlock()
		close(job.done)
	}
}

func (w *Worker) run(job workerJob) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(w.ctx, "worker job panicked", fmt.Errorf("%v", r), "job", job.name)
		}
	}()
	logger.Debug(w.ctx, "worker job started", "job", job.name)
	job.fn(w.ctx)
}
