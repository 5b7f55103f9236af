// Package background runs fire-and-forget tasks.
//
// Tasks carry no delivery guarantee: a failing task is logged and dropped,
// never retried, and tasks still running when Close gives up are abandoned.
package background

import (
	"context"
	"errors"
	"sync"

	"github.com/dtroode/genoguard-server/internal/logger"
)

// ErrClosed is returned by Go after Close has been called.
var ErrClosed = errors.New("background runner is closed")

// Task is a unit of best-effort work.
type Task func(ctx context.Context) error

// FailureHook observes failed tasks, e.g. for metrics.
type FailureHook func(name string, err error)

// Runner executes tasks on their own goroutines detached from request contexts.
type Runner struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *logger.Logger
	onFail FailureHook

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewRunner creates a Runner. onFail may be nil.
func NewRunner(logger *logger.Logger, onFail FailureHook) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		onFail: onFail,
	}
}

// Go schedules task. It never blocks on the task itself.
func (r *Runner) Go(name string, task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		r.logger.Warn("Background runner: task dropped after close", "task", name)
		return ErrClosed
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("Background runner: task panicked", "task", name, "panic", rec)
				if r.onFail != nil {
					r.onFail(name, errors.New("task panicked"))
				}
			}
		}()

		if err := task(r.ctx); err != nil {
			r.logger.Warn("Background runner: task failed", "task", name, "error", err)
			if r.onFail != nil {
				r.onFail(name, err)
			}
			return
		}
		r.logger.Debug("Background runner: task completed", "task", name)
	}()

	return nil
}

// Wait blocks until every scheduled task has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// Close stops accepting tasks and waits for running ones until ctx is done,
// after which their context is cancelled and they are abandoned.
func (r *Runner) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		return nil
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	}
}
