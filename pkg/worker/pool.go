package worker

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"leadrelay/internal/logger"
	pkgerrors "leadrelay/pkg/errors"
	"leadrelay/pkg/metrics"
)

var (
	ErrQueueFull  = errors.New("worker queue is full")
	ErrPoolClosed = errors.New("worker pool is closed")
)

// Task is a unit of detached background work. ID is used for logging only.
type Task struct {
	ID  string
	Run func(ctx context.Context)
}

// Pool runs tasks on a fixed set of workers fed by a bounded queue.
// Submit never blocks: when the queue is full the task is rejected,
// which gives the HTTP layer an explicit admission-control signal
// instead of spawning an unbounded number of goroutines.
type Pool struct {
	workers int
	tasks   chan Task
	log     logger.Logger

	mu     sync.RWMutex
	closed bool
	group  *errgroup.Group
}

func NewPool(workers, queueSize int, log logger.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, queueSize),
		log:     log,
	}
}

// Start launches the workers. Workers drain the queue until it is
// closed or ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	g, gCtx := errgroup.WithContext(ctx)
	p.mu.Lock()
	p.group = g
	p.mu.Unlock()

	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return gCtx.Err()
				case task, ok := <-p.tasks:
					if !ok {
						return nil
					}
					metrics.WorkerQueueDepth.Set(float64(len(p.tasks)))
					p.runTask(gCtx, task)
				}
			}
		})
	}
}

// Submit enqueues a task without blocking. It returns ErrQueueFull
// when the queue has no capacity and ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		metrics.WorkerQueueDepth.Set(float64(len(p.tasks)))
		return nil
	default:
		metrics.WorkerTasksRejectedTotal.Inc()
		return ErrQueueFull
	}
}

// QueueDepth reports the number of tasks currently waiting.
func (p *Pool) QueueDepth() int {
	return len(p.tasks)
}

// Shutdown stops accepting tasks and waits for in-flight and queued
// tasks to finish, or for ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	g := p.group
	p.mu.Unlock()

	if g == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}

func (p *Pool) runTask(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			err := pkgerrors.RecoverPanic(r)
			p.log.Errorw("Background task panicked",
				"task_id", task.ID,
				"error", err,
			)
		}
	}()
	task.Run(ctx)
}
