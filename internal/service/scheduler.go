package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const workerIdleTimeout = time.Minute

type task struct {
	ctx  context.Context
	run  func(ctx context.Context) error
	done chan error
}

// Scheduler serializes work per user: one worker goroutine drains each
// user's queue strictly in order, while different users' tasks run in
// parallel. A failed task is reported to its caller only and never
// stops another user's worker. Workers retire after an idle period so
// a long-lived server does not accumulate a goroutine per user seen.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	idleTimeout time.Duration

	mu     sync.Mutex
	queues map[int64]chan task
}

func NewScheduler(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)

	return &Scheduler{
		ctx:         gctx,
		cancel:      cancel,
		group:       group,
		idleTimeout: workerIdleTimeout,
		queues:      make(map[int64]chan task),
	}
}

// Do runs fn on the user's serial queue and waits for its result. The
// task context derives from the caller's, so deadlines and request
// cancellation reach the task; it is additionally cancelled when the
// scheduler shuts down.
func (s *Scheduler) Do(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	t := task{ctx: taskCtx, run: fn, done: make(chan error, 1)}

	if q := s.enqueue(userID, t); q != nil {
		select {
		case q <- t:
		case <-taskCtx.Done():
			return taskCtx.Err()
		}
	}

	select {
	case err := <-t.done:
		return err
	case <-taskCtx.Done():
		return taskCtx.Err()
	}
}

// enqueue places the task on the user's queue, starting a worker when
// none is running. A nil result means the task was queued; a non-nil
// channel means the queue was full and the caller must block-send.
func (s *Scheduler) enqueue(userID int64, t task) chan task {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[userID]
	if !ok {
		q = make(chan task, 16)
		s.queues[userID] = q
		s.startWorker(userID, q)
	}

	select {
	case q <- t:
		return nil
	default:
		return q
	}
}

// startWorker drains the user's queue in order. Retirement and enqueue
// share the scheduler mutex, so a queue is never unlisted with tasks
// still on it.
func (s *Scheduler) startWorker(userID int64, q chan task) {
	s.group.Go(func() error {
		idle := time.NewTimer(s.idleTimeout)
		defer idle.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return nil
			case t := <-q:
				t.done <- t.run(t.ctx)
				if !idle.Stop() {
					<-idle.C
				}
				idle.Reset(s.idleTimeout)
			case <-idle.C:
				s.mu.Lock()
				if len(q) > 0 {
					s.mu.Unlock()
					idle.Reset(s.idleTimeout)
					continue
				}
				delete(s.queues, userID)
				s.mu.Unlock()
				return nil
			}
		}
	})
}

func (s *Scheduler) Close() error {
	s.cancel()
	return s.group.Wait()
}
