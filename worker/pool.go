// Package worker provides a small bounded goroutine pool used to dispatch
// asynchronous callbacks off the calling goroutine. It is generic over the
// task's result type so the railway package can submit
// railway.Result-producing callbacks without worker importing railway
// (that would create an import cycle).
package worker

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle is a pending unit of work submitted to a Pool. Await blocks until
// the task completes and returns its value; calling Await more than once is
// safe and always returns the same value.
type Handle[T any] struct {
	id   string
	done chan struct{}
	val  T
}

// ID returns the handle's stable identifier, assigned at submission time.
func (h *Handle[T]) ID() string { return h.id }

// Await blocks until the task backing h completes, then returns its result.
func (h *Handle[T]) Await() T {
	<-h.done
	return h.val
}

// Pool is a fixed-size worker pool with an unbounded queue. Submitted tasks
// run on one of Size goroutines, in no particular inter-task order.
type Pool[T any] struct {
	tasks chan func() T
	size  int

	closeOnce sync.Once
	wg        sync.WaitGroup
	stopped   chan struct{}
}

// New starts a Pool with the given number of worker goroutines. size must be
// positive.
func New[T any](size int) (*Pool[T], error) {
	if size <= 0 {
		return nil, fmt.Errorf("worker: pool size must be positive, got %d", size)
	}
	p := &Pool[T]{
		tasks:   make(chan func() T),
		size:    size,
		stopped: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.loop()
	}
	return p, nil
}

func (p *Pool[T]) loop() {
	defer p.wg.Done()
	for {
		select {
		case fn := <-p.tasks:
			fn()
		case <-p.stopped:
			return
		}
	}
}

// Submit enqueues fn and returns a Handle that resolves to fn's return value
// once a worker picks it up. Submit never blocks the caller beyond handing
// the task to the queue. tasks is never closed, only stopped is: closing
// tasks while a concurrent Submit's send is still selectable would let the
// runtime pick a send-on-closed-channel branch and panic, so Shutdown
// signals purely through stopped and every sender (workers and the
// dispatch goroutine below) treats it as the drain/cutover signal instead.
func (p *Pool[T]) Submit(fn func() T) *Handle[T] {
	h := &Handle[T]{id: uuid.NewString(), done: make(chan struct{})}
	task := func() T {
		defer close(h.done)
		h.val = fn()
		return h.val
	}
	go func() {
		select {
		case p.tasks <- task:
		case <-p.stopped:
			task()
		}
	}()
	return h
}

// Shutdown signals the workers to stop and waits up to timeout for them to
// exit; a worker finishes the task it is running before it exits. Tasks
// still queued, and tasks submitted after Shutdown, run on their own
// dispatch goroutine instead of a worker, and Shutdown does not wait for
// them. It is idempotent: calling it more than once has no further effect
// beyond the first call's wait.
func (p *Pool[T]) Shutdown(timeout time.Duration) {
	p.closeOnce.Do(func() {
		close(p.stopped)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// ThreadsFromEnv reads and validates a positive worker-count from the named
// environment variable, defaulting to 1 when unset. Invalid values
// (non-integer, <= 0) are reported as an error naming the offending value.
func ThreadsFromEnv(name string) (int, error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("worker: %s must be a positive integer, got %q", name, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("worker: %s must be a positive integer, got %d", name, n)
	}
	return n, nil
}
