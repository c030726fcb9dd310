package worker_test

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/railwerk/ops/worker"
)

func TestPool_SubmitAwaitReturnsValue(t *testing.T) {
	pool, err := worker.New[int](2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pool.Shutdown(time.Second)

	h := pool.Submit(func() int { return 42 })
	if got := h.Await(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestPool_AwaitIsIdempotent(t *testing.T) {
	pool, err := worker.New[string](1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pool.Shutdown(time.Second)

	h := pool.Submit(func() string { return "done" })
	first := h.Await()
	second := h.Await()
	if first != second {
		t.Errorf("expected repeated Await to return the same value, got %q and %q", first, second)
	}
}

func TestNew_RejectsNonPositiveSize(t *testing.T) {
	if _, err := worker.New[int](0); err == nil {
		t.Errorf("expected an error for size 0")
	}
	if _, err := worker.New[int](-1); err == nil {
		t.Errorf("expected an error for a negative size")
	}
}

func TestThreadsFromEnv_DefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("WORKER_TEST_THREADS")
	n, err := worker.ThreadsFromEnv("WORKER_TEST_THREADS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected default of 1, got %d", n)
	}
}

func TestThreadsFromEnv_RejectsInvalidValue(t *testing.T) {
	os.Setenv("WORKER_TEST_THREADS", "not-a-number")
	defer os.Unsetenv("WORKER_TEST_THREADS")

	if _, err := worker.ThreadsFromEnv("WORKER_TEST_THREADS"); err == nil {
		t.Errorf("expected an error for a non-integer value")
	}
}

func TestThreadsFromEnv_RejectsZeroOrNegative(t *testing.T) {
	os.Setenv("WORKER_TEST_THREADS", "0")
	defer os.Unsetenv("WORKER_TEST_THREADS")

	if _, err := worker.ThreadsFromEnv("WORKER_TEST_THREADS"); err == nil {
		t.Errorf("expected an error for zero")
	}
}

func TestPool_ShutdownIsIdempotent(t *testing.T) {
	pool, err := worker.New[int](1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pool.Shutdown(time.Second)
	pool.Shutdown(time.Second)
}

func TestPool_ConcurrentSubmitAndShutdownDoesNotPanic(t *testing.T) {
	pool, err := worker.New[int](2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			h := pool.Submit(func() int { return n })
			h.Await()
		}(i)
	}

	pool.Shutdown(time.Second)
	wg.Wait()
}
