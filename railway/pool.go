package railway

import (
	"sync"

	"github.com/railwerk/ops/worker"
)

// defaultCallbackPool lazily builds the process-wide fallback pool used by
// Transaction combinators that were not given an explicit WithPool. Size
// comes from CALLBACK_THREADS (worker.ThreadsFromEnv). A malformed value is
// cached and returned on every call, so a misconfigured environment fails
// every async Transaction the same descriptive way instead of silently
// degrading to one worker.
var (
	defaultPoolOnce sync.Once
	defaultPool     *worker.Pool[Result]
	defaultPoolErr  error
)

func defaultCallbackPool() (*worker.Pool[Result], error) {
	defaultPoolOnce.Do(func() {
		n, err := worker.ThreadsFromEnv("CALLBACK_THREADS")
		if err != nil {
			defaultPoolErr = err
			return
		}
		pool, err := worker.New[Result](n)
		if err != nil {
			defaultPoolErr = err
			return
		}
		defaultPool = pool
	})
	return defaultPool, defaultPoolErr
}
