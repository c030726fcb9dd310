package config

// WorkerConfig holds the size of the shared callback worker pool, with a
// zero Threads standing for CALLBACK_THREADS-based sizing. No code in this
// module reads it: worker.New takes its size directly and rejects zero, and
// railway's default pool reads CALLBACK_THREADS itself.
type WorkerConfig struct {
	Threads int `json:"threads"`
}

// DefaultWorkerConfig defers sizing entirely to CALLBACK_THREADS.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{Threads: 0}
}

func (c *WorkerConfig) Merge(source *WorkerConfig) {
	if source.Threads > 0 {
		c.Threads = source.Threads
	}
}
