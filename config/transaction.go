// Package config holds plain structs with JSON tags, a Default...
// constructor, and a Merge method that layers a caller-supplied override on
// top of a base config, non-zero fields winning.
package config

import "log/slog"

// TransactionConfig holds settings for railway.Transaction's callback
// scheduling. No code in this module reads it: railway.Transaction takes
// its settings as railway.TransactionOption values.
//
// Example JSON:
//
//	{"mode": "async", "callback_threads": 4, "observer": "slog"}
type TransactionConfig struct {
	// Mode selects "sync" or "async" callback dispatch. Empty defaults to "sync".
	Mode string `json:"mode"`

	// CallbackThreads sizes the shared worker pool used for async mode.
	// 0 defers to the CALLBACK_THREADS environment variable (default 1).
	CallbackThreads int `json:"callback_threads"`

	// Observer specifies which observability.Observer implementation to use.
	Observer string `json:"observer"`

	// Logger is a logger for diagnostics outside the observer event stream.
	// railway.Transaction itself logs nothing outside its Observer.
	Logger *slog.Logger `json:"-"`
}

// DefaultTransactionConfig returns sync-mode, noop-observer defaults.
func DefaultTransactionConfig() TransactionConfig {
	return TransactionConfig{
		Mode:     "sync",
		Observer: "noop",
		Logger:   slog.Default(),
	}
}

func (c *TransactionConfig) Merge(source *TransactionConfig) {
	if source.Mode != "" {
		c.Mode = source.Mode
	}
	if source.CallbackThreads > 0 {
		c.CallbackThreads = source.CallbackThreads
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.Logger != nil {
		c.Logger = source.Logger
	}
}
