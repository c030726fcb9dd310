// Package jobs specifies the background job enqueuing egress interface.
// The core railway package never imports this package — an
// operation class wanting deferred execution takes an Enqueuer as a
// dependency and calls it explicitly, the same way railway.TxManager is
// handed to Transaction rather than constructed internally.
package jobs

import (
	"context"

	"github.com/railwerk/ops/railway"
)

// Handle identifies a previously enqueued job.
type Handle struct {
	ID string
}

// Enqueuer schedules a deferred invocation of an operation class by name
// and returns a handle with a stable identifier.
type Enqueuer interface {
	Enqueue(ctx context.Context, operation, method string, params railway.Params, ctxData railway.Context) (Handle, error)
}
