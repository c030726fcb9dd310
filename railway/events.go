package railway

import "github.com/railwerk/ops/observability"

// Observability event types emitted by Transaction, the only combinator
// that currently carries an Observer.
const (
	EventTransactionOpen     observability.EventType = "transaction.open"
	EventTransactionCommit   observability.EventType = "transaction.commit"
	EventTransactionRollback observability.EventType = "transaction.rollback"
	EventCallbackSchedule    observability.EventType = "callback.schedule"
	EventCallbackComplete    observability.EventType = "callback.complete"
)
