package observability

import "context"

// NoOpObserver discards all events with zero overhead. It is Transaction's
// default Observer when WithObserver is not supplied.
type NoOpObserver struct{}

func (NoOpObserver) OnEvent(ctx context.Context, event Event) {}
