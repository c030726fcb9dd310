package observability

import "context"

// LevelFilterObserver wraps another Observer and only forwards events at or
// above a minimum Level. This lets a Transaction's verbose
// callback.schedule/callback.complete events be suppressed in production
// while transaction.commit/transaction.rollback (LevelInfo/LevelWarning)
// still reach the underlying Observer.
type LevelFilterObserver struct {
	next Observer
	min  Level
}

// NewLevelFilterObserver wraps next, dropping events whose Level is below
// min before they reach it.
func NewLevelFilterObserver(next Observer, min Level) *LevelFilterObserver {
	return &LevelFilterObserver{next: next, min: min}
}

func (f *LevelFilterObserver) OnEvent(ctx context.Context, event Event) {
	if event.Level < f.min {
		return
	}
	f.next.OnEvent(ctx, event)
}
