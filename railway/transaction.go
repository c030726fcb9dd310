package railway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/railwerk/ops/observability"
	"github.com/railwerk/ops/worker"
)

// CallbackMode selects whether Transaction's on_success callbacks run
// synchronously after commit or are dispatched onto the shared worker pool.
// The mode is captured once per Transaction, at construction time, rather
// than read from ambient process-wide state at schedule time.
type CallbackMode int

const (
	// CallbackSync runs on_success callbacks on the calling goroutine,
	// blocking Transaction.Call until every one has completed.
	CallbackSync CallbackMode = iota
	// CallbackAsync submits on_success callbacks to the shared worker pool
	// and returns pending Callback handles without waiting for them.
	CallbackAsync
)

// TransactionOption configures a Transaction combinator.
type TransactionOption func(*transaction)

// WithOnSuccess appends callbacks invoked, in order, after a successful
// commit.
func WithOnSuccess(callbacks ...Component) TransactionOption {
	return func(t *transaction) { t.onSuccess = append(t.onSuccess, callbacks...) }
}

// WithOnFailure appends callbacks invoked, in order, after a rollback.
func WithOnFailure(callbacks ...Component) TransactionOption {
	return func(t *transaction) { t.onFailure = append(t.onFailure, callbacks...) }
}

// WithCallbackMode sets the sync/async dispatch mode. Defaults to
// CallbackSync.
func WithCallbackMode(mode CallbackMode) TransactionOption {
	return func(t *transaction) { t.mode = mode }
}

// WithPool supplies the shared worker pool used for CallbackAsync. If not
// given, Transaction lazily builds one sized from CALLBACK_THREADS.
func WithPool(pool *worker.Pool[Result]) TransactionOption {
	return func(t *transaction) { t.pool = pool }
}

// WithObserver attaches an observability.Observer for transaction.* and
// callback.* events. Defaults to observability.NoOpObserver{}.
func WithObserver(obs observability.Observer) TransactionOption {
	return func(t *transaction) { t.observer = obs }
}

// transaction wraps one child in a database transaction and orchestrates
// its on_success/on_failure callbacks.
type transaction struct {
	name      string
	child     Component
	tx        TxManager
	onSuccess []Component
	onFailure []Component
	mode      CallbackMode
	pool      *worker.Pool[Result]
	observer  observability.Observer
}

// Transaction builds the combinator that runs child inside tx's
// requires_new transaction scope, committing on success and scheduling
// on_success callbacks, or rolling back and running on_failure callbacks.
func Transaction(name string, tx TxManager, child Component, opts ...TransactionOption) Component {
	t := &transaction{name: name, child: child, tx: tx, observer: observability.NoOpObserver{}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *transaction) Name() string         { return t.name }
func (t *transaction) Signature() Signature { return t.child.Signature() }

func (t *transaction) Call(params Params, ctx Context) Result {
	scopeID := uuid.NewString()
	ctxBg := context.Background()

	t.observer.OnEvent(ctxBg, observability.Event{
		Type:      EventTransactionOpen,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    t.name,
		Data:      map[string]any{"scope_id": scopeID},
	})

	var result Result
	rolledBack := false
	err := t.tx.Transaction(ctxBg, func(scope TxScope) {
		childResult := t.child.Call(params, ctx)

		switch {
		case childResult.Shortcutted():
			result = childResult

		case childResult.Failure():
			scope.Rollback()
			t.observer.OnEvent(ctxBg, observability.Event{
				Type:      EventTransactionRollback,
				Level:     observability.LevelWarning,
				Timestamp: time.Now(),
				Source:    t.name,
				Data:      map[string]any{"scope_id": scopeID, "fault_count": len(childResult.Faults)},
			})
			result = childResult
			rolledBack = true

		default:
			result = childResult
			scope.AfterCommit(func() {
				t.observer.OnEvent(ctxBg, observability.Event{
					Type:      EventTransactionCommit,
					Level:     observability.LevelInfo,
					Timestamp: time.Now(),
					Source:    t.name,
					Data:      map[string]any{"scope_id": scopeID},
				})
			})
			scope.AfterCommit(func() {
				result = t.scheduleOnSuccess(childResult, scopeID, ctxBg)
			})
		}
	})
	if err != nil {
		return Result{Operation: t, Faults: []Fault{{Message: fmt.Sprintf("transaction manager error: %v", err)}}}
	}
	if rolledBack {
		result = t.runOnFailure(result)
	}

	result.Operation = t
	return result
}

// runOnFailure invokes every on_failure callback in order: a (1,
// false)-signature callback gets the legacy single-Result call; any other
// shape gets the child's params plus the Result appended, with the child's
// context.
func (t *transaction) runOnFailure(childResult Result) Result {
	acc := childResult
	for _, cb := range t.onFailure {
		sig := cb.Signature()
		var r Result
		if sig.Arity == 1 && !sig.AcceptsContext {
			r = cb.Call(Params{childResult}, Context{})
		} else {
			p := append(Params{}, childResult.Params...)
			p = append(p, childResult)
			r = cb.Call(p, childResult.Context)
		}
		acc.OnFailure = append(acc.OnFailure, r)
	}
	return acc
}

func (t *transaction) callOnSuccess(cb Component, childResult Result) (res Result, panicVal any) {
	defer func() {
		if r := recover(); r != nil {
			panicVal = r
		}
	}()
	res = cb.Call(childResult.Params, childResult.Context)
	return
}

// scheduleOnSuccess runs or submits each on_success callback per the
// captured CallbackMode.
func (t *transaction) scheduleOnSuccess(childResult Result, scopeID string, ctxBg context.Context) Result {
	acc := childResult

	for _, cb := range t.onSuccess {
		cb := cb
		t.observer.OnEvent(ctxBg, observability.Event{
			Type:      EventCallbackSchedule,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    t.name,
			Data:      map[string]any{"scope_id": scopeID, "component": cb.Name(), "mode": t.mode},
		})

		switch t.mode {
		case CallbackAsync:
			pool, err := t.poolOrDefault()
			if err != nil {
				acc.Faults = append(acc.Faults, Fault{
					Producer: t,
					Code:     CodeInvalid,
					Message:  fmt.Sprintf("callback pool unavailable: %v", err),
				})
				continue
			}
			handle := pool.Submit(func() Result {
				res, panicVal := t.callOnSuccess(cb, childResult)
				if panicVal != nil {
					// Re-raise on a detached goroutine so external error
					// tracking observes it; the pipeline itself proceeds
					// with a Fault-carrying Result.
					go func(p any) { panic(p) }(panicVal)
					res = Result{Operation: cb, Faults: []Fault{{Message: fmt.Sprintf("panic: %v", panicVal)}}}
				}
				t.observer.OnEvent(ctxBg, observability.Event{
					Type:      EventCallbackComplete,
					Level:     observability.LevelVerbose,
					Timestamp: time.Now(),
					Source:    t.name,
					Data:      map[string]any{"scope_id": scopeID, "component": cb.Name(), "mode": "async"},
				})
				return res
			})
			acc.OnSuccess = append(acc.OnSuccess, PendingCallback(handle.ID(), handle.Await))

		default:
			res, panicVal := t.callOnSuccess(cb, childResult)
			if panicVal != nil {
				panic(panicVal) // sync mode: nothing to detach to, propagate normally
			}
			t.observer.OnEvent(ctxBg, observability.Event{
				Type:      EventCallbackComplete,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    t.name,
				Data:      map[string]any{"scope_id": scopeID, "component": cb.Name(), "mode": "sync"},
			})
			acc.OnSuccess = append(acc.OnSuccess, ResolvedCallback(uuid.NewString(), res))
		}
	}

	return acc
}

func (t *transaction) poolOrDefault() (*worker.Pool[Result], error) {
	if t.pool != nil {
		return t.pool, nil
	}
	pool, err := defaultCallbackPool()
	if err != nil {
		return nil, err
	}
	t.pool = pool
	return pool, nil
}
