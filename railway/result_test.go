package railway_test

import (
	"testing"

	"github.com/railwerk/ops/railway"
)

func TestApplyChanges_EmptyDeltaIsIdentity(t *testing.T) {
	r := railway.Result{
		Params:  railway.Params{"a"},
		Context: railway.NewContext(railway.KV{Key: "k", Value: 1}),
		Faults:  []railway.Fault{{Code: "x"}},
	}
	out := railway.ApplyChanges(r, railway.Delta{})
	if out.Context.Len() != r.Context.Len() || len(out.Params) != len(r.Params) || len(out.Faults) != len(r.Faults) {
		t.Errorf("expected ApplyChanges(r, {}) == r, got %+v", out)
	}
}

func TestMerge_PreservesOperationOfLeftSide(t *testing.T) {
	opA := railway.ParamsOnly1("a", func(p0 railway.Value) railway.Outcome { return railway.Ok() })
	opB := railway.ParamsOnly1("b", func(p0 railway.Value) railway.Outcome { return railway.Ok() })

	left := railway.Result{Operation: opA}
	right := railway.Result{Operation: opB}

	out := railway.Merge(left, right)
	if out.Operation != opA {
		t.Errorf("expected merged operation to be the left side's, got %v", out.Operation)
	}
}

func TestMerge_ShortcutFirstNonNilWins(t *testing.T) {
	sc := railway.ParamsOnly1("sc", func(p0 railway.Value) railway.Outcome { return railway.Ok() })

	left := railway.Result{Shortcut: sc}
	right := railway.Result{Shortcut: railway.ParamsOnly1("other", func(p0 railway.Value) railway.Outcome { return railway.Ok() })}

	out := railway.Merge(left, right)
	if out.Shortcut != sc {
		t.Errorf("expected left's shortcut to win when both set")
	}

	out2 := railway.Merge(railway.Result{}, right)
	if out2.Shortcut != right.Shortcut {
		t.Errorf("expected right's shortcut to win when left unset")
	}
}

func TestMerge_ParamsAdoptOtherUnlessEmpty(t *testing.T) {
	left := railway.Result{Params: railway.Params{"keep"}}
	emptyOther := railway.Result{}
	out := railway.Merge(left, emptyOther)
	if len(out.Params) != 1 || out.Params[0] != "keep" {
		t.Errorf("expected left's params kept when other's is empty, got %+v", out.Params)
	}

	nonEmptyOther := railway.Result{Params: railway.Params{"replace"}}
	out2 := railway.Merge(left, nonEmptyOther)
	if len(out2.Params) != 1 || out2.Params[0] != "replace" {
		t.Errorf("expected other's params adopted, got %+v", out2.Params)
	}
}

func TestMerge_ContextUnionOtherWinsConflicts(t *testing.T) {
	left := railway.Result{Context: railway.NewContext(railway.KV{Key: "a", Value: 1}, railway.KV{Key: "b", Value: 2})}
	right := railway.Result{Context: railway.NewContext(railway.KV{Key: "b", Value: 3}, railway.KV{Key: "c", Value: 4})}

	out := railway.Merge(left, right)
	a, _ := out.Context.Get("a")
	b, _ := out.Context.Get("b")
	c, _ := out.Context.Get("c")
	if a != 1 || b != 3 || c != 4 {
		t.Errorf("expected union with other winning conflicts, got a=%v b=%v c=%v", a, b, c)
	}
}

func TestMerge_FaultsAndCallbacksConcatenate(t *testing.T) {
	left := railway.Result{Faults: []railway.Fault{{Code: "a"}}}
	right := railway.Result{Faults: []railway.Fault{{Code: "b"}}}
	out := railway.Merge(left, right)
	if len(out.Faults) != 2 {
		t.Fatalf("expected 2 faults, got %d", len(out.Faults))
	}
}

func TestMerge_EmptyResultIsIdentity(t *testing.T) {
	r := railway.Result{
		Params:  railway.Params{"a"},
		Context: railway.NewContext(railway.KV{Key: "k", Value: 1}),
	}
	out := railway.Merge(r, railway.Result{})
	if len(out.Params) != 1 || out.Params[0] != "a" {
		t.Errorf("expected params preserved by merging with an empty result, got %+v", out.Params)
	}
	if out.Context.Len() != 1 {
		t.Errorf("expected context preserved, got %+v", out.Context)
	}
}

func TestResult_SuccessFailurePredicates(t *testing.T) {
	success := railway.Result{}
	if !success.Success() || success.Failure() {
		t.Errorf("expected empty-Faults Result to be Success")
	}
	failure := railway.Result{Faults: []railway.Fault{{Code: "x"}}}
	if failure.Success() || !failure.Failure() {
		t.Errorf("expected non-empty-Faults Result to be Failure")
	}
}

func TestToContext_WrapsContextOnSuccessFaultsOnFailure(t *testing.T) {
	success := railway.Result{Context: railway.NewContext(railway.KV{Key: "k", Value: 1})}
	ctx, faults := success.ToContext()
	if faults != nil {
		t.Errorf("expected nil faults on success")
	}
	if v, _ := ctx.Get("k"); v != 1 {
		t.Errorf("expected context to carry through, got %v", v)
	}

	failure := railway.Result{Faults: []railway.Fault{{Code: "x"}}}
	_, faults2 := failure.ToContext()
	if len(faults2) != 1 {
		t.Errorf("expected faults to carry through on failure")
	}
}
