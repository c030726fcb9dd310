package railway_test

import (
	"reflect"
	"testing"

	"github.com/railwerk/ops/railway"
)

func attrs(pairs ...any) railway.Attrs {
	a := railway.Attrs{}
	for i := 0; i+1 < len(pairs); i += 2 {
		a[pairs[i].(string)] = pairs[i+1]
	}
	return a
}

func TestChain_StopsOnFirstFailure(t *testing.T) {
	var enrichCalled bool

	validate := railway.ParamsOnly1("validate", func(p0 railway.Value) railway.Outcome {
		a, _ := p0.(railway.Attrs)
		if a["title"] == "" {
			return railway.FailFault(railway.Fault{Code: railway.CodeBlank, Path: railway.Path{"title"}})
		}
		return railway.Ok()
	})
	enrich := railway.ParamsOnly1("enrich", func(p0 railway.Value) railway.Outcome {
		enrichCalled = true
		return railway.Ok()
	})

	chain := railway.Chain("create_post", validate, enrich)

	r := chain.Call(railway.Params{attrs("title", "", "body", "x")}, railway.Context{})

	if r.Success() {
		t.Fatalf("expected failure, got success")
	}
	if len(r.Faults) != 1 || r.Faults[0].Code != railway.CodeBlank {
		t.Fatalf("unexpected faults: %+v", r.Faults)
	}
	if len(r.Faults[0].Path) != 1 || r.Faults[0].Path[0] != "title" {
		t.Fatalf("unexpected fault path: %+v", r.Faults[0].Path)
	}
	if enrichCalled {
		t.Errorf("enrich should never have been invoked")
	}
}

func TestChain_ShortcutSkipsRemainingChildren(t *testing.T) {
	post := attrs("id", 1)
	var createCalled bool

	findExisting := railway.Shortcut("find_existing",
		railway.ParamsOnly1("find_existing_inner", func(p0 railway.Value) railway.Outcome {
			return railway.OkCtx(railway.NewContext(railway.KV{Key: "post", Value: post}))
		}))
	createNew := railway.ParamsOnly1("create_new", func(p0 railway.Value) railway.Outcome {
		createCalled = true
		return railway.Ok()
	})

	chain := railway.Chain("upsert_post", findExisting, createNew)

	r := chain.Call(railway.Params{attrs("cache_key", "x")}, railway.Context{})

	if r.Failure() {
		t.Fatalf("expected success, got faults: %+v", r.Faults)
	}
	got, ok := r.Context.Get("post")
	if !ok || !reflect.DeepEqual(got, post) {
		t.Fatalf("expected context[post]=%v, got %v (ok=%v)", post, got, ok)
	}
	if createCalled {
		t.Errorf("create_new should never have been invoked")
	}
	if r.Shortcut != findExisting {
		t.Errorf("expected Result.shortcut to be the Shortcut combinator itself")
	}
}

func TestChain_SignatureSkipsLeadingZeroArity(t *testing.T) {
	logStep := railway.Func0("log", func(ctx railway.Context) railway.Outcome { return railway.Ok() })
	validate := railway.ParamsOnly1("validate", func(p0 railway.Value) railway.Outcome { return railway.Ok() })

	chain := railway.Chain("logged_validate", logStep, validate)

	sig := chain.Signature()
	if sig.Arity != 1 || !sig.AcceptsContext {
		t.Errorf("expected signature (1,true) from first param-consuming child, got %+v", sig)
	}
}

func TestChain_SignatureDefaultsToZeroWhenNoChildConsumesParams(t *testing.T) {
	a := railway.Func0("a", func(ctx railway.Context) railway.Outcome { return railway.Ok() })
	b := railway.Func0("b", func(ctx railway.Context) railway.Outcome { return railway.Ok() })

	chain := railway.Chain("all_zero", a, b)
	sig := chain.Signature()
	if sig.Arity != 0 || !sig.AcceptsContext {
		t.Errorf("expected signature (0,true), got %+v", sig)
	}
}
