package lookup_test

import (
	"context"
	"testing"

	"github.com/railwerk/ops/lookup"
	"github.com/railwerk/ops/railway"
)

type fakeManyRepo struct {
	calls    int
	lastArgs map[string]any
	entities []any
}

func (r *fakeManyRepo) GetMany(ctx context.Context, attrs map[string]any) ([]any, error) {
	r.calls++
	r.lastArgs = attrs
	return r.entities, nil
}

func TestFindMany_WalksNestedArraysAndDeduplicates(t *testing.T) {
	repo := &fakeManyRepo{entities: []any{
		railway.Attrs{"id": 1},
		railway.Attrs{"id": 3},
	}}

	find := lookup.FindMany("find_products", "products", repo, lookup.ByPathMany("id", "items", "product_id"))

	items := railway.Params{
		railway.Attrs{"product_id": 1},
		railway.Attrs{"product_id": []any{2, 3}},
	}
	input := railway.Attrs{"items": items}

	r := find.Call(railway.Params{input}, railway.Context{})

	if r.Success() {
		t.Fatalf("expected a not_found failure for the missing id")
	}
	if len(r.Faults) != 1 || r.Faults[0].Code != railway.CodeNotFound {
		t.Fatalf("expected one not_found fault, got %+v", r.Faults)
	}
	want := railway.Path{"items", "1", "product_id", "0"}
	got := r.Faults[0].Path
	if len(got) != len(want) {
		t.Fatalf("expected path %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, got)
		}
	}

	ids, _ := repo.lastArgs["id"].([]any)
	if len(ids) != 3 {
		t.Fatalf("expected 3 deduplicated ids issued to the repository, got %v", ids)
	}
}

func TestFindMany_IdempotentWhenAlreadyPopulated(t *testing.T) {
	repo := &fakeManyRepo{}
	find := lookup.FindMany("find_products", "products", repo)

	ctx := railway.NewContext(railway.KV{Key: "products", Value: []any{railway.Attrs{"id": 1}}})
	r := find.Call(railway.Params{railway.Attrs{"product_ids": []any{1}}}, ctx)

	if r.Failure() {
		t.Fatalf("unexpected faults: %+v", r.Faults)
	}
	if repo.calls != 0 {
		t.Errorf("expected no repository call when context_key already populated")
	}
}

func TestFindMany_OmittableNoopOnNoReferences(t *testing.T) {
	repo := &fakeManyRepo{}
	find := lookup.FindMany("find_products", "products", repo, lookup.OmittableMany())

	r := find.Call(railway.Params{railway.Attrs{}}, railway.Context{})

	if r.Failure() {
		t.Fatalf("expected omittable success, got %+v", r.Faults)
	}
	if repo.calls != 0 {
		t.Errorf("expected no repository call when omittable and no references found")
	}
}

func TestFindMany_NullableSkipsNilEntries(t *testing.T) {
	repo := &fakeManyRepo{entities: []any{railway.Attrs{"id": 1}}}
	find := lookup.FindMany("find_products", "products", repo, lookup.NullableMany())

	input := railway.Attrs{"product_ids": []any{1, nil}}
	r := find.Call(railway.Params{input}, railway.Context{})

	if r.Failure() {
		t.Fatalf("unexpected faults: %+v", r.Faults)
	}
}
