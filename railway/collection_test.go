package railway_test

import (
	"testing"

	"github.com/railwerk/ops/railway"
)

func TestCollection_PrefixesErrorsWithKeyAndIndex(t *testing.T) {
	validateBody := railway.ParamsOnly1("validate_comment", func(p0 railway.Value) railway.Outcome {
		a, _ := p0.(railway.Attrs)
		if a["body"] == "" {
			return railway.FailFault(railway.Fault{Code: railway.CodeBlank, Path: railway.Path{"body"}})
		}
		return railway.Ok()
	})

	col := railway.Collection("validate_comments", "comments", validateBody)

	comments := railway.Params{attrs("body", "a"), attrs("body", "")}
	input := attrs("comments", comments)
	r := col.Call(railway.Params{input}, railway.Context{})

	if r.Success() {
		t.Fatalf("expected failure")
	}
	if len(r.Faults) != 1 {
		t.Fatalf("expected exactly one fault, got %+v", r.Faults)
	}
	want := railway.Path{"comments", "1", "body"}
	got := r.Faults[0].Path
	if len(got) != len(want) {
		t.Fatalf("expected path %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected path %v, got %v", want, got)
		}
	}
}

func TestCollection_MismatchedSizesUnionKeysWithEmptyFill(t *testing.T) {
	var seenKeys []string
	child := railway.ParamsOnly1("child", func(p0 railway.Value) railway.Outcome {
		a, _ := p0.(railway.Attrs)
		if v, ok := a["v"]; ok {
			seenKeys = append(seenKeys, "present:"+formatAny(v))
		} else {
			seenKeys = append(seenKeys, "empty")
		}
		return railway.Ok()
	})

	col := railway.Collection("iterate", "items", child)

	short := railway.Params{attrs("v", "x")}
	input := attrs("items", short)
	ctx := railway.NewContext(railway.KV{Key: "items", Value: railway.Params{attrs("v", "a"), attrs("v", "b")}})

	r := col.Call(railway.Params{input}, ctx)

	if r.Failure() {
		t.Fatalf("unexpected faults: %+v", r.Faults)
	}
	if len(seenKeys) != 2 {
		t.Fatalf("expected iteration over the union of 2 keys, got %d: %v", len(seenKeys), seenKeys)
	}
	if seenKeys[0] != "present:x" {
		t.Errorf("expected first iteration to see the present slot value, got %v", seenKeys[0])
	}
	if seenKeys[1] != "empty" {
		t.Errorf("expected second iteration to see an empty fill for the missing slot entry, got %v", seenKeys[1])
	}
}

func formatAny(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return "?"
}
