package validate_test

import (
	"testing"

	"github.com/railwerk/ops/railway"
	"github.com/railwerk/ops/validate"
)

type fakeSchema struct {
	faults []railway.Fault
}

func (s *fakeSchema) Validate(attrs railway.Attrs, ctx railway.Context) (railway.Attrs, railway.Context, []railway.Fault) {
	if len(s.faults) > 0 {
		return nil, railway.Context{}, s.faults
	}
	return attrs, railway.Context{}, nil
}

func TestParams_DelegatesToSchemaEngine(t *testing.T) {
	engine := &fakeSchema{}
	v := validate.Params("validate_post", engine)

	r := v.Call(railway.Params{railway.Attrs{"title": "hi"}}, railway.Context{})
	if r.Failure() {
		t.Fatalf("unexpected faults: %+v", r.Faults)
	}
}

func TestParams_PropagatesSchemaFaults(t *testing.T) {
	engine := &fakeSchema{faults: []railway.Fault{{Code: railway.CodeBlank, Path: railway.Path{"title"}}}}
	v := validate.Params("validate_post", engine)

	r := v.Call(railway.Params{railway.Attrs{"title": ""}}, railway.Context{})
	if r.Success() {
		t.Fatalf("expected failure")
	}
	if r.Faults[0].Code != railway.CodeBlank {
		t.Errorf("unexpected fault: %+v", r.Faults[0])
	}
}

func TestParams_OptionalSkipsEmptyInput(t *testing.T) {
	engine := &fakeSchema{faults: []railway.Fault{{Code: railway.CodeInvalid}}}
	v := validate.Params("validate_post", engine, validate.Optional())

	r := v.Call(railway.Params{railway.Attrs{}}, railway.Context{})
	if r.Failure() {
		t.Fatalf("expected optional empty input to skip the schema engine, got %+v", r.Faults)
	}
}
