// Package validate adapts an external schema engine into two validator
// components: Params validates a single positional slot's mapping, Context
// schema-checks caller-supplied context entries. Both are thin wrappers —
// the schema engine itself is an egress collaborator behind a narrow
// interface.
package validate

import (
	"github.com/railwerk/ops/railway"
)

// SchemaEngine is the external collaborator Params delegates to. Given a
// param slot's Attrs and the current Context, it returns the validated
// (possibly coerced/defaulted) Attrs, a Context delta to merge in, and any
// schema Faults.
type SchemaEngine interface {
	Validate(attrs railway.Attrs, ctx railway.Context) (validated railway.Attrs, delta railway.Context, faults []railway.Fault)
}

type paramsOption func(*paramsValidator)

// Optional makes Params short-circuit to Success({}) when the input mapping
// is empty, without consulting the schema engine.
func Optional() paramsOption {
	return func(p *paramsValidator) { p.optional = true }
}

type paramsValidator struct {
	name     string
	engine   SchemaEngine
	optional bool
}

// Params builds the component that delegates a single param slot to engine.
func Params(name string, engine SchemaEngine, opts ...paramsOption) railway.Component {
	p := &paramsValidator{name: name, engine: engine}
	for _, opt := range opts {
		opt(p)
	}
	return railway.New(name, railway.Signature{Arity: 1, AcceptsContext: true},
		func(params railway.Params, ctx railway.Context) railway.Outcome {
			return p.run(params, ctx)
		})
}

func (p *paramsValidator) run(params railway.Params, ctx railway.Context) railway.Outcome {
	attrs := extractAttrs(params)

	if p.optional && len(attrs) == 0 {
		return railway.Ok()
	}

	validated, delta, faults := p.engine.Validate(attrs, ctx)
	if len(faults) > 0 {
		return railway.FailMany(faults...)
	}
	return railway.OkValuesCtx(delta, railway.Value(validated))
}

func extractAttrs(params railway.Params) railway.Attrs {
	if len(params) == 0 {
		return railway.Attrs{}
	}
	if a, ok := params[0].(railway.Attrs); ok {
		return a
	}
	if m, ok := params[0].(map[string]any); ok {
		return railway.Attrs(m)
	}
	return railway.Attrs{}
}
