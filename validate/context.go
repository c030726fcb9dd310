package validate

import "github.com/railwerk/ops/railway"

// Type is one schema entry's external type engine, e.g. a dry-types-style
// coercion/check primitive. Try returns the (possibly coerced) value; err
// is nil iff value (including an absent key, represented as nil) satisfies
// the type.
type Type interface {
	Try(value any) (any, error)
}

// Field pairs a context key with the Type that checks it. A slice (rather
// than a map) preserves the declaration order used for deterministic Fault
// ordering.
type Field struct {
	Key  string
	Type Type
}

type contextOption func(*contextValidator)

// Strict makes Context panic with *railway.OperationFailed instead of
// returning a Failure Result.
func Strict() contextOption {
	return func(c *contextValidator) { c.strict = true }
}

type contextValidator struct {
	name   string
	fields []Field
	strict bool
}

// Context builds the component that schema-checks the named context keys
// and merges the validated values back in. Its signature
// normalizes to (0, true).
func Context(name string, fields []Field, opts ...contextOption) railway.Component {
	c := &contextValidator{name: name, fields: fields}
	for _, opt := range opts {
		opt(c)
	}
	return railway.New(name, railway.Signature{Arity: 0, AcceptsContext: true},
		func(_ railway.Params, ctx railway.Context) railway.Outcome {
			return c.run(ctx)
		})
}

func (c *contextValidator) run(ctx railway.Context) railway.Outcome {
	validated := railway.NewContext()
	var faults []railway.Fault

	for _, field := range c.fields {
		value, present := ctx.Get(field.Key)
		result, err := field.Type.Try(value)
		if !present && err == nil {
			continue
		}
		if err != nil {
			faults = append(faults, railway.Fault{
				Code:    railway.CodeInvalid,
				Path:    railway.Path{field.Key},
				Message: err.Error(),
			})
			continue
		}
		validated = validated.Set(field.Key, result)
	}

	if len(faults) > 0 {
		if c.strict {
			panic(&railway.OperationFailed{Result: railway.Result{Faults: faults}})
		}
		return railway.FailMany(faults...)
	}

	return railway.OkCtx(ctx.Merge(validated))
}
