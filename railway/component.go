package railway

import "fmt"

// Component is anything that maps a Params/Context pair to a Result.
// Combinators implement it directly; raw Go functions are adapted via the
// Func*/Variadic constructors below:
// tagged variants constructed once at wiring time, rather than runtime
// reflection over arbitrary callables).
type Component interface {
	Call(params Params, ctx Context) Result
	Signature() Signature
	Name() string
}

// Outcome is the heterogeneous value a raw Handler returns before
// normalization into a Result: a Result, a Success, or a Failure.
type Outcome = any

// Handler is the uniform shape every leaf Component is built from. The
// wrapper truncates Params to the declared Signature.Arity before handing
// off in the (n, _) cases; a Handler built with Unbounded arity always
// receives every remaining param.
type Handler func(params Params, ctx Context) Outcome

// Success is returned by a Handler to signal success, carrying zero or more
// positional values and/or a context delta.
type Success struct {
	Params Params
	Ctx    Context
}

// Failure is returned by a Handler to signal failure, carrying one or more
// Faults, each describing a single failure reason with its own code and
// path.
type Failure struct {
	Faults []Fault
}

// Ok builds a Success with no params and no context delta.
func Ok() Outcome { return Success{} }

// OkCtx builds a Success carrying only a context delta.
func OkCtx(ctx Context) Outcome { return Success{Ctx: ctx} }

// OkValues builds a Success carrying positional values and no context delta.
func OkValues(values ...Value) Outcome { return Success{Params: values} }

// OkValuesCtx builds a Success carrying positional values followed by a
// context delta.
func OkValuesCtx(ctx Context, values ...Value) Outcome {
	return Success{Params: values, Ctx: ctx}
}

// Fail builds a Failure from a single symbolic code.
func Fail(code string) Outcome { return Failure{Faults: []Fault{{Code: code}}} }

// FailMsg builds a Failure from a single human-readable message.
func FailMsg(msg string) Outcome { return Failure{Faults: []Fault{{Message: msg}}} }

// FailFault builds a Failure from an already-constructed Fault.
func FailFault(f Fault) Outcome { return Failure{Faults: []Fault{f}} }

// FailMany builds a Failure from several Faults at once.
func FailMany(faults ...Fault) Outcome { return Failure{Faults: faults} }

// ProgrammingError is raised (via panic, caught at the Component boundary
// and re-panicked with this type) when a Handler's return value cannot be
// normalized, or when wiring is otherwise malformed. It always names the
// offending component.
type ProgrammingError struct {
	Component string
	Cause     error
}

func (e *ProgrammingError) Error() string {
	return fmt.Sprintf("railway: programming error in component %q: %v", e.Component, e.Cause)
}

func (e *ProgrammingError) Unwrap() error { return e.Cause }

type component struct {
	name string
	sig  Signature
	fn   Handler
}

func (c *component) Name() string      { return c.name }
func (c *component) Signature() Signature { return c.sig }

func (c *component) Call(params Params, ctx Context) Result {
	var out Outcome
	func() {
		defer func() {
			if r := recover(); r != nil {
				if pe, ok := r.(*ProgrammingError); ok {
					panic(pe)
				}
				panic(&ProgrammingError{Component: c.name, Cause: fmt.Errorf("%v", r)})
			}
		}()
		switch {
		case c.sig.Arity == Unbounded:
			out = c.fn(params, ctx)
		case !c.sig.AcceptsContext:
			out = c.fn(truncate(params, c.sig.Arity), Context{})
		default:
			out = c.fn(truncate(params, c.sig.Arity), ctx)
		}
	}()
	return c.normalize(out)
}

func (c *component) normalize(out Outcome) Result {
	switch v := out.(type) {
	case Result:
		return v
	case Success:
		return Result{Operation: c, Params: v.Params, Context: v.Ctx}
	case Failure:
		faults := make([]Fault, len(v.Faults))
		for i, f := range v.Faults {
			if f.Producer == nil {
				f.Producer = c
			}
			faults[i] = f
		}
		return Result{Operation: c, Faults: faults}
	default:
		panic(&ProgrammingError{
			Component: c.name,
			Cause:     fmt.Errorf("unrecognized return value of type %T, expected railway.Result, railway.Success or railway.Failure", out),
		})
	}
}

// New wraps fn as a Component with an explicit, caller-declared Signature.
// This is the general-purpose constructor; the Func0/Func1/Func2/ParamsOnly*/
// Variadic helpers below are typed sugar over it for the common arities.
func New(name string, sig Signature, fn Handler) Component {
	return &component{name: name, sig: sig, fn: fn}
}

// Func0 wraps a context-only callable: Signature{0, true}.
func Func0(name string, fn func(ctx Context) Outcome) Component {
	return New(name, Signature{Arity: 0, AcceptsContext: true}, func(_ Params, ctx Context) Outcome {
		return fn(ctx)
	})
}

// Func1 wraps a one-param, context-accepting callable: Signature{1, true}.
func Func1(name string, fn func(p0 Value, ctx Context) Outcome) Component {
	return New(name, Signature{Arity: 1, AcceptsContext: true}, func(p Params, ctx Context) Outcome {
		var v0 Value
		if len(p) > 0 {
			v0 = p[0]
		}
		return fn(v0, ctx)
	})
}

// Func2 wraps a two-param, context-accepting callable: Signature{2, true}.
func Func2(name string, fn func(p0, p1 Value, ctx Context) Outcome) Component {
	return New(name, Signature{Arity: 2, AcceptsContext: true}, func(p Params, ctx Context) Outcome {
		var v0, v1 Value
		if len(p) > 0 {
			v0 = p[0]
		}
		if len(p) > 1 {
			v1 = p[1]
		}
		return fn(v0, v1, ctx)
	})
}

// ParamsOnly1 wraps a one-param callable that declares no keyword params:
// Signature{1, false}.
func ParamsOnly1(name string, fn func(p0 Value) Outcome) Component {
	return New(name, Signature{Arity: 1, AcceptsContext: false}, func(p Params, _ Context) Outcome {
		var v0 Value
		if len(p) > 0 {
			v0 = p[0]
		}
		return fn(v0)
	})
}

// ParamsOnly2 wraps a two-param callable that declares no keyword params:
// Signature{2, false}.
func ParamsOnly2(name string, fn func(p0, p1 Value) Outcome) Component {
	return New(name, Signature{Arity: 2, AcceptsContext: false}, func(p Params, _ Context) Outcome {
		var v0, v1 Value
		if len(p) > 0 {
			v0 = p[0]
		}
		if len(p) > 1 {
			v1 = p[1]
		}
		return fn(v0, v1)
	})
}

// Variadic wraps a callable that consumes every remaining param plus the
// context: Signature{Unbounded, true}.
func Variadic(name string, fn func(params Params, ctx Context) Outcome) Component {
	return New(name, Signature{Arity: Unbounded, AcceptsContext: true}, fn)
}
