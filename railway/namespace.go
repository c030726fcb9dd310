package railway

// NamespaceOption configures a Namespace combinator.
type NamespaceOption func(*namespace)

// From overrides the extraction path (defaults to ns itself).
func From(path ...string) NamespaceOption {
	return func(n *namespace) {
		n.from = path
		n.fromSet = true
	}
}

// FromRoot sets from=[] ("pass through full params"): the child receives
// the untouched input params instead of a dug-out slice.
func FromRoot() NamespaceOption {
	return func(n *namespace) {
		n.from = []string{}
		n.fromSet = true
	}
}

// OptionalNamespace makes the wrapper skip cleanly (empty Success) when the
// from path is absent, instead of failing with a missing Fault.
func OptionalNamespace() NamespaceOption {
	return func(n *namespace) { n.optional = true }
}

// namespace scopes a sub-pipeline under a key path.
type namespace struct {
	name     string
	ns       []string
	from     []string
	fromSet  bool
	optional bool
	child    Component
}

// Namespace builds the combinator that runs child against the data found at
// path ns (or at an explicit From path), re-nesting its output back under
// ns and prefixing its errors with ns.
func Namespace(name string, ns []string, child Component, opts ...NamespaceOption) Component {
	n := &namespace{name: name, ns: ns, child: child}
	for _, opt := range opts {
		opt(n)
	}
	if !n.fromSet {
		n.from = ns
	}
	return n
}

func (n *namespace) Name() string { return n.name }

func (n *namespace) passThroughAll() bool {
	return n.fromSet && len(n.from) == 0
}

func (n *namespace) Signature() Signature {
	if n.passThroughAll() {
		return n.child.Signature()
	}
	return Signature{Arity: 1, AcceptsContext: true}
}

func (n *namespace) Call(params Params, ctx Context) Result {
	if n.passThroughAll() {
		return n.runChild(params, ctx)
	}

	present := false
	for _, p := range params {
		if attrs, ok := asAttrs(p); ok && attrs.Has(n.from...) {
			present = true
			break
		}
	}

	if !present {
		if n.optional {
			return Result{Operation: n, Params: params, Context: ctx}
		}
		return Result{Operation: n, Faults: []Fault{{Code: CodeMissing, Path: Path(n.from)}}}
	}

	return n.runChild(params, ctx)
}

func (n *namespace) runChild(params Params, ctx Context) Result {
	innerCtx := ctx
	if !n.passThroughAll() && len(n.ns) > 0 {
		base := ctx.Delete(n.ns[0])
		if digged, ok := ctx.Dig(n.ns...); ok {
			if dm, ok2 := asAttrs(digged); ok2 {
				seed := Context{}
				for k, v := range dm {
					seed = seed.Set(k, v)
				}
				base = seed.Merge(base)
			}
		}
		innerCtx = base
	}

	var innerParams Params
	if n.passThroughAll() {
		innerParams = params
	} else {
		arity := n.child.Signature().Arity
		innerParams = make(Params, len(params))
		for i, p := range params {
			if arity != Unbounded && i >= arity {
				innerParams[i] = p
				continue
			}
			attrs, ok := asAttrs(p)
			if !ok {
				innerParams[i] = Attrs{}
				continue
			}
			if v, ok2 := attrs.Get(n.from...); ok2 {
				innerParams[i] = v
			} else {
				innerParams[i] = Attrs{}
			}
		}
	}

	childResult := n.child.Call(innerParams, innerCtx)

	if n.passThroughAll() {
		r := childResult
		r.Operation = n
		return r
	}

	outParams := make(Params, len(childResult.Params))
	for i, v := range childResult.Params {
		outParams[i] = nestValue(n.ns, v)
	}

	existing, _ := ctx.Dig(n.ns...)
	existingAttrs, _ := asAttrs(existing)
	nsValue := Attrs{}
	for k, v := range existingAttrs {
		nsValue[k] = v
	}
	for _, k := range childResult.Context.Keys() {
		v, _ := childResult.Context.Get(k)
		nsValue[k] = v
	}

	outContext := ctx
	if len(n.ns) > 0 {
		wrapped := NewContext(KV{Key: n.ns[0], Value: nestValue(n.ns[1:], Value(nsValue))})
		outContext = ctx.DeepMerge(wrapped)
	}

	faults := make([]Fault, len(childResult.Faults))
	for i, f := range childResult.Faults {
		faults[i] = f.WithPrefix(Path(n.ns))
	}

	return Result{
		Operation: n,
		Params:    outParams,
		Context:   outContext,
		Faults:    faults,
		Shortcut:  childResult.Shortcut,
		OnSuccess: childResult.OnSuccess,
		OnFailure: childResult.OnFailure,
	}
}

// nestValue wraps v under the nested Attrs structure described by path,
// e.g. nestValue([]string{"a","b"}, v) == Attrs{"a": Attrs{"b": v}}.
func nestValue(path []string, v Value) Value {
	if len(path) == 0 {
		return v
	}
	return Attrs{path[0]: nestValue(path[1:], v)}
}
