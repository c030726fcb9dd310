package railway

// ParallelOption configures a parallel combinator.
type ParallelOption func(*parallelOptions)

type parallelOptions struct {
	packByIndex bool
}

// PackByIndex changes Parallel's params accumulation so that, for each
// positional index i, the Attrs contributed by every child at index i are
// merged into one Attrs (later children win on key conflict; a child with
// no value at index i falls back to whatever the others already produced
// there), instead of simply appending every child's params end to end.
func PackByIndex() ParallelOption {
	return func(o *parallelOptions) { o.packByIndex = true }
}

// parallel distributes disjoint slices of the input params across its
// children by arity, invokes every child, and collects all errors rather
// than stopping at the first.
type parallel struct {
	name     string
	children []Component
	opts     parallelOptions
}

// Parallel builds the params-distributing, error-collecting combinator.
func Parallel(name string, children []Component, opts ...ParallelOption) Component {
	p := &parallel{name: name, children: children}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

func (p *parallel) Name() string { return p.name }

// Signature sums the children's arities (Unbounded if any child is
// Unbounded); AcceptsContext is always true.
func (p *parallel) Signature() Signature {
	total := 0
	for _, ch := range p.children {
		s := ch.Signature()
		if s.Arity == Unbounded {
			return Signature{Arity: Unbounded, AcceptsContext: true}
		}
		total += s.Arity
	}
	return Signature{Arity: total, AcceptsContext: true}
}

func (p *parallel) Call(params Params, ctx Context) Result {
	acc := Result{Operation: p, Context: ctx}
	remaining := params
	fanoutSingle := len(params) == 1

	var packed Params
	var appended Params

	for _, child := range p.children {
		if acc.Shortcutted() {
			break
		}

		var slice Params
		switch {
		case fanoutSingle:
			slice = params
		case child.Signature().Arity == Unbounded:
			slice = remaining
			remaining = nil
		default:
			arity := child.Signature().Arity
			if arity > len(remaining) {
				arity = len(remaining)
			}
			slice = remaining[:arity]
			remaining = remaining[arity:]
		}

		childResult := child.Call(slice, acc.Context)

		// Parallel's params accumulation replaces the generic
		// Merge "adopt other.Params" rule, so Params is rebuilt below from
		// packed/appended rather than taken from Merge's result.
		acc = Merge(acc, childResult)

		if p.opts.packByIndex {
			packed = packByIndex(packed, childResult.Params)
		} else {
			appended = append(appended, childResult.Params...)
		}
	}

	if p.opts.packByIndex {
		acc.Params = packed
	} else {
		acc.Params = appended
	}

	if len(params) > 1 && len(remaining) > 0 {
		acc.Params = append(acc.Params, remaining...)
	}

	return acc
}

func packByIndex(acc, next Params) Params {
	n := len(acc)
	if len(next) > n {
		n = len(next)
	}
	out := make(Params, n)
	for i := 0; i < n; i++ {
		var a, b Value
		if i < len(acc) {
			a = acc[i]
		}
		if i < len(next) {
			b = next[i]
		}
		out[i] = mergeValue(a, b)
	}
	return out
}

// mergeValue merges two param-slot values for pack_by_index: when both are
// Attrs, b's keys win on conflict; when only one side is present/an Attrs,
// that side is kept outright.
func mergeValue(a, b Value) Value {
	am, aok := asAttrs(a)
	bm, bok := asAttrs(b)
	switch {
	case aok && bok:
		out := am.Clone()
		for k, v := range bm {
			out[k] = v
		}
		return out
	case bok:
		return bm
	case aok:
		return am
	case b != nil:
		return b
	default:
		return a
	}
}
