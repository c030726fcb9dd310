package railway

// split distributes params exactly like Parallel, but fails fast: the first
// failing or shortcutting child stops the walk.
type split struct {
	name     string
	children []Component
	opts     parallelOptions
}

// Split builds the fail-fast twin of Parallel.
func Split(name string, children []Component, opts ...ParallelOption) Component {
	s := &split{name: name, children: children}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

func (s *split) Name() string { return s.name }

func (s *split) Signature() Signature {
	return (&parallel{children: s.children}).Signature()
}

func (s *split) Call(params Params, ctx Context) Result {
	acc := Result{Operation: s, Context: ctx}
	remaining := params
	fanoutSingle := len(params) == 1

	var packed Params
	var appended Params

	for _, child := range s.children {
		if acc.Failure() || acc.Shortcutted() {
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
		acc = Merge(acc, childResult)

		if s.opts.packByIndex {
			packed = packByIndex(packed, childResult.Params)
		} else {
			appended = append(appended, childResult.Params...)
		}
	}

	if s.opts.packByIndex {
		acc.Params = packed
	} else {
		acc.Params = appended
	}

	if len(params) > 1 && len(remaining) > 0 {
		acc.Params = append(acc.Params, remaining...)
	}

	return acc
}
