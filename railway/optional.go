package railway

// optional wraps one child: success passes through unchanged; failure is
// swallowed, keeping the child's params but discarding its context delta
// and errors.
type optional struct {
	name  string
	child Component
}

// Optional builds the error-swallowing wrapper.
func Optional(name string, child Component) Component {
	return &optional{name: name, child: child}
}

func (o *optional) Name() string         { return o.name }
func (o *optional) Signature() Signature { return o.child.Signature() }

func (o *optional) Call(params Params, ctx Context) Result {
	r := o.child.Call(params, ctx)
	if r.Success() {
		return r
	}
	return Result{Operation: o, Params: r.Params}
}
