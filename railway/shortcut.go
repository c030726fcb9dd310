package railway

// shortcut wraps one child: a success is marked as a shortcut so the
// enclosing Chain/Split exits immediately after it; a failure is swallowed
// entirely so the enclosing combinator may continue.
type shortcut struct {
	name  string
	child Component
}

// Shortcut builds the early-exit-on-success wrapper.
func Shortcut(name string, child Component) Component {
	return &shortcut{name: name, child: child}
}

func (s *shortcut) Name() string         { return s.name }
func (s *shortcut) Signature() Signature { return s.child.Signature() }

func (s *shortcut) Call(params Params, ctx Context) Result {
	r := s.child.Call(params, ctx)
	if r.Success() {
		r.Shortcut = s
		return r
	}
	return Result{Operation: s}
}
