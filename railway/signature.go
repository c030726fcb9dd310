package railway

// Unbounded marks a Signature whose arity consumes all remaining positional
// params.
const Unbounded = -1

// Signature is the (arity, accepts_context) pair that governs how a
// Component is fed params and whether it receives the Context.
type Signature struct {
	Arity          int
	AcceptsContext bool
}

// ParamConsuming reports whether s consumes at least one positional param
// (arity > 0, or Unbounded). Used by Chain to find its first param-consuming
// child.
func (s Signature) ParamConsuming() bool {
	return s.Arity != 0
}
