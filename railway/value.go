// Package railway implements the pipeline runtime: a Result value, Component
// signature inference and dispatch, the combinator set (Chain, Parallel,
// Fanout, Split, Either, Collection, Namespace, Shortcut, Optional,
// Transaction) and their shared merge/error-path contracts.
package railway

import "strconv"

// Value is one opaque positional param slot. In practice it is usually an
// Attrs mapping, but the algebra never requires that — a combinator may hand
// a scalar, a slice, or nil down to a child.
type Value = any

// Params is an ordered list of positional Values accompanying a Context.
type Params []Value

// Attrs is the common shape of a Value when a component treats its params as
// keyed data, e.g. `{"title": "hi"}`. Combinators that need to dig into a
// param slot (Namespace, Collection, lookup.FindOne/FindMany) expect this
// shape; anything else is treated as opaque and passed through unexamined.
type Attrs map[string]any

// Get digs a.Get(path...) out of nested Attrs/Params, returning ok=false if
// any segment along the path is absent or of the wrong shape.
func (a Attrs) Get(path ...string) (Value, bool) {
	var cur Value = a
	for _, seg := range path {
		m, ok := cur.(Attrs)
		if !ok {
			if mm, ok2 := cur.(map[string]any); ok2 {
				m = Attrs(mm)
			} else {
				return nil, false
			}
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether the full path resolves to a present key (the value
// itself may be nil).
func (a Attrs) Has(path ...string) bool {
	_, ok := a.Get(path...)
	return ok
}

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Path is an ordered sequence of atoms addressing a value inside nested
// Attrs/Params: each atom is either a string key or a non-negative integer
// index, rendered as its decimal form when stored on a Fault.
type Path []string

// Index renders a non-negative integer index as a Path atom.
func Index(i int) string { return strconv.Itoa(i) }

// Join returns a new Path with extra appended after p.
func (p Path) Join(extra ...string) Path {
	out := make(Path, 0, len(p)+len(extra))
	out = append(out, p...)
	out = append(out, extra...)
	return out
}

func truncate(params Params, arity int) Params {
	if arity == Unbounded || arity >= len(params) {
		return params
	}
	if arity <= 0 {
		return nil
	}
	return params[:arity]
}
