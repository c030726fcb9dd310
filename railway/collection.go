package railway

import "strconv"

// keyedView lets Collection treat a Value uniformly as either an ordered
// sequence (integer keys) or a Context-shaped mapping (symbol keys).
type keyedView interface {
	orderedKeys() []string
	get(k string) (Value, bool)
}

type seqView []Value

func (s seqView) orderedKeys() []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func (s seqView) get(k string) (Value, bool) {
	i, err := strconv.Atoi(k)
	if err != nil || i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

type mapView struct{ c Context }

func (m mapView) orderedKeys() []string        { return m.c.Keys() }
func (m mapView) get(k string) (Value, bool)   { return m.c.Get(k) }

func asKeyedView(v Value) (keyedView, bool) {
	switch t := v.(type) {
	case []Value:
		return seqView(t), true
	case Params:
		return seqView(t), true
	case Context:
		return mapView{t}, true
	default:
		return nil, false
	}
}

func isSeqView(v keyedView) bool {
	_, ok := v.(seqView)
	return ok
}

// collection iterates a child over a collection addressed by a namespace key
// within each param slot and within the context, unioning their keysets.
type collection struct {
	name  string
	key   string
	child Component
}

// Collection builds the per-element iteration combinator, keyed on key.
func Collection(name, key string, child Component) Component {
	return &collection{name: name, key: key, child: child}
}

func (c *collection) Name() string { return c.name }

func (c *collection) Signature() Signature {
	return Signature{Arity: c.child.Signature().Arity, AcceptsContext: true}
}

func (c *collection) Call(params Params, ctx Context) Result {
	slotViews := make([]keyedView, len(params))
	slotAttrs := make([]Attrs, len(params))
	for i, p := range params {
		attrs, ok := asAttrs(p)
		if !ok {
			continue
		}
		slotAttrs[i] = attrs
		if v, ok2 := attrs.Get(c.key); ok2 {
			if view, ok3 := asKeyedView(v); ok3 {
				slotViews[i] = view
			}
		}
	}

	var ctxView keyedView
	if v, ok := ctx.Get(c.key); ok {
		ctxView, _ = asKeyedView(v)
	}

	seen := map[string]bool{}
	var orderedKeys []string
	collect := func(v keyedView) {
		if v == nil {
			return
		}
		for _, k := range v.orderedKeys() {
			if !seen[k] {
				seen[k] = true
				orderedKeys = append(orderedKeys, k)
			}
		}
	}
	for _, v := range slotViews {
		collect(v)
	}
	collect(ctxView)

	slotOutSeq := make([]Params, len(params))
	slotOutMap := make([]Context, len(params))
	for i, v := range slotViews {
		if v != nil && isSeqView(v) {
			slotOutSeq[i] = Params{}
		} else if v != nil {
			slotOutMap[i] = Context{}
		}
	}
	var ctxOutSeq Params
	ctxOutMap := Context{}
	ctxIsSeq := ctxView != nil && isSeqView(ctxView)

	acc := Result{Operation: c, Context: ctx}

	for _, k := range orderedKeys {
		if acc.Shortcutted() {
			break
		}

		childParams := make(Params, len(params))
		for i, p := range params {
			if slotViews[i] == nil {
				childParams[i] = p
				continue
			}
			if v, ok := slotViews[i].get(k); ok {
				childParams[i] = v
			} else {
				childParams[i] = Attrs{}
			}
		}

		innerCtx := ctx
		if ctxView != nil {
			if v, ok := ctxView.get(k); ok {
				innerCtx = ctx.Set(c.key, v)
			} else {
				innerCtx = ctx.Set(c.key, Attrs{})
			}
		}

		childResult := c.child.Call(childParams, innerCtx)

		for i := range params {
			if slotViews[i] == nil {
				continue
			}
			var out Value = Attrs{}
			if i < len(childResult.Params) {
				out = childResult.Params[i]
			}
			if isSeqView(slotViews[i]) {
				slotOutSeq[i] = append(slotOutSeq[i], out)
			} else {
				slotOutMap[i] = slotOutMap[i].Set(k, out)
			}
		}

		if ctxView != nil {
			var out Value = Attrs{}
			if v, ok := childResult.Context.Get(c.key); ok {
				out = v
			} else if childResult.Context.Len() > 0 {
				out = childResult.Context
			}
			if ctxIsSeq {
				ctxOutSeq = append(ctxOutSeq, out)
			} else {
				ctxOutMap = ctxOutMap.Set(k, out)
			}
		}

		prefix := Path{c.key, k}
		for _, f := range childResult.Faults {
			acc.Faults = append(acc.Faults, f.WithPrefix(prefix))
		}
		acc.OnSuccess = appendCallbacks(acc.OnSuccess, childResult.OnSuccess)
		acc.OnFailure = appendResults(acc.OnFailure, childResult.OnFailure)
		if acc.Shortcut == nil {
			acc.Shortcut = childResult.Shortcut
		}
	}

	outParams := make(Params, len(params))
	for i, p := range params {
		if slotViews[i] == nil {
			outParams[i] = p
			continue
		}
		rebuilt := slotAttrs[i].Clone()
		if isSeqView(slotViews[i]) {
			rebuilt[c.key] = slotOutSeq[i]
		} else {
			rebuilt[c.key] = slotOutMap[i]
		}
		outParams[i] = rebuilt
	}
	acc.Params = outParams

	if ctxView != nil {
		if ctxIsSeq {
			acc.Context = ctx.Set(c.key, ctxOutSeq)
		} else {
			acc.Context = ctx.Set(c.key, ctxOutMap)
		}
	}

	return acc
}
