package railway

// Context is an order-preserving, string-keyed map threaded through a
// pipeline invocation. The combinator algebra never relies on iteration
// order, but insertion order is preserved so that tests and logs stay
// reproducible.
type Context struct {
	keys   []string
	values map[string]Value
}

// NewContext builds a Context from the given key/value pairs, in order.
func NewContext(pairs ...KV) Context {
	c := Context{values: make(map[string]Value, len(pairs))}
	for _, kv := range pairs {
		c = c.Set(kv.Key, kv.Value)
	}
	return c
}

// KV is one key/value pair, used by NewContext for ordered construction.
type KV struct {
	Key   string
	Value Value
}

// Get returns the value stored at key and whether it is present.
func (c Context) Get(key string) (Value, bool) {
	if c.values == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Dig walks a Path through nested Attrs starting from this Context.
func (c Context) Dig(path ...string) (Value, bool) {
	if len(path) == 0 {
		return nil, false
	}
	v, ok := c.Get(path[0])
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return v, true
	}
	attrs, ok := v.(Attrs)
	if !ok {
		if mm, ok2 := v.(map[string]any); ok2 {
			attrs = Attrs(mm)
		} else {
			return nil, false
		}
	}
	return attrs.Get(path[1:]...)
}

// Set returns a new Context with key bound to value. If key already existed
// its original position in Keys() is preserved; otherwise it is appended.
func (c Context) Set(key string, value Value) Context {
	out := c.clone()
	if _, existed := out.values[key]; !existed {
		out.keys = append(out.keys, key)
	}
	out.values[key] = value
	return out
}

// Delete returns a new Context with key removed.
func (c Context) Delete(key string) Context {
	if _, ok := c.Get(key); !ok {
		return c
	}
	out := Context{values: make(map[string]Value, len(c.values))}
	for _, k := range c.keys {
		if k == key {
			continue
		}
		out.keys = append(out.keys, k)
		out.values[k] = c.values[k]
	}
	return out
}

// Keys returns the keys of c in insertion order.
func (c Context) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len reports the number of bindings in c.
func (c Context) Len() int { return len(c.keys) }

func (c Context) clone() Context {
	out := Context{
		keys:   make([]string, len(c.keys)),
		values: make(map[string]Value, len(c.values)),
	}
	copy(out.keys, c.keys)
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// Merge returns a new Context with other's bindings layered on top of c:
// keys unique to c keep their position, keys present in both take other's
// value, and keys unique to other are appended in other's order.
func (c Context) Merge(other Context) Context {
	if other.Len() == 0 {
		return c
	}
	out := c.clone()
	for _, k := range other.keys {
		out = out.Set(k, other.values[k])
	}
	return out
}

// DeepMerge behaves like Merge, except when both sides hold an Attrs value
// for the same key — in that case the nested Attrs are merged key-by-key
// (other wins on conflict) instead of other's Attrs replacing c's outright.
// Namespace uses this so that repeated invocations under the same key
// deep-merge their contexts instead of clobbering one another.
func (c Context) DeepMerge(other Context) Context {
	if other.Len() == 0 {
		return c
	}
	out := c.clone()
	for _, k := range other.keys {
		ov := other.values[k]
		if existing, ok := out.Get(k); ok {
			if em, ok1 := asAttrs(existing); ok1 {
				if om, ok2 := asAttrs(ov); ok2 {
					merged := em.Clone()
					for mk, mv := range om {
						merged[mk] = mv
					}
					out = out.Set(k, merged)
					continue
				}
			}
		}
		out = out.Set(k, ov)
	}
	return out
}

func asAttrs(v Value) (Attrs, bool) {
	switch t := v.(type) {
	case Attrs:
		return t, true
	case map[string]any:
		return Attrs(t), true
	default:
		return nil, false
	}
}
