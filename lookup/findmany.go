package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/railwerk/ops/railway"
)

// FindManyOption configures a FindMany component.
type FindManyOption func(*findMany)

// WithMany overrides the default id-list param key, default
// "{contextKey}_ids" with one trailing "s" dropped from contextKey
// ("products" -> "product_ids").
func WithMany(paramKey string) FindManyOption {
	return func(f *findMany) { f.with = paramKey }
}

// ByPathMany sets the extraction path walked to collect id references,
// possibly through nested arrays. Only one column is supported per
// FindMany (by={id: [items, product_id]}).
func ByPathMany(column string, path ...string) FindManyOption {
	return func(f *findMany) {
		f.column = column
		f.path = path
	}
}

// TypePathMany overrides the polymorphic type-discriminator path, default
// [{contextKey}_type].
func TypePathMany(path ...string) FindManyOption {
	return func(f *findMany) { f.typePath = path }
}

// NullableMany skips nil id values found inside arrays rather than
// reporting them.
func NullableMany() FindManyOption {
	return func(f *findMany) { f.nullable = true }
}

// OmittableMany makes a lookup with zero references (including an absent
// by path) resolve to Success({}) rather than to a missing Failure or to
// Success({contextKey: []}).
func OmittableMany() FindManyOption {
	return func(f *findMany) { f.omittable = true }
}

// WithEntityID overrides how an entity's id is extracted for matching
// returned entities against requested references. The default reads an
// "id" key off an Attrs/map[string]any entity.
func WithEntityID(fn func(entity any) any) FindManyOption {
	return func(f *findMany) { f.entityID = fn }
}

// reference is one leaf id location discovered while walking the by path,
// with the path recorded for fault reporting.
type reference struct {
	value any
	path  railway.Path
}

type findMany struct {
	name       string
	contextKey string
	repo       ManyRepository
	poly       PolymorphicManyRepository
	with       string
	column     string
	path       []string
	typePath   []string
	nullable   bool
	omittable  bool
	entityID   func(entity any) any
}

// FindMany builds the component that resolves a set of entities via repo
// and places them in context under contextKey.
func FindMany(name, contextKey string, repo ManyRepository, opts ...FindManyOption) railway.Component {
	f := newFindMany(name, contextKey, opts...)
	f.repo = repo
	return wrapFindMany(f)
}

// FindManyPolymorphic is FindMany dispatched across several repositories by
// type tag. The tag is read once from params at the type path and every
// reference goes to that one repository in a single GetMany call;
// references are not grouped by a per-reference tag.
func FindManyPolymorphic(name, contextKey string, repos PolymorphicManyRepository, opts ...FindManyOption) railway.Component {
	f := newFindMany(name, contextKey, opts...)
	f.poly = repos
	return wrapFindMany(f)
}

func newFindMany(name, contextKey string, opts ...FindManyOption) *findMany {
	f := &findMany{
		name:       name,
		contextKey: contextKey,
		with:       strings.TrimSuffix(contextKey, "s") + "_ids",
		typePath:   []string{contextKey + "_type"},
		entityID:   defaultEntityID,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.path == nil {
		f.column = "id"
		f.path = []string{f.with}
	}
	return f
}

func defaultEntityID(entity any) any {
	switch e := entity.(type) {
	case railway.Attrs:
		v, _ := e["id"]
		return v
	case map[string]any:
		v, _ := e["id"]
		return v
	default:
		return nil
	}
}

func wrapFindMany(f *findMany) railway.Component {
	return railway.New(f.name, railway.Signature{Arity: 1, AcceptsContext: true},
		func(params railway.Params, ctx railway.Context) railway.Outcome {
			return f.run(params, ctx)
		})
}

func (f *findMany) run(params railway.Params, ctx railway.Context) railway.Outcome {
	if existing, ok := ctx.Get(f.contextKey); ok {
		if existing != nil || f.nullable {
			return railway.Ok()
		}
	}

	attrs := paramAttrs(params)
	refs, missing := f.walk(attrs)

	if len(refs) == 0 && f.omittable {
		return railway.Ok()
	}

	if len(missing) > 0 {
		faults := make([]railway.Fault, len(missing))
		for i, p := range missing {
			faults[i] = railway.Fault{Code: railway.CodeMissing, Path: p}
		}
		return railway.FailMany(faults...)
	}

	if len(refs) == 0 {
		return railway.OkCtx(railway.NewContext(railway.KV{Key: f.contextKey, Value: []any{}}))
	}

	entities, notFound, outcome := f.resolveAndCall(attrs, refs)
	if outcome != nil {
		return outcome
	}
	if len(notFound) > 0 {
		faults := make([]railway.Fault, len(notFound))
		for i, p := range notFound {
			faults[i] = railway.Fault{Code: railway.CodeNotFound, Path: p}
		}
		return railway.FailMany(faults...)
	}

	return railway.OkCtx(railway.NewContext(railway.KV{Key: f.contextKey, Value: entities}))
}

// walk recursively descends f.path through attrs, following array steps
// and emitting one reference per scalar/array-element leaf, with each
// reference's path recording any array indices traversed along the way.
func (f *findMany) walk(attrs railway.Attrs) (refs []reference, missing []railway.Path) {
	return f.walkAt(attrs, f.path, nil)
}

func (f *findMany) walkAt(root railway.Attrs, path []string, prefix railway.Path) ([]reference, []railway.Path) {
	if len(path) == 0 {
		return nil, nil
	}
	head := path[0]
	rest := path[1:]
	v, ok := root[head]
	if !ok {
		return nil, []railway.Path{prefix.Join(head)}
	}

	if len(rest) == 0 {
		return f.flattenLeaf(v, prefix.Join(head)), nil
	}

	list := asAttrsSlice(v)
	if list == nil {
		return nil, []railway.Path{prefix.Join(head)}
	}

	var refs []reference
	var missing []railway.Path
	for i, item := range list {
		subPrefix := prefix.Join(head, railway.Index(i))
		r, m := f.walkAt(item, rest, subPrefix)
		refs = append(refs, r...)
		missing = append(missing, m...)
	}
	return refs, missing
}

func (f *findMany) flattenLeaf(v any, path railway.Path) []reference {
	if list, ok := v.([]any); ok {
		refs := make([]reference, 0, len(list))
		for i, item := range list {
			if item == nil && f.nullable {
				continue
			}
			refs = append(refs, reference{value: item, path: path.Join(railway.Index(i))})
		}
		return refs
	}
	if v == nil && f.nullable {
		return nil
	}
	return []reference{{value: v, path: path}}
}

func asAttrsSlice(v any) []railway.Attrs {
	switch t := v.(type) {
	case []railway.Attrs:
		return t
	case railway.Params:
		return asAttrsSlice([]any(t))
	case []any:
		out := make([]railway.Attrs, 0, len(t))
		for _, item := range t {
			if a, ok := item.(railway.Attrs); ok {
				out = append(out, a)
				continue
			}
			if m, ok := item.(map[string]any); ok {
				out = append(out, railway.Attrs(m))
				continue
			}
			return nil
		}
		return out
	default:
		return nil
	}
}

func dedupe(refs []reference) []any {
	seen := make(map[any]bool, len(refs))
	ids := make([]any, 0, len(refs))
	for _, r := range refs {
		if r.value == nil {
			continue
		}
		if seen[r.value] {
			continue
		}
		seen[r.value] = true
		ids = append(ids, r.value)
	}
	return ids
}

// resolveAndCall issues the repository call(s) and returns the entities
// found plus the paths of any reference whose value did not come back.
func (f *findMany) resolveAndCall(attrs railway.Attrs, refs []reference) (entities []any, notFound []railway.Path, outcome railway.Outcome) {
	ids := dedupe(refs)

	var found []any
	if f.poly != nil {
		tag, ok := attrs.Get(f.typePath...)
		if !ok {
			return nil, nil, railway.FailFault(railway.Fault{Code: railway.CodeMissing, Path: railway.Path(f.typePath)})
		}
		tagStr, _ := tag.(string)
		repo, ok := f.poly[tagStr]
		if !ok {
			return nil, nil, railway.FailFault(railway.Fault{Code: railway.CodeIncluded, Path: railway.Path(f.typePath)})
		}
		res, err := repo.GetMany(context.Background(), map[string]any{f.column: ids})
		if err != nil {
			panic(&railway.ProgrammingError{Component: f.name, Cause: fmt.Errorf("repository GetMany: %w", err)})
		}
		found = res
	} else {
		res, err := f.repo.GetMany(context.Background(), map[string]any{f.column: ids})
		if err != nil {
			panic(&railway.ProgrammingError{Component: f.name, Cause: fmt.Errorf("repository GetMany: %w", err)})
		}
		found = res
	}

	foundIDs := make(map[any]bool, len(found))
	for _, entity := range found {
		foundIDs[f.entityID(entity)] = true
	}

	for _, r := range refs {
		if r.value == nil {
			continue
		}
		if !foundIDs[r.value] {
			notFound = append(notFound, r.path)
		}
	}

	return found, notFound, nil
}
