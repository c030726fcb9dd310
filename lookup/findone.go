package lookup

import (
	"context"
	"fmt"
	"sort"

	"github.com/railwerk/ops/railway"
)

// FindOneOption configures a FindOne component.
type FindOneOption func(*findOne)

// With overrides the single-column lookup param key, default
// "{contextKey}_id".
func With(paramKey string) FindOneOption {
	return func(f *findOne) { f.with = paramKey }
}

// By names one or more lookup columns without custom extraction paths; each
// column's path defaults to [column].
func By(columns ...string) FindOneOption {
	return func(f *findOne) { f.byColumns = columns }
}

// ByPath sets a deep extraction path for one column. Call once per column
// for multi-column deep lookups.
func ByPath(column string, path ...string) FindOneOption {
	return func(f *findOne) {
		if f.byPaths == nil {
			f.byPaths = map[string][]string{}
		}
		f.byPaths[column] = path
	}
}

// TypePath overrides the polymorphic type-discriminator path, default
// [{contextKey}_type].
func TypePath(path ...string) FindOneOption {
	return func(f *findOne) { f.typePath = path }
}

// Nullable makes present-but-nil ids resolve to Success({context_key: nil})
// instead of a repository lookup with nil values. It also makes a
// context_key already present with a nil value count as preloaded.
func Nullable() FindOneOption {
	return func(f *findOne) { f.nullable = true }
}

// Omittable makes an absent lookup pointer resolve to Success({}) instead
// of a missing Failure, provided every pointer is absent.
func Omittable() FindOneOption {
	return func(f *findOne) { f.omittable = true }
}

// Skippable makes a not-found entity resolve to Success({}) instead of a
// not_found Failure.
func Skippable() FindOneOption {
	return func(f *findOne) { f.skippable = true }
}

type column struct {
	name string
	path []string
}

type findOne struct {
	name       string
	contextKey string
	repo       Repository
	poly       PolymorphicRepository
	with       string
	byColumns  []string
	byPaths    map[string][]string
	typePath   []string
	nullable   bool
	omittable  bool
	skippable  bool
}

// FindOne builds the component that resolves a single entity via repo and
// places it in context under contextKey.
func FindOne(name, contextKey string, repo Repository, opts ...FindOneOption) railway.Component {
	f := newFindOne(name, contextKey, opts...)
	f.repo = repo
	return wrapFindOne(f)
}

// FindOnePolymorphic is FindOne dispatched across several repositories by a
// type tag read from params.
func FindOnePolymorphic(name, contextKey string, repos PolymorphicRepository, opts ...FindOneOption) railway.Component {
	f := newFindOne(name, contextKey, opts...)
	f.poly = repos
	return wrapFindOne(f)
}

func newFindOne(name, contextKey string, opts ...FindOneOption) *findOne {
	f := &findOne{
		name:       name,
		contextKey: contextKey,
		with:       contextKey + "_id",
		typePath:   []string{contextKey + "_type"},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *findOne) columns() []column {
	if len(f.byPaths) > 0 {
		names := make([]string, 0, len(f.byPaths))
		for name := range f.byPaths {
			names = append(names, name)
		}
		sort.Strings(names)
		cols := make([]column, len(names))
		for i, name := range names {
			cols[i] = column{name: name, path: f.byPaths[name]}
		}
		return cols
	}
	if len(f.byColumns) > 0 {
		cols := make([]column, len(f.byColumns))
		for i, name := range f.byColumns {
			cols[i] = column{name: name, path: []string{name}}
		}
		return cols
	}
	return []column{{name: "id", path: []string{f.with}}}
}

func wrapFindOne(f *findOne) railway.Component {
	return railway.New(f.name, railway.Signature{Arity: 1, AcceptsContext: true},
		func(params railway.Params, ctx railway.Context) railway.Outcome {
			return f.run(params, ctx)
		})
}

func (f *findOne) run(params railway.Params, ctx railway.Context) railway.Outcome {
	// Step 1: idempotent when already populated.
	if existing, ok := ctx.Get(f.contextKey); ok {
		if existing != nil || f.nullable {
			return railway.Ok()
		}
	}

	attrs := paramAttrs(params)
	cols := f.columns()

	var missing []railway.Fault
	values := make(map[string]railway.Value, len(cols))
	for _, col := range cols {
		v, ok := attrs.Get(col.path...)
		if !ok {
			missing = append(missing, railway.Fault{Code: railway.CodeMissing, Path: railway.Path(col.path)})
			continue
		}
		values[col.name] = v
	}

	if len(missing) > 0 {
		if f.omittable && len(missing) == len(cols) {
			return railway.Ok()
		}
		return railway.FailMany(missing...)
	}

	if f.nullable {
		allNil := true
		for _, v := range values {
			if v != nil {
				allNil = false
				break
			}
		}
		if allNil {
			return railway.OkCtx(railway.NewContext(railway.KV{Key: f.contextKey, Value: nil}))
		}
	}

	repo, outcome := f.resolveRepository(attrs)
	if repo == nil {
		return outcome
	}

	entity, err := repo.GetOne(context.Background(), values)
	if err != nil {
		panic(&railway.ProgrammingError{Component: f.name, Cause: fmt.Errorf("repository GetOne: %w", err)})
	}
	if entity == nil {
		if f.skippable {
			return railway.Ok()
		}
		faults := make([]railway.Fault, len(cols))
		for i, col := range cols {
			faults[i] = railway.Fault{Code: railway.CodeNotFound, Path: railway.Path(col.path)}
		}
		return railway.FailMany(faults...)
	}

	return railway.OkCtx(railway.NewContext(railway.KV{Key: f.contextKey, Value: entity}))
}

// resolveRepository returns (nil, Outcome) when dispatch itself failed, or
// (repo, nil) on success.
func (f *findOne) resolveRepository(attrs railway.Attrs) (Repository, railway.Outcome) {
	if f.poly == nil {
		return f.repo, nil
	}
	tag, ok := attrs.Get(f.typePath...)
	if !ok {
		return nil, railway.FailFault(railway.Fault{Code: railway.CodeMissing, Path: railway.Path(f.typePath)})
	}
	tagStr, _ := tag.(string)
	repo, ok := f.poly[tagStr]
	if !ok {
		allowed := make([]string, 0, len(f.poly))
		for k := range f.poly {
			allowed = append(allowed, k)
		}
		sort.Strings(allowed)
		return nil, railway.FailFault(railway.Fault{
			Code: railway.CodeIncluded,
			Path: railway.Path(f.typePath),
			Tokens: railway.Attrs{"allowed_values": allowed},
		})
	}
	return repo, nil
}

func paramAttrs(params railway.Params) railway.Attrs {
	if len(params) == 0 {
		return railway.Attrs{}
	}
	if a, ok := params[0].(railway.Attrs); ok {
		return a
	}
	if m, ok := params[0].(map[string]any); ok {
		return railway.Attrs(m)
	}
	return railway.Attrs{}
}
