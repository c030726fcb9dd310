// Package lookup implements FindOne/FindMany: path-based extraction from
// pipeline params into repository lookups, including polymorphic dispatch
// by a type discriminator. The repository contract itself is an external
// collaborator — lookup only depends on the two small interfaces below.
package lookup

import "context"

// Repository resolves a single entity for FindOne. GetOne returns a nil
// entity (with a nil error) when nothing matches; an error is reserved for
// genuine repository failures (connection errors, etc.), which FindOne does
// not attempt to translate into a Fault and instead propagates as a
// programming error.
type Repository interface {
	GetOne(ctx context.Context, attrs map[string]any) (any, error)
}

// PolymorphicRepository dispatches FindOne's GetOne by a string type tag
// read from params.
type PolymorphicRepository map[string]Repository

// ManyRepository resolves a set of entities for FindMany.
type ManyRepository interface {
	GetMany(ctx context.Context, attrs map[string]any) ([]any, error)
}

// PolymorphicManyRepository dispatches FindMany's GetMany by type tag,
// one ManyRepository per concrete entity type.
type PolymorphicManyRepository map[string]ManyRepository
