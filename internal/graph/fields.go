package graph

import "context"

// Prop declares a scalar field read from a parent of type *T.
func Prop[T any](name, typ string, get func(*T) any) *Field {
	return &Field{
		Name: name,
		Type: Named(typ),
		Resolve: func(_ context.Context, parent any) (any, error) {
			p, ok := parent.(*T)
			if !ok {
				return nil, Errorf(KindStorageFailure, "field %s: unexpected parent %T", name, parent)
			}
			return get(p), nil
		},
	}
}

// Relation declares a field computed from a parent of type *T, usually by a lookup in
// another collection.
func Relation[T any](name string, typ TypeRef, fn func(ctx context.Context, parent *T) (any, error)) *Field {
	return &Field{
		Name: name,
		Type: typ,
		Resolve: func(ctx context.Context, parent any) (any, error) {
			p, ok := parent.(*T)
			if !ok {
				return nil, Errorf(KindStorageFailure, "field %s: unexpected parent %T", name, parent)
			}
			return fn(ctx, p)
		},
	}
}
