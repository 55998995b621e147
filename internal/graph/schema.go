// Package graph resolves query and mutation requests against a registry of object types
// whose fields are computed on demand from a parent record.
package graph

import (
	"context"
	"fmt"
	"sync"
)

// Built-in scalar type names.
const (
	ID      = "ID"
	String  = "String"
	Boolean = "Boolean"
)

const typenameField = "__typename"

type Operation string

const (
	OperationQuery    Operation = "query"
	OperationMutation Operation = "mutation"
)

// TypeRef names the type a field resolves to. List marks a list of that type.
type TypeRef struct {
	Name string
	List bool
}

func Named(name string) TypeRef {
	return TypeRef{Name: name}
}

func ListOf(name string) TypeRef {
	return TypeRef{Name: name, List: true}
}

func (t TypeRef) String() string {
	if t.List {
		return "[" + t.Name + "]"
	}
	return t.Name
}

type ResolveFunc func(ctx context.Context, parent any) (any, error)

// Field is a field of an object type. Resolve receives the parent record.
type Field struct {
	Name    string
	Type    TypeRef
	Resolve ResolveFunc
}

type ArgDef struct {
	Name     string
	Type     string
	Required bool
}

type RootResolveFunc func(ctx context.Context, args Args) (any, error)

// RootField is an entry of the Query or Mutation catalog.
type RootField struct {
	Name    string
	Type    TypeRef
	Args    []ArgDef
	Resolve RootResolveFunc
}

type objectType struct {
	name   string
	thunk  func() []*Field
	once   sync.Once
	fields map[string]*Field
}

func (o *objectType) load() map[string]*Field {
	o.once.Do(func() {
		fields := o.thunk()
		o.fields = make(map[string]*Field, len(fields))
		for _, f := range fields {
			o.fields[f.Name] = f
		}
	})
	return o.fields
}

type Schema struct {
	objects  map[string]*objectType
	query    map[string]*RootField
	mutation map[string]*RootField

	concurrency int
	onError     func(*Error)
}

type Option func(*Schema)

// WithConcurrency bounds the goroutines started for one set of sibling fields or list
// elements.
func WithConcurrency(n int) Option {
	return func(s *Schema) {
		s.concurrency = n
	}
}

// WithErrorHook registers a function called for every error placed in a response.
func WithErrorHook(fn func(*Error)) Option {
	return func(s *Schema) {
		s.onError = fn
	}
}

func NewSchema(opts ...Option) *Schema {
	s := &Schema{
		objects:     make(map[string]*objectType),
		query:       make(map[string]*RootField),
		mutation:    make(map[string]*RootField),
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Object registers an object type. fields is evaluated once, on first use, so declarations
// may refer to types registered later.
func (s *Schema) Object(name string, fields func() []*Field) {
	if _, ok := s.objects[name]; ok {
		panic(fmt.Sprintf("graph: object %q registered twice", name))
	}
	s.objects[name] = &objectType{name: name, thunk: fields}
}

// Fields returns the fields of typeName, or nil when no such object exists.
func (s *Schema) Fields(typeName string) map[string]*Field {
	o, ok := s.objects[typeName]
	if !ok {
		return nil
	}
	return o.load()
}

func (s *Schema) isObject(typeName string) bool {
	_, ok := s.objects[typeName]
	return ok
}

func (s *Schema) Query(f *RootField) {
	s.query[f.Name] = f
}

func (s *Schema) Mutation(f *RootField) {
	s.mutation[f.Name] = f
}

func (s *Schema) catalog(op Operation) (map[string]*RootField, string, bool) {
	switch op {
	case OperationQuery:
		return s.query, "Query", true
	case OperationMutation:
		return s.mutation, "Mutation", true
	default:
		return nil, "", false
	}
}
