package graph

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Execute resolves a single root field.
func (s *Schema) Execute(ctx context.Context, op Operation, field string, args map[string]any, selection []Selection) *Response {
	return s.ExecuteRequest(ctx, &Request{
		Operation: op,
		Fields:    []Selection{{Field: field, Arguments: args, Selection: selection}},
	})
}

// ExecuteRequest resolves every root field of req. Query fields run concurrently and
// mutation fields run one after another in request order. A root field missing from the
// catalog fails the whole request before any resolver runs.
func (s *Schema) ExecuteRequest(ctx context.Context, req *Request) *Response {
	catalog, rootType, ok := s.catalog(req.Operation)
	if !ok {
		return s.abort(Errorf(KindUnknownField, "unknown operation %q", req.Operation))
	}

	fields := collectFields(req.Fields, rootType)

	for _, sel := range fields {
		if sel.Field == typenameField {
			continue
		}
		if _, ok := catalog[sel.Field]; !ok {
			e := Errorf(KindUnknownField, "cannot query field %q on type %q", sel.Field, rootType)
			e.Path = []any{sel.Key()}
			return s.abort(e)
		}
	}

	ex := &executor{schema: s}
	slots := make([]any, len(fields))

	resolve := func(i int) {
		sel := fields[i]
		if sel.Field == typenameField {
			slots[i] = rootType
			return
		}
		slots[i] = ex.resolveRoot(ctx, catalog[sel.Field], sel)
	}

	if req.Operation == OperationMutation {
		for i := range fields {
			resolve(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.concurrency)
		for i := range fields {
			g.Go(func() error {
				resolve(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	data := NewMap(len(fields))
	for i, sel := range fields {
		data.Set(sel.Key(), slots[i])
	}

	return &Response{Data: data, Errors: ex.sortedErrors()}
}

func (s *Schema) abort(e *Error) *Response {
	if s.onError != nil {
		s.onError(e)
	}
	return &Response{Errors: []*Error{e}}
}

type executor struct {
	schema *Schema

	mu   sync.Mutex
	errs []*Error
}

func (ex *executor) addError(err error, path []any) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: KindStorageFailure, Message: err.Error()}
	}

	out := &Error{Kind: e.Kind, Message: e.Message, Path: path}
	if ex.schema.onError != nil {
		ex.schema.onError(out)
	}

	ex.mu.Lock()
	ex.errs = append(ex.errs, out)
	ex.mu.Unlock()
}

func (ex *executor) sortedErrors() []*Error {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	sort.SliceStable(ex.errs, func(i, j int) bool {
		return comparePaths(ex.errs[i].Path, ex.errs[j].Path) < 0
	})
	return ex.errs
}

func (ex *executor) resolveRoot(ctx context.Context, f *RootField, sel Selection) any {
	path := []any{sel.Key()}

	args, argErr := coerceArgs(f.Args, sel.Arguments)
	if argErr != nil {
		ex.addError(argErr, path)
		return nil
	}

	v, err := f.Resolve(ctx, args)
	if err != nil {
		ex.addError(err, path)
		return nil
	}

	return ex.complete(ctx, f.Type, v, sel.Selection, path)
}

// complete turns a resolver result into response values: objects become *Map restricted
// to the selection, lists are completed element by element, scalars pass through.
func (ex *executor) complete(ctx context.Context, t TypeRef, v any, sel []Selection, path []any) any {
	if v == nil {
		return nil
	}

	if t.List {
		// a nil slice is an empty result, not a missing one
		items, ok := listItems(v)
		if !ok {
			ex.addError(Errorf(KindStorageFailure, "expected a list of %s, got %T", t.Name, v), path)
			return nil
		}

		out := make([]any, len(items))
		elem := Named(t.Name)
		if !ex.schema.isObject(t.Name) {
			for i, item := range items {
				out[i] = item
			}
			return out
		}

		var g errgroup.Group
		g.SetLimit(ex.schema.concurrency)
		for i, item := range items {
			g.Go(func() error {
				out[i] = ex.complete(ctx, elem, item, sel, appendPath(path, i))
				return nil
			})
		}
		_ = g.Wait()
		return out
	}

	if isNil(v) {
		return nil
	}

	if !ex.schema.isObject(t.Name) {
		return v
	}

	return ex.completeObject(ctx, t.Name, v, sel, path)
}

func (ex *executor) completeObject(ctx context.Context, typeName string, parent any, sel []Selection, path []any) *Map {
	fields := ex.schema.Fields(typeName)
	sel = collectFields(sel, typeName)

	type slot struct {
		key   string
		value any
		ok    bool
	}
	slots := make([]slot, len(sel))

	var g errgroup.Group
	g.SetLimit(ex.schema.concurrency)

	for i, s := range sel {
		if s.Field == typenameField {
			slots[i] = slot{key: s.Key(), value: typeName, ok: true}
			continue
		}

		f, ok := fields[s.Field]
		if !ok {
			// unknown nested fields are left out of the response
			continue
		}

		slots[i] = slot{key: s.Key(), ok: true}
		fieldPath := appendPath(path, s.Key())

		if !ex.schema.isObject(f.Type.Name) {
			slots[i].value = ex.resolveField(ctx, f, parent, s, fieldPath)
			continue
		}

		g.Go(func() error {
			slots[i].value = ex.resolveField(ctx, f, parent, s, fieldPath)
			return nil
		})
	}
	_ = g.Wait()

	out := NewMap(len(sel))
	for _, s := range slots {
		if s.ok {
			out.Set(s.key, s.value)
		}
	}
	return out
}

func (ex *executor) resolveField(ctx context.Context, f *Field, parent any, sel Selection, path []any) any {
	if err := ctx.Err(); err != nil {
		ex.addError(Errorf(KindStorageFailure, "%v", err), path)
		return nil
	}

	v, err := f.Resolve(ctx, parent)
	if err != nil {
		ex.addError(err, path)
		return nil
	}

	return ex.complete(ctx, f.Type, v, sel.Selection, path)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// listItems spreads any slice into its elements. Struct elements are handed out by
// address so field resolvers always see pointers.
func listItems(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i)
		if e.Kind() == reflect.Struct {
			out[i] = e.Addr().Interface()
			continue
		}
		out[i] = e.Interface()
	}
	return out, true
}

// collectFields drops selections meant for another type and merges selections reported
// under the same key. Merged sub-selections keep request order.
func collectFields(sel []Selection, typeName string) []Selection {
	out := make([]Selection, 0, len(sel))
	index := make(map[string]int, len(sel))

	for _, s := range sel {
		if s.On != "" && s.On != typeName {
			continue
		}

		i, ok := index[s.Key()]
		if !ok {
			index[s.Key()] = len(out)
			out = append(out, s)
			continue
		}

		merged := make([]Selection, 0, len(out[i].Selection)+len(s.Selection))
		merged = append(merged, out[i].Selection...)
		out[i].Selection = append(merged, s.Selection...)
	}

	return out
}

// comparePaths orders paths element by element. List indexes compare as numbers and sort
// before field names at the same depth.
func comparePaths(a, b []any) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ai, aInt := a[i].(int)
		bi, bInt := b[i].(int)

		switch {
		case aInt && bInt:
			if ai != bi {
				return cmp.Compare(ai, bi)
			}
		case aInt:
			return -1
		case bInt:
			return 1
		default:
			if c := strings.Compare(fmt.Sprint(a[i]), fmt.Sprint(b[i])); c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(len(a), len(b))
}
