package graph

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
)

var ErrInvalidDocument = errors.New("invalid document")

// ParseDocument parses GraphQL query text into a Request. Variables are substituted,
// fragments are flattened into the selections that spread them and fields skipped through
// @skip or @include are dropped.
func ParseDocument(query, operationName string, variables map[string]any) (*Request, error) {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: query})
	if gqlErr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, gqlErr.Error())
	}

	op := doc.Operations.ForName(operationName)
	if op == nil {
		if operationName == "" {
			return nil, fmt.Errorf("%w: operationName is required when the document holds %d operations", ErrInvalidDocument, len(doc.Operations))
		}
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidDocument, operationName)
	}

	var kind Operation
	switch op.Operation {
	case ast.Query:
		kind = OperationQuery
	case ast.Mutation:
		kind = OperationMutation
	default:
		return nil, fmt.Errorf("%w: %s operations are not supported", ErrInvalidDocument, op.Operation)
	}

	vars := make(map[string]any, len(variables))
	for _, vd := range op.VariableDefinitions {
		if vd.DefaultValue == nil {
			continue
		}
		v, err := vd.DefaultValue.Value(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: default of $%s: %s", ErrInvalidDocument, vd.Variable, err)
		}
		vars[vd.Variable] = v
	}
	for k, v := range variables {
		vars[k] = v
	}

	p := &flattener{doc: doc, vars: vars, spreading: make(map[string]bool)}
	fields, err := p.selections(op.SelectionSet, "")
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: operation selects no fields", ErrInvalidDocument)
	}

	return &Request{Operation: kind, Fields: fields}, nil
}

type flattener struct {
	doc       *ast.QueryDocument
	vars      map[string]any
	spreading map[string]bool
}

func (p *flattener) selections(set ast.SelectionSet, on string) ([]Selection, error) {
	var out []Selection

	for _, s := range set {
		switch s := s.(type) {
		case *ast.Field:
			ok, err := p.included(s.Directives)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			sel, err := p.field(s, on)
			if err != nil {
				return nil, err
			}
			out = append(out, sel)

		case *ast.InlineFragment:
			ok, err := p.included(s.Directives)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			cond := on
			if s.TypeCondition != "" {
				cond = s.TypeCondition
			}
			sub, err := p.selections(s.SelectionSet, cond)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)

		case *ast.FragmentSpread:
			ok, err := p.included(s.Directives)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			def := p.doc.Fragments.ForName(s.Name)
			if def == nil {
				return nil, fmt.Errorf("%w: unknown fragment %q", ErrInvalidDocument, s.Name)
			}
			if p.spreading[s.Name] {
				return nil, fmt.Errorf("%w: fragment %q spreads itself", ErrInvalidDocument, s.Name)
			}

			p.spreading[s.Name] = true
			sub, err := p.selections(def.SelectionSet, def.TypeCondition)
			delete(p.spreading, s.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
	}

	return out, nil
}

func (p *flattener) field(f *ast.Field, on string) (Selection, error) {
	sel := Selection{Field: f.Name, On: on}
	if f.Alias != "" && f.Alias != f.Name {
		sel.Alias = f.Alias
	}

	if len(f.Arguments) > 0 {
		sel.Arguments = make(map[string]any, len(f.Arguments))
		for _, arg := range f.Arguments {
			v, err := arg.Value.Value(p.vars)
			if err != nil {
				return Selection{}, fmt.Errorf("%w: argument %q of %s: %s", ErrInvalidDocument, arg.Name, f.Name, err)
			}
			sel.Arguments[arg.Name] = v
		}
	}

	sub, err := p.selections(f.SelectionSet, "")
	if err != nil {
		return Selection{}, err
	}
	sel.Selection = sub

	return sel, nil
}

func (p *flattener) included(dirs ast.DirectiveList) (bool, error) {
	if d := dirs.ForName("skip"); d != nil {
		skip, err := p.condition(d)
		if err != nil {
			return false, err
		}
		if skip {
			return false, nil
		}
	}

	if d := dirs.ForName("include"); d != nil {
		return p.condition(d)
	}

	return true, nil
}

func (p *flattener) condition(d *ast.Directive) (bool, error) {
	arg := d.Arguments.ForName("if")
	if arg == nil {
		return false, fmt.Errorf("%w: @%s requires an if argument", ErrInvalidDocument, d.Name)
	}

	v, err := arg.Value.Value(p.vars)
	if err != nil {
		return false, fmt.Errorf("%w: @%s: %s", ErrInvalidDocument, d.Name, err)
	}

	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: @%s(if:) expects Boolean", ErrInvalidDocument, d.Name)
	}
	return b, nil
}
