package graph

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Selection is one requested field. A bare JSON string decodes to a field without
// arguments or sub-selection.
type Selection struct {
	Field     string         `json:"field"`
	Alias     string         `json:"alias,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Selection []Selection    `json:"selection,omitempty"`
	// On restricts the selection to objects of the named type. Fragments set it.
	On string `json:"on,omitempty"`
}

// Key is the name the field is reported under.
func (s Selection) Key() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Field
}

func (s *Selection) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		if name == "" {
			return errors.New("selection must not be empty")
		}
		*s = Selection{Field: name}
		return nil
	}

	var obj struct {
		Field     string         `json:"field"`
		Alias     string         `json:"alias"`
		Arguments map[string]any `json:"arguments"`
		Selection []Selection    `json:"selection"`
		On        string         `json:"on"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("selection must be a field name or an object: %w", err)
	}
	if obj.Field == "" {
		return errors.New("selection object requires a field")
	}

	*s = Selection{
		Field:     obj.Field,
		Alias:     obj.Alias,
		Arguments: obj.Arguments,
		Selection: obj.Selection,
		On:        obj.On,
	}
	return nil
}

// Request is a parsed operation: one or more root fields of the Query or Mutation catalog.
type Request struct {
	Operation Operation
	Fields    []Selection
}

// StructuredRequest is the JSON form naming a single root field.
type StructuredRequest struct {
	Operation Operation      `json:"operation"`
	Field     string         `json:"field"`
	Alias     string         `json:"alias,omitempty"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Selection []Selection    `json:"selection,omitempty"`
}

func (r *StructuredRequest) Request() (*Request, error) {
	op := r.Operation
	if op == "" {
		op = OperationQuery
	}
	if op != OperationQuery && op != OperationMutation {
		return nil, fmt.Errorf("unsupported operation %q", r.Operation)
	}
	if r.Field == "" {
		return nil, errors.New("field must be provided")
	}

	return &Request{
		Operation: op,
		Fields: []Selection{{
			Field:     r.Field,
			Alias:     r.Alias,
			Arguments: r.Arguments,
			Selection: r.Selection,
		}},
	}, nil
}

type Response struct {
	Data   *Map     `json:"data"`
	Errors []*Error `json:"errors,omitempty"`
}

// Aborted reports whether the request failed before producing any data.
func (r *Response) Aborted() bool {
	return r.Data == nil
}
