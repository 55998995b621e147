package graph

import (
	"encoding/json"
	"math"
	"strconv"
)

// Args holds coerced root field arguments: ID and String values are strings, Boolean
// values are bools. Optional arguments the request left out are absent.
type Args map[string]any

func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// StringPtr returns nil when the argument was not supplied.
func (a Args) StringPtr(name string) *string {
	s, ok := a[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

func coerceArgs(defs []ArgDef, raw map[string]any) (Args, *Error) {
	declared := make(map[string]bool, len(defs))
	out := make(Args, len(defs))

	for _, def := range defs {
		declared[def.Name] = true

		v, ok := raw[def.Name]
		if !ok || v == nil {
			if def.Required {
				return nil, Errorf(KindValidationFailure, "argument %q of type %s is required", def.Name, def.Type)
			}
			continue
		}

		cv, ok := coerceValue(def.Type, v)
		if !ok {
			return nil, Errorf(KindValidationFailure, "argument %q expects %s, got %v", def.Name, def.Type, v)
		}
		out[def.Name] = cv
	}

	for name := range raw {
		if !declared[name] {
			return nil, Errorf(KindValidationFailure, "unknown argument %q", name)
		}
	}

	return out, nil
}

func coerceValue(typ string, v any) (any, bool) {
	switch typ {
	case ID:
		switch t := v.(type) {
		case string:
			return t, true
		case int:
			return strconv.Itoa(t), true
		case int64:
			return strconv.FormatInt(t, 10), true
		case float64:
			if t != math.Trunc(t) {
				return nil, false
			}
			return strconv.FormatInt(int64(t), 10), true
		case json.Number:
			if _, err := t.Int64(); err != nil {
				return nil, false
			}
			return t.String(), true
		}
	case String:
		if s, ok := v.(string); ok {
			return s, true
		}
	case Boolean:
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return nil, false
}
