package graph

import (
	"fmt"
	"strings"
)

type Kind string

const (
	// KindUnknownField aborts the whole request. Every other kind is reported on the field
	// that failed while its siblings keep resolving.
	KindUnknownField      Kind = "UnknownField"
	KindNotFound          Kind = "NotFound"
	KindStorageFailure    Kind = "StorageFailure"
	KindValidationFailure Kind = "ValidationFailure"
	KindConflict          Kind = "Conflict"
)

type Error struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
	Path    []any  `json:"path,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, pathString(e.Path), e.Message)
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func pathString(path []any) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ".")
}

// appendPath copies path so sibling goroutines never share a backing array.
func appendPath(path []any, elem any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}
