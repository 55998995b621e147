package common

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxIDLength = 64

// ValidationError maps a field name to the first problem found with it.
type ValidationError struct {
	Errors map[string]string
}

// Error lists the problems ordered by field name, e.g. "blogId must be provided; vote ...".
func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s %s", f, e.Errors[f])
	}
	return strings.Join(parts, "; ")
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a field.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// CheckID requires id to be a non-blank identifier of at most 64 characters.
func (v *Validator) CheckID(id, field string) {
	v.Check(NotBlank(id), field, "must be provided")
	v.Check(MaxChars(id, maxIDLength), field, fmt.Sprintf("must not be longer than %d characters", maxIDLength))
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}

func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func MaxChars(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}

func PermittedValue[T comparable](value T, permitted ...T) bool {
	return slices.Contains(permitted, value)
}
