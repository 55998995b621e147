package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_CheckID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		expected map[string]string
	}{
		{name: "empty", id: "", expected: map[string]string{"id": "must be provided"}},
		{name: "blank", id: "   ", expected: map[string]string{"id": "must be provided"}},
		{name: "uuid", id: "5f1c1a52-8d0e-4f7e-9a55-0e1b2a3c4d5e", expected: map[string]string{}},
		{name: "short", id: "1", expected: map[string]string{}},
		{name: "max length", id: strings.Repeat("a", 64), expected: map[string]string{}},
		{name: "too long", id: strings.Repeat("a", 65), expected: map[string]string{"id": "must not be longer than 64 characters"}},
		{name: "multibyte", id: strings.Repeat("é", 64), expected: map[string]string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			v.CheckID(tc.id, "id")

			assert.Equal(t, len(tc.expected) == 0, v.Valid())
			assert.Equal(t, tc.expected, v.Errors)
		})
	}
}

func TestValidator_AddErrorKeepsFirst(t *testing.T) {
	v := NewValidator()
	v.AddError("vote", "must be provided")
	v.AddError("vote", "must be either upvote or downvote")

	assert.Equal(t, map[string]string{"vote": "must be provided"}, v.Errors)
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Errors: map[string]string{
		"vote":   "must be provided",
		"blogId": "must be provided",
		"userId": "must not be longer than 64 characters",
	}}

	assert.Equal(t, "blogId must be provided; userId must not be longer than 64 characters; vote must be provided", err.Error())
}

func TestPermittedValue(t *testing.T) {
	assert.True(t, PermittedValue("upvote", "upvote", "downvote"))
	assert.False(t, PermittedValue("sideways", "upvote", "downvote"))
	assert.False(t, PermittedValue(3))
}
