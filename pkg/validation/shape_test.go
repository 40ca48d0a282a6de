package validation

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedResult struct {
	Err   error `json:"error"`
	Value any   `json:"value"`
}

type extraFieldResult struct {
	Error  any    `json:"error"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

type skippedFieldResult struct {
	Error  any    `json:"error"`
	Value  any    `json:"value"`
	Source string `json:"-"`
	hidden int
}

type embeddedResult struct {
	Result
}

type embeddedPointerResult struct {
	*Result
}

type shadowedResult struct {
	Result
	Value string `json:"value"`
}

func TestCheckShape(t *testing.T) {
	var nilResult *Result
	var nilMap map[string]any

	tests := []struct {
		name      string
		candidate any
		reason    Reason
		keys      []string
	}{
		{name: "nil", candidate: nil, reason: ReasonNotObject},
		{name: "typed nil pointer", candidate: nilResult, reason: ReasonNotObject},
		{name: "string", candidate: "error", reason: ReasonNotObject},
		{name: "number", candidate: 42, reason: ReasonNotObject},
		{name: "bool", candidate: false, reason: ReasonNotObject},
		{name: "slice", candidate: []any{nil, "a"}, reason: ReasonNotObject},
		{name: "int keyed map", candidate: map[int]any{1: nil}, reason: ReasonNotObject},
		{name: "nil map", candidate: nilMap, reason: ReasonEmpty},
		{name: "empty map", candidate: map[string]any{}, reason: ReasonEmpty},
		{name: "empty struct", candidate: struct{}{}, reason: ReasonEmpty},
		{name: "nil embedded pointer", candidate: embeddedPointerResult{}, reason: ReasonEmpty},
		{
			name:      "missing value",
			candidate: map[string]any{"error": 1},
			reason:    ReasonMissingKeys,
			keys:      []string{"value"},
		},
		{
			name:      "missing both",
			candidate: map[string]any{"then": nil},
			reason:    ReasonMissingKeys,
			keys:      []string{"error", "value"},
		},
		{
			name:      "unexpected key",
			candidate: map[string]any{"error": nil, "value": nil, "foo": nil},
			reason:    ReasonUnexpectedKeys,
			keys:      []string{"foo"},
		},
		{
			name:      "unexpected keys sorted",
			candidate: map[string]any{"error": nil, "value": nil, "z": 1, "b": 2},
			reason:    ReasonUnexpectedKeys,
			keys:      []string{"b", "z"},
		},
		{
			name:      "unexpected struct field",
			candidate: extraFieldResult{Value: 1},
			reason:    ReasonUnexpectedKeys,
			keys:      []string{"source"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckShape(tt.candidate)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotValidationResult))
			assert.False(t, IsValidationResult(tt.candidate))

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.reason, shapeErr.Reason)
			assert.Equal(t, tt.keys, shapeErr.Keys)
			assert.Contains(t, err.Error(), "is not a validation result because "+string(tt.reason))
		})
	}
}

func TestCheckShape_Valid(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
	}{
		{name: "success map", candidate: map[string]any{"error": nil, "value": "a"}},
		{name: "failure map", candidate: map[string]any{"error": map[string]any{}, "value": nil}},
		{name: "incidental then", candidate: map[string]any{"error": nil, "value": 1, "then": nil, "catch": nil}},
		{name: "typed result", candidate: Succeeded("a")},
		{name: "typed result pointer", candidate: &Result{Value: 0}},
		{name: "failed typed result", candidate: Failed(nil, Detail{Message: "bad"})},
		{name: "json tagged struct", candidate: taggedResult{}},
		{name: "skipped fields", candidate: skippedFieldResult{}},
		{name: "embedded result", candidate: embeddedResult{Succeeded("a")}},
		{name: "embedded result pointer", candidate: embeddedPointerResult{&Result{Value: "a"}}},
		{name: "shadowed embedded field", candidate: shadowedResult{Result: Succeeded(1), Value: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, CheckShape(tt.candidate))
			assert.True(t, IsValidationResult(tt.candidate))
		})
	}
}

func TestShapeError_Message(t *testing.T) {
	err := CheckShape(map[string]any{"error": 1})
	require.Error(t, err)
	assert.Equal(t,
		`{"error":1} is not a validation result because it is missing required keys`,
		err.Error(),
	)

	err = CheckShape(nil)
	require.Error(t, err)
	assert.Equal(t, "null is not a validation result because it must be an object", err.Error())
}

func TestClassifier_IncidentalFields(t *testing.T) {
	candidate := map[string]any{"error": nil, "value": 1, "meta": "x"}

	assert.False(t, IsValidationResult(candidate))
	assert.True(t, NewClassifier("meta").IsValidationResult(candidate))

	strict := Classifier{}
	assert.False(t, strict.IsValidationResult(map[string]any{
		"error": nil, "value": 1, "then": nil,
	}))
}

func TestCheckShape_Idempotent(t *testing.T) {
	res := Failed("a", Detail{Message: `"a" must be a string`, Path: []string{"a"}})
	before := res

	first := CheckShape(res)
	second := CheckShape(res)
	assert.NoError(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, before, res)

	bad := map[string]any{"error": nil, "value": nil, "foo": nil}
	firstErr := CheckShape(bad)
	secondErr := CheckShape(bad)
	assert.Equal(t, firstErr.Error(), secondErr.Error())
	assert.Len(t, bad, 3)
}
