package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pathDetail struct {
	Message string `mapstructure:"message"`
}

type pathError struct {
	Name    string       `mapstructure:"name"`
	Details []pathDetail `mapstructure:"details"`
}

func TestLookup(t *testing.T) {
	errValue := &pathError{
		Name:    "ValidationError",
		Details: []pathDetail{{Message: `"value" must be a string`}},
	}
	doc := map[string]any{
		"error": errValue,
		"list":  []any{"a", map[string]any{"k": "v"}},
	}

	tests := []struct {
		name     string
		subject  any
		path     string
		expected any
		found    bool
	}{
		{"map key", doc, "list.0", "a", true},
		{"nested map in slice", doc, "list.1.k", "v", true},
		{"struct through pointer", doc, "error.name", "ValidationError", true},
		{"struct slice field", errValue, "details.0.message", `"value" must be a string`, true},
		{"case-insensitive field", errValue, "NAME", "ValidationError", true},
		{"index out of range", doc, "list.5", nil, false},
		{"non-numeric index", doc, "list.x", nil, false},
		{"missing key", doc, "nope", nil, false},
		{"scalar", "text", "len", nil, false},
		{"nil subject", nil, "a", nil, false},
		{"int keyed map", map[int]string{1: "x"}, "1", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, found := Lookup(tt.subject, tt.path)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestLookup_NilPointerField(t *testing.T) {
	var errValue *pathError
	_, found := Lookup(map[string]any{"error": errValue}, "error.name")
	assert.False(t, found)
}
