package assertion

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.validresult/pkg/logging"
)

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	builtins := []string{
		"not_empty", "contains", "contains_any", "equals",
		"min_length", "min_count", "exact_count", "all_valid",
		"no_duplicates", "all_pass", "property",
	}

	for _, name := range builtins {
		assert.True(t, e.HasEvaluator(name),
			"missing built-in evaluator: %s", name)
	}
	assert.Len(t, e.Types(), len(builtins))
}

func TestNewEngine_WithoutBuiltins(t *testing.T) {
	e := NewEngine(WithoutBuiltins())
	assert.Empty(t, e.Types())
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("custom", func(_ Definition, _ any) Outcome {
		return Check(true, "custom ok", "")
	})

	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("custom"))
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register("not_empty", func(_ Definition, _ any) Outcome {
		return Check(true, "dup", "")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Register_Invalid(t *testing.T) {
	e := NewEngine()

	require.Error(t, e.Register("", evaluateNotEmpty))
	require.Error(t, e.Register("nil_evaluator", nil))
}

func TestDefaultEngine_Register_LogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewJSONLogger(logging.LoggerConfig{
		Output:  &buf,
		Level:   logging.LevelDebug,
		Verbose: true,
	})
	require.NoError(t, err)

	e := NewEngine(WithLogger(logger))
	require.NoError(t, e.Register("custom", evaluateNotEmpty))

	assert.Contains(t, buf.String(), `"type":"custom"`)
}

func TestDefaultEngine_Evaluate_UnknownType(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "nonexistent",
		Target: "x",
	}, "hello")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown assertion type")
}

func TestDefaultEngine_Evaluate_SetsFields(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "not_empty",
		Target: "response",
	}, "hello world")

	assert.True(t, r.Passed)
	assert.Equal(t, "not_empty", r.Type)
	assert.Equal(t, "response", r.Target)
	assert.Equal(t, "hello world", r.Actual)
	assert.Equal(t, "hello world", r.Subject)
}

func TestDefaultEngine_Evaluate_Negation(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{Type: "contains", Value: "b", Not: true}, []string{"a"})
	assert.True(t, r.Passed)
	assert.True(t, r.Negated)

	r = e.Evaluate(Definition{Type: "contains", Value: "a", Not: true}, []string{"a"})
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "not to include")
}

func TestDefaultEngine_Evaluate_DerivedNegatedMessage(t *testing.T) {
	e := NewEngine(WithoutBuiltins())
	require.NoError(t, e.Register("always", func(_ Definition, _ any) Outcome {
		return Check(true, "always passes", "")
	}))

	r := e.Evaluate(Definition{Type: "always", Not: true}, nil)
	assert.False(t, r.Passed)
	assert.Equal(t, "expected always to fail: always passes", r.Message)
}

func TestDefaultEngine_Evaluate_PreconditionIgnoresNegation(t *testing.T) {
	e := NewEngine(WithoutBuiltins())
	require.NoError(t, e.Register("strict", func(_ Definition, _ any) Outcome {
		return Precondition(errors.New("subject is malformed"))
	}))

	for _, not := range []bool{false, true} {
		r := e.Evaluate(Definition{Type: "strict", Not: not}, 1)
		assert.False(t, r.Passed)
		assert.Equal(t, "subject is malformed", r.Message)
	}
}

func TestDefaultEngine_Evaluate_MessagePrefix(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:    "not_empty",
		Message: "response must not be empty",
	}, "")

	assert.False(t, r.Passed)
	assert.Equal(t, "response must not be empty: string is empty", r.Message)
}

func TestDefaultEngine_Evaluate_ThenUsesPivotedSubject(t *testing.T) {
	e := NewEngine()

	subject := map[string]any{
		"details": []any{
			map[string]any{"message": "first"},
			map[string]any{"message": "second"},
		},
	}

	r := e.Evaluate(Definition{
		Type: "property",
		Path: "details",
		Then: []Definition{
			{Type: "exact_count", Value: 2},
			{Type: "property", Path: "1.message", Value: "second"},
		},
	}, subject)

	require.True(t, r.Passed, r.Message)
	require.Len(t, r.Then, 2)
	assert.Equal(t, "second", r.Then[1].Subject)
}

func TestDefaultEngine_Evaluate_ThenFailurePropagates(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type: "property",
		Path: "items",
		Then: []Definition{{Type: "exact_count", Value: 3}},
	}, map[string]any{"items": []int{1, 2}})

	assert.False(t, r.Passed)
	assert.Equal(t, "exact_count: count 2 != 3", r.Message)
}

func TestDefaultEngine_Evaluate_ThenSkippedOnFailure(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type: "property",
		Path: "missing",
		Then: []Definition{{Type: "not_empty"}},
	}, map[string]any{})

	assert.False(t, r.Passed)
	assert.Empty(t, r.Then)
}

func TestDefaultEngine_EvaluateAll_MissingTarget(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: "not_empty", Target: "missing"},
		},
		map[string]any{"other": "value"},
	)

	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Message, "target not found")
}

func TestDefaultEngine_EvaluateAll_MultipleAssertions(t *testing.T) {
	e := NewEngine()

	results := e.EvaluateAll(
		[]Definition{
			{Type: "not_empty", Target: "a"},
			{Type: "contains", Target: "a", Value: "hello"},
			{Type: "min_length", Target: "a", Value: 3},
		},
		map[string]any{"a": "hello world"},
	)

	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Passed, "assertion %s failed", r.Type)
	}
}
