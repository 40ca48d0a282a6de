package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.validresult/pkg/assertion"
	"digital.vasic.validresult/pkg/validation"
)

// evaluateSample runs a small suite of validation assertions:
// four top-level results and two follow-ups, two of them failing.
func evaluateSample(t *testing.T) []assertion.Result {
	t.Helper()
	engine := assertion.NewEngine()
	require.NoError(t, validation.Register(engine))

	defs := []assertion.Definition{
		{Type: validation.TypeValidate, Target: "ok"},
		{Type: validation.TypeValidate, Target: "bad", Not: true},
		{
			Type:   validation.TypeErrmsgs,
			Target: "bad",
			Then: []assertion.Definition{
				{Type: "exact_count", Value: 1},
				{Type: "contains", Value: "<missing>"},
			},
		},
		{Type: validation.TypeValidate, Target: "bad"},
	}

	return engine.EvaluateAll(defs, map[string]any{
		"ok":  validation.Succeeded("a"),
		"bad": validation.Failed(nil, validation.Detail{Message: `"a" must be a string`}),
	})
}

func TestWalk(t *testing.T) {
	results := evaluateSample(t)

	var seen []string
	var depths []int
	walk(results, 0, func(r assertion.Result, depth int) {
		seen = append(seen, r.Type)
		depths = append(depths, depth)
	})

	assert.Equal(t, []string{
		"validate", "validate", "errmsgs", "exact_count", "contains", "validate",
	}, seen)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 0}, depths)
}
