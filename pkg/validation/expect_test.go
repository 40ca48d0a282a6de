package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.validresult/pkg/assertion"
)

// recorder captures failures reported by an assertion chain.
type recorder struct {
	errors  []string
	stopped bool
}

func (r *recorder) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) FailNow() { r.stopped = true }

func (r *recorder) Helper() {}

func (r *recorder) output() string {
	return strings.Join(r.errors, "\n")
}

func TestExpect_Success(t *testing.T) {
	res := Succeeded("a")

	Expect(t, res).IsValidationResult()
	Expect(t, res).Validates()
	Expect(t, res).Not().HasError()
	Expect(t, res).HasValue().Equal("a")
	Expect(t, res).Not().HasErrmsgs()
}

func TestExpect_Failure(t *testing.T) {
	res := Failed(nil,
		Detail{Message: stringMsg},
		Detail{Message: `"b" must be a number`},
	)

	Expect(t, res).Not().Validates().HasErrmsg(stringMsg).Not().HasErrmsg("nope")
	Expect(t, res).HasErrmsgs().Len(2).Contains(`"b" must be a number`).Not().Contains("wtf?")
	Expect(t, res).HasError().Property("name", ErrorName)
	Expect(t, res).HasError().Property("details.0.message").Equal(stringMsg)
	Expect(t, res).Not().HasValue()
}

func TestExpect_SubjectRewriting(t *testing.T) {
	res := Failed("input", Detail{Message: stringMsg})

	start := Expect(t, res)
	msgs := start.HasErrmsgs()
	value := start.HasValue()

	assert.Equal(t, res, start.Subject())
	assert.Equal(t, []string{stringMsg}, msgs.Subject())
	assert.Equal(t, "input", value.Subject())
	assert.Same(t, res.Error, start.HasError().Subject())
}

func TestExpect_NotAppliesToNextLinkOnly(t *testing.T) {
	rec := &recorder{}
	res := Failed(nil, Detail{Message: stringMsg})

	chain := Expect(rec, res).Not().Validates().Not()
	chain = chain.HasErrmsg("nope").HasErrmsg(stringMsg)
	assert.Empty(t, rec.errors)
	assert.False(t, chain.Failed())

	Expect(rec, res).Not().Not().Validates()
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "should validate but does not because "+stringMsg)
}

func TestExpect_ReportsFailure(t *testing.T) {
	tests := []struct {
		name    string
		run     func(r *recorder)
		message string
	}{
		{
			name:    "validates",
			run:     func(r *recorder) { Expect(r, Failed(nil, Detail{Message: stringMsg})).Validates() },
			message: `should validate but does not because "a" must be a string`,
		},
		{
			name:    "not validates",
			run:     func(r *recorder) { Expect(r, Succeeded("a")).Not().Validates() },
			message: `{"error":null,"value":"a"} should not validate but it does`,
		},
		{
			name:    "has error",
			run:     func(r *recorder) { Expect(r, Succeeded("a")).HasError() },
			message: `should have an error but does not`,
		},
		{
			name:    "has value",
			run:     func(r *recorder) { Expect(r, Succeeded(nil)).HasValue() },
			message: `{"error":null,"value":null} should have a value`,
		},
		{
			name:    "has errmsgs",
			run:     func(r *recorder) { Expect(r, Succeeded(1)).HasErrmsgs() },
			message: `expected {"error":null,"value":1} to have errmsgs`,
		},
		{
			name:    "has errmsg",
			run:     func(r *recorder) { Expect(r, Failed(nil, Detail{Message: stringMsg})).HasErrmsg("nope") },
			message: `to have error message "nope"`,
		},
		{
			name:    "not an object",
			run:     func(r *recorder) { Expect(r, "x").Not().Validates() },
			message: `"x" is not a validation result because it must be an object`,
		},
		{
			name:    "is validation result",
			run:     func(r *recorder) { Expect(r, map[string]any{"error": 1}).IsValidationResult() },
			message: `because it is missing required keys`,
		},
		{
			name:    "len after errmsgs",
			run:     func(r *recorder) { Expect(r, Failed(nil, Detail{Message: stringMsg})).HasErrmsgs().Len(2) },
			message: `count 1 != 2`,
		},
		{
			name:    "not empty after value",
			run:     func(r *recorder) { Expect(r, Succeeded("")).HasValue().NotEmpty() },
			message: `string is empty`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			tt.run(rec)
			require.Len(t, rec.errors, 1)
			assert.Contains(t, rec.errors[0], tt.message)
			assert.False(t, rec.stopped)
		})
	}
}

func TestExpect_HaltsAfterFailure(t *testing.T) {
	rec := &recorder{}

	chain := Expect(rec, Succeeded("a")).HasError().Property("name").Equal("never")
	require.Len(t, rec.errors, 1)
	assert.True(t, chain.Failed())
	assert.Nil(t, chain.Subject())
}

func TestExpect_MessageAndArgs(t *testing.T) {
	rec := &recorder{}

	Expect(rec, Succeeded("a"), "config %s", "server").Not().Validates()
	assert.Contains(t, rec.output(), "config server")
}

func TestExpecter_That(t *testing.T) {
	engine := assertion.NewEngine()
	require.NoError(t, Register(engine, WithIncidentalFields("meta")))
	expect := NewExpecter(engine)

	candidate := map[string]any{"error": nil, "value": 1, "meta": "x"}
	expect.That(t, candidate).Validates().HasValue().Equal(1)

	rec := &recorder{}
	expect.That(rec, candidate).Not().IsValidationResult()
	assert.Len(t, rec.errors, 1)
}

func TestExpecter_UnknownType(t *testing.T) {
	rec := &recorder{}
	NewExpecter(assertion.NewEngine()).That(rec, Succeeded(1)).Validates()

	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "unknown assertion type")
}

func TestAssertIsValidationResult(t *testing.T) {
	assert.True(t, AssertIsValidationResult(t, Succeeded(1)))

	rec := &recorder{}
	assert.False(t, AssertIsValidationResult(rec, map[string]any{}, "loading %s", "fixture"))
	assert.Contains(t, rec.output(), "{} is not a validation result because it is an empty object")
	assert.Contains(t, rec.output(), "loading fixture")
	assert.False(t, rec.stopped)
}

func TestRequireIsValidationResult(t *testing.T) {
	RequireIsValidationResult(t, Failed(nil, Detail{Message: "x"}))

	rec := &recorder{}
	RequireIsValidationResult(rec, 42)
	assert.True(t, rec.stopped)
	assert.Contains(t, rec.output(), "42 is not a validation result because it must be an object")
}
