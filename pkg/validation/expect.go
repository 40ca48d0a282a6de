package validation

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.validresult/pkg/assertion"
)

type tHelper interface {
	Helper()
}

// Expect starts an assertion chain on subject, evaluated by a
// new engine with the built-in and validation assertions. Failures
// are reported to t with msgAndArgs attached, as in testify.
//
//	validation.Expect(t, res).Not().Validates().HasErrmsg(`"port" is required`)
func Expect(t assert.TestingT, subject any, msgAndArgs ...any) Assertion {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	engine := assertion.NewEngine()
	if err := Register(engine); err != nil {
		assert.Fail(t, err.Error(), msgAndArgs...)
		return Assertion{t: t, subject: subject, failed: true}
	}
	return NewExpecter(engine).That(t, subject, msgAndArgs...)
}

// Expecter starts assertion chains evaluated by one engine. The
// engine must have the validation assertions registered.
type Expecter struct {
	engine assertion.Engine
}

// NewExpecter returns an Expecter backed by engine.
func NewExpecter(engine assertion.Engine) Expecter {
	return Expecter{engine: engine}
}

// That starts an assertion chain on subject.
func (e Expecter) That(t assert.TestingT, subject any, msgAndArgs ...any) Assertion {
	return Assertion{
		t:          t,
		engine:     e.engine,
		subject:    subject,
		msgAndArgs: msgAndArgs,
	}
}

// Assertion is one link of an assertion chain. Every method
// returns the next link and leaves the receiver unchanged. The
// first failing link reports to the test and turns the rest of
// the chain into no-ops.
type Assertion struct {
	t          assert.TestingT
	engine     assertion.Engine
	subject    any
	not        bool
	failed     bool
	msgAndArgs []any
}

// Subject returns the value the next link will inspect.
func (a Assertion) Subject() any {
	return a.subject
}

// Failed reports whether a link of the chain failed.
func (a Assertion) Failed() bool {
	return a.failed
}

// Not negates the next link only.
func (a Assertion) Not() Assertion {
	a.not = !a.not
	return a
}

// IsValidationResult asserts the subject is a well-formed
// validation result.
func (a Assertion) IsValidationResult() Assertion {
	return a.run(assertion.Definition{Type: TypeValidation})
}

// Validates asserts the subject is a validation result without
// an error.
func (a Assertion) Validates() Assertion {
	return a.run(assertion.Definition{Type: TypeValidate})
}

// HasError asserts the subject carries an error. The error
// becomes the subject.
func (a Assertion) HasError() Assertion {
	return a.run(assertion.Definition{Type: TypeError})
}

// HasValue asserts the subject carries a value. The value becomes
// the subject.
func (a Assertion) HasValue() Assertion {
	return a.run(assertion.Definition{Type: TypeValue})
}

// HasErrmsgs asserts the subject's error has detail messages. The
// list of messages becomes the subject.
func (a Assertion) HasErrmsgs() Assertion {
	return a.run(assertion.Definition{Type: TypeErrmsgs})
}

// HasErrmsg asserts one of the subject's detail messages is
// exactly msg.
func (a Assertion) HasErrmsg(msg string) Assertion {
	return a.run(assertion.Definition{Type: TypeErrmsg, Value: msg})
}

// Equal asserts the subject equals expected.
func (a Assertion) Equal(expected any) Assertion {
	return a.run(assertion.Definition{Type: "equals", Value: expected})
}

// Len asserts the subject has exactly n elements.
func (a Assertion) Len(n int) Assertion {
	return a.run(assertion.Definition{Type: "exact_count", Value: n})
}

// Contains asserts the subject string contains element, or the
// subject list includes it.
func (a Assertion) Contains(element any) Assertion {
	return a.run(assertion.Definition{Type: "contains", Value: element})
}

// NotEmpty asserts the subject is neither nil nor empty.
func (a Assertion) NotEmpty() Assertion {
	return a.run(assertion.Definition{Type: "not_empty"})
}

// Property asserts the subject has the dotted path, optionally
// equal to expected. The property becomes the subject.
func (a Assertion) Property(path string, expected ...any) Assertion {
	def := assertion.Definition{Type: "property", Path: path}
	if len(expected) > 0 {
		def.Value = expected[0]
	}
	return a.run(def)
}

func (a Assertion) run(def assertion.Definition) Assertion {
	if a.failed {
		return a
	}
	if h, ok := a.t.(tHelper); ok {
		h.Helper()
	}

	def.Not = a.not
	res := a.engine.Evaluate(def, a.subject)

	next := a
	next.not = false
	next.subject = res.Subject
	if !res.Passed {
		assert.Fail(a.t, res.Message, a.msgAndArgs...)
		next.failed = true
	}
	return next
}

// AssertIsValidationResult reports a failure to t unless
// candidate is a validation result, and returns whether it is.
func AssertIsValidationResult(t assert.TestingT, candidate any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := CheckShape(candidate); err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	return true
}

// RequireIsValidationResult is like AssertIsValidationResult but
// stops the test on failure.
func RequireIsValidationResult(t require.TestingT, candidate any, msgAndArgs ...any) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if AssertIsValidationResult(t, candidate, msgAndArgs...) {
		return
	}
	t.FailNow()
}
