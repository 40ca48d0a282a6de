// Package assertion provides an extensible assertion evaluation
// engine. Evaluators are registered by type name; a definition
// may be negated and may carry follow-up definitions that run
// against the subject it produces, which is how extensions
// expose derived values (an error, a value, a list of messages)
// to the rest of an assertion chain.
package assertion

// Definition describes a single assertion to evaluate against a
// subject.
type Definition struct {
	// Type is the evaluator type (e.g., "contains",
	// "errmsgs", "exact_count").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value to check when evaluated
	// through EvaluateAll.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`

	// Value is the expected value for single-value assertions.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds expected values for multi-value assertions
	// (e.g., "contains_any").
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Path is a dotted property path for the "property"
	// evaluator, such as "details.0.message".
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Not negates this definition only. Precondition failures
	// reported through Outcome.Err are never negated.
	Not bool `json:"not,omitempty" yaml:"not,omitempty"`

	// Then holds definitions evaluated against the subject this
	// definition produces. They run only when it passed.
	Then []Definition `json:"then,omitempty" yaml:"then,omitempty"`

	// Message is a human-readable description prefixed to the
	// failure message.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Result captures the outcome of evaluating a single assertion
// and, recursively, its follow-up definitions.
type Result struct {
	// Type is the assertion type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the value checked.
	Target string `json:"target,omitempty"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected,omitempty"`

	// Actual is the subject the assertion was evaluated on.
	Actual any `json:"actual"`

	// Subject is the subject handed to the next link of the
	// chain. It equals Actual unless the evaluator pivoted.
	Subject any `json:"subject,omitempty"`

	// Passed indicates whether the assertion and all of its
	// follow-ups succeeded.
	Passed bool `json:"passed"`

	// Negated records that the definition had Not set.
	Negated bool `json:"negated,omitempty"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Then holds the results of the follow-up definitions.
	Then []Result `json:"then,omitempty"`
}
