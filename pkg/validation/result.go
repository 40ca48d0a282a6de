package validation

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
)

// ErrorName is the Name of errors built by NewValidationError.
const ErrorName = "ValidationError"

// Detail is a single violation carried by a ValidationError.
type Detail struct {
	Message string         `json:"message" yaml:"message" mapstructure:"message"`
	Path    []string       `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
	Type    string         `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty" mapstructure:"context"`
}

// ValidationError is the error of a failed validation.
type ValidationError struct {
	Name    string   `json:"name" yaml:"name" mapstructure:"name"`
	Message string   `json:"message" yaml:"message" mapstructure:"message"`
	Details []Detail `json:"details" yaml:"details" mapstructure:"details"`
}

// NewValidationError builds a ValidationError whose message joins
// the detail messages.
func NewValidationError(details ...Detail) *ValidationError {
	e := &ValidationError{
		Name:    ErrorName,
		Details: details,
	}
	e.Message = strings.Join(e.Messages(), ". ")
	return e
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.Join(e.Messages(), ". ")
}

// Messages returns the detail messages in order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

// Result is the outcome of a validation call. Exactly one of
// Error and Value is meaningful, although producers may set Value
// on failure too.
type Result struct {
	Error *ValidationError `json:"error" yaml:"error" mapstructure:"error"`
	Value any              `json:"value" yaml:"value" mapstructure:"value"`
}

// Succeeded returns a successful Result holding value.
func Succeeded(value any) Result {
	return Result{Value: value}
}

// Failed returns a failed Result for value with the given
// violations.
func Failed(value any, details ...Detail) Result {
	return Result{
		Error: NewValidationError(details...),
		Value: value,
	}
}

// OK reports whether the result carries no error.
func (r Result) OK() bool {
	return r.Error == nil
}

// DecodeResult converts a loosely typed validation result, such as
// one decoded from JSON, into a Result. The input must pass
// CheckShape.
func DecodeResult(raw map[string]any) (Result, error) {
	var res Result
	if err := CheckShape(raw); err != nil {
		return res, err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &res,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return res, errors.Wrap(err, "create result decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return Result{}, errors.Wrap(err, "decode validation result")
	}
	return res, nil
}
