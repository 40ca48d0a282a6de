// Package schema produces validation results from real
// validators: go-playground struct tags and JSON Schema. Every
// producer returns a validation.Result whose error carries one
// detail per violation, with joi-style messages such as
// `"port" is required`.
package schema

import (
	"strings"

	"digital.vasic.validresult/pkg/logging"
	"digital.vasic.validresult/pkg/validation"
)

// Validator checks a value and reports the outcome as a
// validation result.
type Validator interface {
	Validate(value any) validation.Result
}

// rootLabel names the validated value itself in messages.
const rootLabel = "value"

// label renders a detail path the way it appears in messages.
func label(path []string) string {
	if len(path) == 0 {
		return rootLabel
	}
	return strings.Join(path, ".")
}

// Option configures the validators of this package.
type Option func(*options)

type options struct {
	abortEarly bool
	logger     logging.Logger
}

func newOptions(opts ...Option) options {
	o := options{
		abortEarly: true,
		logger:     logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAbortEarly controls whether validation stops at the first
// violation. It defaults to true.
func WithAbortEarly(abort bool) Option {
	return func(o *options) {
		o.abortEarly = abort
	}
}

// WithLogger sets the logger told about failed validations.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// finish builds the result for value from the collected details.
func (o options) finish(source string, value any, details []validation.Detail) validation.Result {
	if len(details) == 0 {
		return validation.Succeeded(value)
	}
	if o.abortEarly {
		details = details[:1]
	}

	msgs := make([]string, 0, len(details))
	for _, d := range details {
		msgs = append(msgs, d.Message)
	}
	o.logger.Debug("validation failed",
		logging.StringField("validator", source),
		logging.IntField("violations", len(details)),
		logging.StringsField("messages", msgs),
	)
	return validation.Failed(value, details...)
}
