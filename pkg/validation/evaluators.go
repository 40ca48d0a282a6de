package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"digital.vasic.validresult/pkg/assertion"
	"digital.vasic.validresult/pkg/logging"
)

// Assertion types registered by Register.
const (
	TypeValidation = "validation"
	TypeValidate   = "validate"
	TypeError      = "error"
	TypeValue      = "value"
	TypeErrmsgs    = "errmsgs"
	TypeErrmsg     = "errmsg"
)

// Types returns the assertion types registered by Register.
func Types() []string {
	return []string{
		TypeValidation, TypeValidate, TypeError,
		TypeValue, TypeErrmsgs, TypeErrmsg,
	}
}

// Register installs the validation assertions into engine. It
// registers nothing when any of the types is already taken.
func Register(engine assertion.Engine, opts ...Option) error {
	if engine == nil {
		return errors.New("register validation assertions: engine is nil")
	}

	o := newOptions(opts...)
	ins := inspector{
		classifier: NewClassifier(o.config.IncidentalFields...),
		indent:     o.config.DumpIndent,
	}

	evaluators := map[string]assertion.Evaluator{
		TypeValidation: ins.isResult,
		TypeValidate:   ins.validates,
		TypeError:      ins.hasError,
		TypeValue:      ins.hasValue,
		TypeErrmsgs:    ins.hasErrmsgs,
		TypeErrmsg:     ins.hasErrmsg,
	}

	for _, t := range Types() {
		if engine.HasEvaluator(t) {
			return errors.Wrapf(
				assertion.ErrAlreadyRegistered,
				"register validation assertions: %s", t,
			)
		}
	}
	for _, t := range Types() {
		if err := engine.Register(t, evaluators[t]); err != nil {
			return errors.Wrap(err, "register validation assertions")
		}
	}

	o.logger.Info("validation assertions registered",
		logging.StringsField("types", Types()),
		logging.StringsField("incidental_fields", o.config.IncidentalFields),
	)
	return nil
}

// inspector holds the evaluators of one registration.
type inspector struct {
	classifier Classifier
	indent     string
}

func (ins inspector) isResult(_ assertion.Definition, subject any) assertion.Outcome {
	if err := ins.classifier.Check(subject); err != nil {
		return assertion.Check(false, err.Error(), "")
	}
	d := describe(subject)
	return assertion.Check(
		true,
		d+" is a validation result",
		d+" should not be a validation result but it is",
	)
}

func (ins inspector) validates(_ assertion.Definition, subject any) assertion.Outcome {
	if err := ins.classifier.Check(subject); err != nil {
		return assertion.Precondition(err)
	}

	d := describe(subject)
	errValue := ErrorOf(subject)
	if errValue == nil {
		return assertion.Check(
			true,
			d+" validates",
			d+" should not validate but it does",
		)
	}

	return assertion.Check(false, fmt.Sprintf(
		"%s should validate but does not because %s",
		d, failureReason(errValue),
	), "")
}

func (ins inspector) hasError(_ assertion.Definition, subject any) assertion.Outcome {
	if err := ins.classifier.Check(subject); err != nil {
		return assertion.Precondition(err)
	}

	d := describe(subject)
	full := dump(subject, ins.indent)
	errValue := ErrorOf(subject)

	message := d + " has an error"
	if errValue == nil {
		message = fmt.Sprintf("%s should have an error but does not: %s", d, full)
	}
	return assertion.Pivot(
		errValue != nil,
		message,
		fmt.Sprintf("%s should not have an error but does: %s", d, full),
		errValue,
	)
}

func (ins inspector) hasValue(_ assertion.Definition, subject any) assertion.Outcome {
	if err := ins.classifier.Check(subject); err != nil {
		return assertion.Precondition(err)
	}

	d := describe(subject)
	value := ValueOf(subject)

	message := d + " has a value"
	if value == nil {
		message = d + " should have a value"
	}
	return assertion.Pivot(
		value != nil,
		message,
		d+" should not have a value",
		value,
	)
}

func (ins inspector) hasErrmsgs(_ assertion.Definition, subject any) assertion.Outcome {
	if err := ins.classifier.Check(subject); err != nil {
		return assertion.Precondition(err)
	}

	d := describe(subject)
	msgs := ErrorMessages(subject)

	message := fmt.Sprintf("%s has errmsgs %q", d, msgs)
	if len(msgs) == 0 {
		message = fmt.Sprintf("expected %s to have errmsgs", d)
	}
	return assertion.Pivot(
		len(msgs) > 0,
		message,
		fmt.Sprintf("expected %s to not have errmsgs but got %q", d, msgs),
		msgs,
	)
}

func (ins inspector) hasErrmsg(def assertion.Definition, subject any) assertion.Outcome {
	if err := ins.classifier.Check(subject); err != nil {
		return assertion.Precondition(err)
	}

	expected, ok := def.Value.(string)
	if !ok {
		return assertion.Precondition(errors.Newf(
			"errmsg needs a string message, got %T", def.Value,
		))
	}

	d := describe(subject)
	msgs := ErrorMessages(subject)
	found := slices.Contains(msgs, expected)

	message := fmt.Sprintf("%s has error message %q", d, expected)
	if !found {
		message = fmt.Sprintf(
			"expected %s to have error message %q but got %q",
			d, expected, msgs,
		)
	}
	return assertion.Check(
		found,
		message,
		fmt.Sprintf(
			"expected %s to not have error message %q but got %q",
			d, expected, msgs,
		),
	)
}

// failureReason explains a validation error by its detail
// messages, falling back to the error itself.
func failureReason(errValue any) string {
	if msgs := messagesOf(errValue); len(msgs) > 0 {
		return strings.Join(msgs, ", ")
	}
	if err, ok := errValue.(error); ok {
		return err.Error()
	}
	return describe(errValue)
}
