package assertion

// Outcome is what an Evaluator reports for one subject.
type Outcome struct {
	// Passed is the result of the positive form of the check.
	Passed bool

	// Message describes the outcome of the positive form. It is
	// the failure message when Passed is false.
	Message string

	// NegatedMessage is the failure message used when the
	// definition is negated and Passed is true. When empty the
	// engine derives one from Message.
	NegatedMessage string

	// Subject replaces the chain subject when Rewrite is set,
	// whether or not the check passed.
	Subject any
	Rewrite bool

	// Err reports a precondition failure. It fails the
	// assertion regardless of negation.
	Err error
}

// Evaluator is a function that evaluates a single assertion type
// against a concrete subject.
type Evaluator func(assertion Definition, subject any) Outcome

// Check builds an Outcome for a plain predicate.
func Check(passed bool, message, negatedMessage string) Outcome {
	return Outcome{
		Passed:         passed,
		Message:        message,
		NegatedMessage: negatedMessage,
	}
}

// Pivot builds an Outcome that hands subject to the rest of the
// chain.
func Pivot(
	passed bool,
	message, negatedMessage string,
	subject any,
) Outcome {
	return Outcome{
		Passed:         passed,
		Message:        message,
		NegatedMessage: negatedMessage,
		Subject:        subject,
		Rewrite:        true,
	}
}

// Precondition builds an Outcome for a subject the evaluator
// cannot inspect at all.
func Precondition(err error) Outcome {
	return Outcome{Err: err}
}
