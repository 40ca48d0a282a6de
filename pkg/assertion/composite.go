package assertion

import "fmt"

// AllPassComposite evaluates assertions against named values and
// reports a single result that passes only when all of them do.
func AllPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if !r.Passed {
			return Result{
				Type:   "all_pass",
				Passed: false,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' failed: %s",
					r.Type, r.Target, r.Message,
				),
				Then: results,
			}
		}
	}

	return Result{
		Type:   "all_pass",
		Passed: true,
		Message: fmt.Sprintf(
			"all %d assertions passed", len(results),
		),
		Then: results,
	}
}

// AnyPassComposite evaluates assertions against named values and
// passes when at least one of them does.
func AnyPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if r.Passed {
			return Result{
				Type:   "any_pass",
				Passed: true,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' passed",
					r.Type, r.Target,
				),
				Then: results,
			}
		}
	}

	return Result{
		Type:   "any_pass",
		Passed: false,
		Message: fmt.Sprintf(
			"none of %d assertions passed",
			len(results),
		),
		Then: results,
	}
}

// CompositeAllPass returns an Evaluator that runs a fixed set of
// sub-assertions against the subject and requires all to pass.
// It can be registered under its own type name.
func CompositeAllPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return func(_ Definition, value any) Outcome {
		r := AllPassComposite(engine, subAssertions, sameValue(subAssertions, value))
		return Check(r.Passed, r.Message, "expected at least one sub-assertion to fail")
	}
}

// CompositeAnyPass returns an Evaluator that runs a fixed set of
// sub-assertions against the subject and requires at least one
// to pass.
func CompositeAnyPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return func(_ Definition, value any) Outcome {
		r := AnyPassComposite(engine, subAssertions, sameValue(subAssertions, value))
		return Check(r.Passed, r.Message, "expected every sub-assertion to fail")
	}
}

func sameValue(assertions []Definition, value any) map[string]any {
	values := map[string]any{}
	for _, a := range assertions {
		values[a.Target] = value
	}
	return values
}
