package assertion

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"

	"digital.vasic.validresult/pkg/logging"
)

var (
	// ErrAlreadyRegistered is returned by Register when the
	// assertion type already has an evaluator.
	ErrAlreadyRegistered = errors.New("assertion type already registered")

	// ErrUnknownType is reported when a definition names a type
	// with no registered evaluator.
	ErrUnknownType = errors.New("unknown assertion type")
)

// Engine defines the interface for assertion evaluation engines.
type Engine interface {
	// Evaluate checks a single assertion, and its follow-ups,
	// against the given subject.
	Evaluate(assertion Definition, subject any) Result

	// EvaluateAll checks multiple assertions against a map of
	// named values. Each assertion's Target field is used as
	// the key into the values map.
	EvaluateAll(
		assertions []Definition,
		values map[string]any,
	) []Result

	// Register adds a custom evaluator for the given assertion
	// type. Returns an error if the type is already registered.
	Register(assertionType string, evaluator Evaluator) error

	// HasEvaluator reports whether the type is registered.
	HasEvaluator(assertionType string) bool
}

// EngineOption configures a DefaultEngine.
type EngineOption func(*DefaultEngine)

// WithLogger sets the logger used by the engine.
func WithLogger(logger logging.Logger) EngineOption {
	return func(e *DefaultEngine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithoutBuiltins creates the engine with no pre-registered
// evaluators.
func WithoutBuiltins() EngineOption {
	return func(e *DefaultEngine) {
		e.builtins = false
	}
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	mu         sync.RWMutex
	evaluators map[string]Evaluator
	logger     logging.Logger
	builtins   bool
}

// NewEngine creates a DefaultEngine with the built-in
// evaluators pre-registered.
func NewEngine(opts ...EngineOption) *DefaultEngine {
	e := &DefaultEngine{
		evaluators: make(map[string]Evaluator),
		logger:     logging.NullLogger{},
		builtins:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.builtins {
		e.registerDefaults()
	}
	return e
}

func (e *DefaultEngine) registerDefaults() {
	e.evaluators["not_empty"] = evaluateNotEmpty
	e.evaluators["contains"] = evaluateContains
	e.evaluators["contains_any"] = evaluateContainsAny
	e.evaluators["equals"] = evaluateEquals
	e.evaluators["min_length"] = evaluateMinLength
	e.evaluators["min_count"] = evaluateMinCount
	e.evaluators["exact_count"] = evaluateExactCount
	e.evaluators["all_valid"] = evaluateAllValid
	e.evaluators["no_duplicates"] = evaluateNoDuplicates
	e.evaluators["all_pass"] = evaluateAllPass
	e.evaluators["property"] = evaluateProperty
}

// Register adds a custom evaluator for the given assertion type.
func (e *DefaultEngine) Register(
	assertionType string,
	evaluator Evaluator,
) error {
	if assertionType == "" {
		return errors.New("assertion type cannot be empty")
	}
	if evaluator == nil {
		return errors.Newf(
			"evaluator for %q cannot be nil", assertionType,
		)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.evaluators[assertionType]; exists {
		return errors.Wrapf(
			ErrAlreadyRegistered, "%s", assertionType,
		)
	}

	e.evaluators[assertionType] = evaluator
	e.logger.Debug("evaluator registered",
		logging.StringField("type", assertionType),
	)
	return nil
}

// Evaluate runs a single assertion against the provided subject,
// then its follow-ups against the subject it produced.
func (e *DefaultEngine) Evaluate(
	assertion Definition,
	subject any,
) Result {
	e.mu.RLock()
	evaluator, exists := e.evaluators[assertion.Type]
	e.mu.RUnlock()

	result := Result{
		Type:     assertion.Type,
		Target:   assertion.Target,
		Expected: assertion.Value,
		Actual:   subject,
		Subject:  subject,
		Negated:  assertion.Not,
	}

	if !exists {
		result.Message = errors.Wrapf(
			ErrUnknownType, "%s", assertion.Type,
		).Error()
		return result
	}

	out := evaluator(assertion, subject)
	if out.Rewrite {
		result.Subject = out.Subject
	}

	switch {
	case out.Err != nil:
		result.Message = out.Err.Error()
	case out.Passed == assertion.Not:
		result.Message = failureMessage(assertion, out)
	default:
		result.Passed = true
		result.Message = out.Message
	}

	if !result.Passed {
		if assertion.Message != "" {
			result.Message = assertion.Message + ": " + result.Message
		}
		e.logger.Debug("assertion failed",
			logging.StringField("type", assertion.Type),
			logging.BoolField("negated", assertion.Not),
			logging.StringField("message", result.Message),
		)
		return result
	}

	for _, next := range assertion.Then {
		child := e.Evaluate(next, result.Subject)
		result.Then = append(result.Then, child)
		if !child.Passed && result.Passed {
			result.Passed = false
			result.Message = fmt.Sprintf(
				"%s: %s", child.Type, child.Message,
			)
		}
	}

	return result
}

func failureMessage(assertion Definition, out Outcome) string {
	if !assertion.Not {
		return out.Message
	}
	if out.NegatedMessage != "" {
		return out.NegatedMessage
	}
	return fmt.Sprintf("expected %s to fail: %s", assertion.Type, out.Message)
}

// EvaluateAll runs multiple assertions against a map of named
// values. If a target is missing, the assertion fails.
func (e *DefaultEngine) EvaluateAll(
	assertions []Definition,
	values map[string]any,
) []Result {
	results := make([]Result, 0, len(assertions))

	for _, a := range assertions {
		value, exists := values[a.Target]
		if !exists {
			results = append(results, Result{
				Type:    a.Type,
				Target:  a.Target,
				Negated: a.Not,
				Message: fmt.Sprintf(
					"target not found: %s", a.Target,
				),
			})
			continue
		}

		results = append(results, e.Evaluate(a, value))
	}

	return results
}

// HasEvaluator returns true if the given assertion type has a
// registered evaluator.
func (e *DefaultEngine) HasEvaluator(
	assertionType string,
) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, exists := e.evaluators[assertionType]
	return exists
}

// Types returns the registered assertion types, sorted.
func (e *DefaultEngine) Types() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	types := make([]string, 0, len(e.evaluators))
	for t := range e.evaluators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
