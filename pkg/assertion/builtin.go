package assertion

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

// evaluateNotEmpty checks that a value is non-nil and non-empty.
func evaluateNotEmpty(
	_ Definition,
	value any,
) Outcome {
	const negated = "expected value to be empty"

	if isNil(value) {
		return Check(false, "value is nil", negated)
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return Check(false, "string is empty", negated)
		}
	default:
		if n, ok := collectionLen(value); ok && n == 0 {
			return Check(false, "collection is empty", negated)
		}
	}

	return Check(true, "value is not empty", negated)
}

// evaluateContains checks that a string value contains the
// expected substring (case-insensitive), or that a slice or
// array holds an element equal to the expected value.
func evaluateContains(
	assertion Definition,
	value any,
) Outcome {
	if str, ok := value.(string); ok {
		expected, ok := assertion.Value.(string)
		if !ok {
			return Check(false, "expected value is not a string", "")
		}
		found := strings.Contains(
			strings.ToLower(str),
			strings.ToLower(expected),
		)
		return Check(
			found,
			describeContains(found, str, expected),
			fmt.Sprintf("expected %q not to contain %q", str, expected),
		)
	}

	items, ok := toSlice(value)
	if !ok {
		return Check(false, "value is neither a string nor a list", "")
	}

	found := false
	for _, item := range items {
		if objectsEqual(assertion.Value, item) {
			found = true
			break
		}
	}

	return Check(
		found,
		describeContains(found, items, assertion.Value),
		fmt.Sprintf("expected %#v not to include %#v", items, assertion.Value),
	)
}

func describeContains(found bool, haystack, needle any) string {
	if found {
		return fmt.Sprintf("contains %#v", needle)
	}
	return fmt.Sprintf("expected %#v to include %#v", haystack, needle)
}

// evaluateContainsAny checks that a string value contains at
// least one of the expected substrings.
func evaluateContainsAny(
	assertion Definition,
	value any,
) Outcome {
	str, ok := value.(string)
	if !ok {
		return Check(false, "value is not a string", "")
	}

	lower := strings.ToLower(str)

	var values []string
	switch v := assertion.Value.(type) {
	case string:
		values = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	case []string:
		values = v
	default:
		for _, item := range assertion.Values {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	}

	for _, expected := range values {
		trimmed := strings.TrimSpace(expected)
		if strings.Contains(lower, strings.ToLower(trimmed)) {
			return Check(
				true,
				fmt.Sprintf("contains '%s'", trimmed),
				fmt.Sprintf("expected %q to contain none of %v", str, values),
			)
		}
	}

	return Check(false, fmt.Sprintf(
		"does not contain any of: %v", values,
	), "")
}

// evaluateEquals checks deep equality with the expected value.
// Numbers compare by value regardless of their Go type, since
// YAML and JSON definitions decode them differently.
func evaluateEquals(
	assertion Definition,
	value any,
) Outcome {
	equal := objectsEqual(assertion.Value, value)
	if equal {
		return Check(
			true,
			fmt.Sprintf("equals %#v", assertion.Value),
			fmt.Sprintf("expected %#v not to equal %#v", value, assertion.Value),
		)
	}
	return Check(false, fmt.Sprintf(
		"expected %#v to equal %#v", value, assertion.Value,
	), "")
}

// evaluateMinLength checks that a string value meets a minimum
// character length.
func evaluateMinLength(
	assertion Definition,
	value any,
) Outcome {
	str, ok := value.(string)
	if !ok {
		return Check(false, "value is not a string", "")
	}

	minLength, ok := toInt(assertion.Value)
	if !ok {
		return Check(false, "expected value is not a number", "")
	}

	actual := len(str)
	if actual >= minLength {
		return Check(true, fmt.Sprintf(
			"length %d >= %d", actual, minLength,
		), fmt.Sprintf("expected length %d < %d", actual, minLength))
	}

	return Check(false, fmt.Sprintf(
		"length %d < %d", actual, minLength,
	), "")
}

// evaluateMinCount checks that a countable value meets a
// minimum count.
func evaluateMinCount(
	assertion Definition,
	value any,
) Outcome {
	count, ok := toCount(value)
	if !ok {
		return Check(false, "value is not countable", "")
	}

	minCount, ok := toInt(assertion.Value)
	if !ok {
		return Check(false, "expected value is not a number", "")
	}

	if count >= minCount {
		return Check(true, fmt.Sprintf(
			"count %d >= %d", count, minCount,
		), fmt.Sprintf("expected count %d < %d", count, minCount))
	}

	return Check(false, fmt.Sprintf(
		"count %d < %d", count, minCount,
	), "")
}

// evaluateExactCount checks that a countable value exactly
// matches the expected count.
func evaluateExactCount(
	assertion Definition,
	value any,
) Outcome {
	count, ok := toCount(value)
	if !ok {
		return Check(false, "value is not countable", "")
	}

	expected, ok := toInt(assertion.Value)
	if !ok {
		return Check(false, "expected value is not a number", "")
	}

	if count == expected {
		return Check(true, fmt.Sprintf(
			"count %d == %d", count, expected,
		), fmt.Sprintf("expected count not to be %d", expected))
	}

	return Check(false, fmt.Sprintf(
		"count %d != %d", count, expected,
	), "")
}

// evaluateAllValid checks that every item in a list is non-nil
// and non-empty.
func evaluateAllValid(
	_ Definition,
	value any,
) Outcome {
	items, ok := toSlice(value)
	if !ok {
		return Check(false, "value is not a list", "")
	}

	for i, item := range items {
		if isNil(item) {
			return Check(false, fmt.Sprintf("item %d is nil", i), "")
		}
		if str, ok := item.(string); ok && str == "" {
			return Check(false, fmt.Sprintf("item %d is empty", i), "")
		}
	}

	return Check(true, "all items are valid", "expected an invalid item")
}

// evaluateNoDuplicates checks that a list contains no duplicate
// values (compared via fmt.Sprintf("%v")).
func evaluateNoDuplicates(
	_ Definition,
	value any,
) Outcome {
	items, ok := toSlice(value)
	if !ok {
		return Check(false, "value is not a list", "")
	}

	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := fmt.Sprintf("%v", item)
		if seen[key] {
			return Check(false, fmt.Sprintf(
				"duplicate found: %s", key,
			), "")
		}
		seen[key] = true
	}

	return Check(true, "no duplicates found", "expected duplicates")
}

// evaluateAllPass checks that all items in a list of results
// have passed. Accepts []Result or []any with map entries
// containing a "passed" key.
func evaluateAllPass(
	_ Definition,
	value any,
) Outcome {
	const negated = "expected at least one failure"

	results, ok := value.([]Result)
	if !ok {
		items, ok := value.([]any)
		if !ok {
			return Check(false, "value is not an array of results", "")
		}
		for i, item := range items {
			if m, ok := item.(map[string]any); ok {
				if p, ok := m["passed"].(bool); ok && !p {
					return Check(false, fmt.Sprintf(
						"item %d failed", i,
					), "")
				}
			}
		}
		return Check(true, "all items passed", negated)
	}

	for _, result := range results {
		if !result.Passed {
			return Check(false, fmt.Sprintf(
				"assertion '%s' failed: %s",
				result.Type, result.Message,
			), "")
		}
	}

	return Check(true, "all assertions passed", negated)
}

// evaluateProperty resolves Path on the subject and pivots the
// chain to the property. When Value is set the property must
// also equal it.
func evaluateProperty(
	assertion Definition,
	value any,
) Outcome {
	if assertion.Path == "" {
		return Precondition(errors.New(
			"property assertion requires a path",
		))
	}

	prop, found := Lookup(value, assertion.Path)
	if !found {
		return Pivot(
			false,
			fmt.Sprintf("expected %#v to have property %q", value, assertion.Path),
			"",
			nil,
		)
	}

	if assertion.Value == nil {
		return Pivot(
			true,
			fmt.Sprintf("has property %q", assertion.Path),
			fmt.Sprintf("expected %#v not to have property %q", value, assertion.Path),
			prop,
		)
	}

	if objectsEqual(assertion.Value, prop) {
		return Pivot(
			true,
			fmt.Sprintf("property %q equals %#v", assertion.Path, prop),
			fmt.Sprintf(
				"expected property %q not to equal %#v",
				assertion.Path, assertion.Value,
			),
			prop,
		)
	}

	return Pivot(
		false,
		fmt.Sprintf(
			"expected property %q to equal %#v but got %#v",
			assertion.Path, assertion.Value, prop,
		),
		"",
		prop,
	)
}

// --- helpers ---

// objectsEqual compares like testify does, but treats numbers of
// different Go types as equal when their values match.
func objectsEqual(expected, actual any) bool {
	if assert.ObjectsAreEqual(expected, actual) {
		return true
	}
	e, eok := toFloat64(expected)
	a, aok := toFloat64(actual)
	return eok && aok && e == a
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice,
		reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// toSlice copies any slice or array into a []any.
func toSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// collectionLen returns the length of slices, arrays and maps.
func collectionLen(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// toInt converts an any value to int.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}

// toFloat64 converts an any value to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// toCount extracts an integer count from a value. Numbers count
// as themselves; strings, slices, arrays and maps by length.
func toCount(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case float64:
		return int(val), true
	case int64:
		return int(val), true
	case string:
		return len(val), true
	}
	return collectionLen(v)
}
