package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotValidationResult is wrapped by every ShapeError.
var ErrNotValidationResult = errors.New("not a validation result")

// DefaultIncidentalFields are fields some validation libraries
// attach to their results alongside error and value.
var DefaultIncidentalFields = []string{"then", "catch"}

const (
	fieldError = "error"
	fieldValue = "value"
)

// Reason identifies which structural rule a candidate violated.
type Reason string

// Structural rules, checked in this order.
const (
	ReasonNotObject      Reason = "it must be an object"
	ReasonEmpty          Reason = "it is an empty object"
	ReasonMissingKeys    Reason = "it is missing required keys"
	ReasonUnexpectedKeys Reason = "it contains unexpected keys"
)

// ShapeError reports that a candidate is not a well-formed
// validation result.
type ShapeError struct {
	Reason Reason
	// Keys lists the missing or unexpected keys, sorted.
	Keys      []string
	Candidate any
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf(
		"%s is not a validation result because %s",
		describe(e.Candidate), e.Reason,
	)
}

func (e *ShapeError) Unwrap() error {
	return ErrNotValidationResult
}

// Classifier decides whether candidates are validation results.
// The zero value allows no incidental fields.
type Classifier struct {
	incidental map[string]bool
}

// NewClassifier returns a Classifier that ignores the given
// incidental fields in addition to error and value.
func NewClassifier(incidental ...string) Classifier {
	c := Classifier{incidental: make(map[string]bool, len(incidental))}
	for _, f := range incidental {
		c.incidental[f] = true
	}
	return c
}

var defaultClassifier = NewClassifier(DefaultIncidentalFields...)

// CheckShape returns a *ShapeError when candidate is not a
// validation result, using the default incidental fields.
func CheckShape(candidate any) error {
	return defaultClassifier.Check(candidate)
}

// IsValidationResult reports whether candidate is a validation
// result, using the default incidental fields.
func IsValidationResult(candidate any) bool {
	return defaultClassifier.IsValidationResult(candidate)
}

// IsValidationResult reports whether candidate passes Check.
func (c Classifier) IsValidationResult(candidate any) bool {
	return c.Check(candidate) == nil
}

// Check applies the structural rules in order and returns the
// first violation as a *ShapeError.
func (c Classifier) Check(candidate any) error {
	obj, ok := asObject(candidate)
	if !ok {
		return &ShapeError{Reason: ReasonNotObject, Candidate: candidate}
	}

	if len(obj) == 0 {
		return &ShapeError{Reason: ReasonEmpty, Candidate: candidate}
	}

	var missing []string
	for _, required := range []string{fieldError, fieldValue} {
		if _, ok := obj[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return &ShapeError{
			Reason:    ReasonMissingKeys,
			Keys:      missing,
			Candidate: candidate,
		}
	}

	var unexpected []string
	for key := range obj {
		if key == fieldError || key == fieldValue || c.incidental[key] {
			continue
		}
		unexpected = append(unexpected, key)
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return &ShapeError{
			Reason:    ReasonUnexpectedKeys,
			Keys:      unexpected,
			Candidate: candidate,
		}
	}

	return nil
}

// asObject returns the fields of a string-keyed map or of a
// struct, following pointers and interfaces. Struct field names
// come from the json tag, else the Go name, and untagged embedded
// structs are flattened. Fields tagged "-" and unexported fields
// are skipped. Field values keep their Go types so they can become
// chain subjects unchanged.
func asObject(candidate any) (map[string]any, bool) {
	if candidate == nil {
		return nil, false
	}

	rv := reflect.ValueOf(candidate)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		obj := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = iter.Value().Interface()
		}
		return obj, true

	case reflect.Struct:
		obj := make(map[string]any, rv.NumField())
		structFields(rv, obj)
		return obj, true
	}

	return nil, false
}

// structFields copies the exported fields of rv into obj by json
// name. Untagged embedded structs are promoted like encoding/json
// does; fields closer to the top win.
func structFields(rv reflect.Value, obj map[string]any) {
	rt := rv.Type()
	var embedded []reflect.Value
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tagName, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tagName == "-" {
			continue
		}

		if f.Anonymous && tagName == "" {
			fv := rv.Field(i)
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				embedded = append(embedded, fv)
				continue
			}
		}
		fv := rv.Field(i)
		if !f.IsExported() || !fv.CanInterface() {
			continue
		}

		name := f.Name
		if tagName != "" {
			name = tagName
		}
		obj[name] = fv.Interface()
	}

	for _, fv := range embedded {
		promoted := make(map[string]any, fv.NumField())
		structFields(fv, promoted)
		for name, v := range promoted {
			if _, taken := obj[name]; !taken {
				obj[name] = v
			}
		}
	}
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
