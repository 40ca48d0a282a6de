package validation

import (
	"fmt"
	"reflect"
)

// ErrorOf returns the error of a validation result, or nil when
// the result has none or candidate is not an object.
func ErrorOf(candidate any) any {
	return field(candidate, fieldError)
}

// ValueOf returns the value of a validation result, or nil when
// it is absent. Zero values such as 0, "" and false are returned
// as they are; only nil and typed nil count as absent.
func ValueOf(candidate any) any {
	return field(candidate, fieldValue)
}

func field(candidate any, name string) any {
	obj, ok := asObject(candidate)
	if !ok {
		return nil
	}
	v := obj[name]
	if isNil(v) {
		return nil
	}
	return v
}

// ErrorMessages returns the message of every entry of
// error.details, in order. It never fails: a missing error, a
// missing details list or a non-object candidate yields an empty
// list.
func ErrorMessages(candidate any) []string {
	return messagesOf(ErrorOf(candidate))
}

// messagesOf extracts detail messages from a typed
// *ValidationError or from anything object-shaped with a details
// list, such as a decoded JSON error.
func messagesOf(errValue any) []string {
	msgs := []string{}

	switch e := errValue.(type) {
	case nil:
		return msgs
	case *ValidationError:
		return append(msgs, e.Messages()...)
	case ValidationError:
		return append(msgs, e.Messages()...)
	}

	obj, ok := asObject(errValue)
	if !ok {
		return msgs
	}
	items, ok := asList(obj["details"])
	if !ok {
		return msgs
	}

	for _, item := range items {
		detail, ok := asObject(item)
		if !ok {
			continue
		}
		msg, ok := detail["message"]
		if !ok || isNil(msg) {
			continue
		}
		if s, ok := msg.(string); ok {
			msgs = append(msgs, s)
			continue
		}
		msgs = append(msgs, fmt.Sprint(msg))
	}
	return msgs
}

func asList(v any) ([]any, bool) {
	if isNil(v) {
		return nil, false
	}
	if items, ok := v.([]any); ok {
		return items, true
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
