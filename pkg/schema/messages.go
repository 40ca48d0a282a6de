package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ruleMessage renders a failed rule in joi's wording and returns
// the matching joi error type.
func ruleMessage(lbl string, fe validator.FieldError) (string, string) {
	q := fmt.Sprintf("%q", lbl)
	param := fe.Param()
	kind := kindName(fe.Kind())

	switch fe.Tag() {
	case "required", "required_if", "required_unless",
		"required_with", "required_without":
		return q + " is required", "any.required"

	case "min", "gte":
		switch kind {
		case "string":
			return fmt.Sprintf("%s length must be at least %s characters long", q, param), "string.min"
		case "array":
			return fmt.Sprintf("%s must contain at least %s items", q, param), "array.min"
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", q, param), kind + ".min"

	case "max", "lte":
		switch kind {
		case "string":
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", q, param), "string.max"
		case "array":
			return fmt.Sprintf("%s must contain less than or equal to %s items", q, param), "array.max"
		}
		return fmt.Sprintf("%s must be less than or equal to %s", q, param), kind + ".max"

	case "gt":
		return fmt.Sprintf("%s must be greater than %s", q, param), kind + ".greater"

	case "lt":
		return fmt.Sprintf("%s must be less than %s", q, param), kind + ".less"

	case "len":
		switch kind {
		case "string":
			return fmt.Sprintf("%s length must be %s characters long", q, param), "string.length"
		case "array":
			return fmt.Sprintf("%s must contain %s items", q, param), "array.length"
		}
		return fmt.Sprintf("%s must be %s", q, param), "any.only"

	case "eq":
		return fmt.Sprintf("%s must be %s", q, param), "any.only"

	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", q, strings.Join(strings.Fields(param), ", ")), "any.only"

	case "email":
		return q + " must be a valid email", "string.email"

	case "url", "uri", "http_url":
		return q + " must be a valid uri", "string.uri"

	case "hostname", "hostname_rfc1123", "fqdn":
		return q + " must be a valid hostname", "string.hostname"

	case "ip", "ipv4", "ipv6":
		return q + " must be a valid ip address", "string.ip"

	case "uuid", "uuid4":
		return q + " must be a valid GUID", "string.guid"

	case "alphanum":
		return q + " must only contain alpha-numeric characters", "string.alphanum"

	case "lowercase":
		return q + " must only contain lowercase characters", "string.lowercase"

	case "uppercase":
		return q + " must only contain uppercase characters", "string.uppercase"

	case "unique":
		return q + " contains a duplicate value", "array.unique"
	}

	return fmt.Sprintf("%s failed on the '%s' rule", q, fe.Tag()), fe.Tag()
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Bool:
		return "boolean"
	}
	return "any"
}
