package assertion

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Lookup resolves a dotted path such as "details.0.message" on
// v. Segments index string-keyed maps, slices and arrays (by
// position) and structs (by mapstructure name, then by
// case-insensitive field name). Pointers and interfaces are
// followed; a nil along the way ends the lookup.
func Lookup(v any, path string) (any, bool) {
	current := v
	for _, segment := range strings.Split(path, ".") {
		next, ok := lookupSegment(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func lookupSegment(v any, segment string) (any, bool) {
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		keyType := rv.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(segment).Convert(keyType))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true

	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true

	case reflect.Struct:
		fields := map[string]any{}
		if err := mapstructure.Decode(rv.Interface(), &fields); err != nil {
			return nil, false
		}
		if fv, ok := fields[segment]; ok {
			return fv, true
		}
		for name, fv := range fields {
			if strings.EqualFold(name, segment) {
				return fv, true
			}
		}
	}

	return nil, false
}
