package assertion

import (
	"strconv"
	"strings"
)

// ParseAssertionString parses a compact assertion string of the
// form "type:value" into its components. If no colon is present
// the entire string is treated as the type and value is nil.
//
// Examples:
//
//	"errmsg:\"a\" is required" -> ("errmsg", "\"a\" is required")
//	"errmsgs"                  -> ("errmsgs", nil)
//	"exact_count:2"            -> ("exact_count", "2")
func ParseAssertionString(
	s string,
) (assertionType string, value any) {
	parts := strings.SplitN(s, ":", 2)
	assertionType = parts[0]

	if len(parts) > 1 {
		value = parts[1]
	}

	return
}

// ParseChain parses a pipeline of compact assertions separated
// by " | " into a single Definition whose Then links follow each
// other. A link prefixed with "not " is negated. Numeric values
// for count and length assertions are converted to int.
//
//	"error | property:name=ValidationError"
//	"errmsgs | not contains:wtf?"
//	"value | equals:a"
func ParseChain(s string) (Definition, bool) {
	var links []Definition
	for _, raw := range strings.Split(s, " | ") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return Definition{}, false
		}

		def := Definition{}
		if rest, ok := strings.CutPrefix(raw, "not "); ok {
			def.Not = true
			raw = strings.TrimSpace(rest)
		}

		def.Type, def.Value = ParseAssertionString(raw)
		if def.Type == "" {
			return Definition{}, false
		}
		normalizeValue(&def)
		links = append(links, def)
	}

	for i := len(links) - 1; i > 0; i-- {
		links[i-1].Then = []Definition{links[i]}
	}
	return links[0], true
}

func normalizeValue(def *Definition) {
	str, ok := def.Value.(string)
	if !ok {
		return
	}

	switch def.Type {
	case "exact_count", "min_count", "min_length":
		if n, err := strconv.Atoi(str); err == nil {
			def.Value = n
		}
	case "property":
		path, expected, hasValue := strings.Cut(str, "=")
		def.Path = path
		def.Value = nil
		if hasValue {
			def.Value = expected
		}
	}
}
