package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"digital.vasic.validresult/pkg/validation"
)

// resourceName is the URL a schema source is compiled under.
const resourceName = "schema.json"

// JSONSchema validates JSON values against a compiled schema.
type JSONSchema struct {
	schema *jsonschema.Schema
	source []byte
	order  propertyOrder
	opts   options
}

var _ Validator = (*JSONSchema)(nil)

// CompileJSONSchema compiles a JSON Schema document. Documents
// without "$schema" are read as draft 2020-12.
func CompileJSONSchema(src string, opts ...Option) (*JSONSchema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(resourceName, strings.NewReader(src)); err != nil {
		return nil, errors.Wrap(err, "add schema resource")
	}
	sch, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, errors.Wrap(err, "compile schema")
	}

	return &JSONSchema{
		schema: sch,
		source: []byte(src),
		order:  readPropertyOrder([]byte(src)),
		opts:   newOptions(opts...),
	}, nil
}

// Reflect builds a JSONSchema from the Go type of v. Fields are
// required unless their json tag has omitempty, and unknown
// properties are rejected. `jsonschema` struct tags refine the
// schema (minimum, maxLength, enum, ...).
func Reflect(v any, opts ...Option) (*JSONSchema, error) {
	reflector := invopop.Reflector{
		Anonymous:      true,
		ExpandedStruct: true,
	}
	doc, err := json.MarshalIndent(reflector.Reflect(v), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal reflected schema")
	}
	return CompileJSONSchema(string(doc), opts...)
}

// Source returns the schema document.
func (s *JSONSchema) Source() []byte {
	return s.source
}

// Validate checks a Go value by its JSON encoding. The result
// carries value on success and on failure.
func (s *JSONSchema) Validate(value any) validation.Result {
	data, err := json.Marshal(value)
	if err != nil {
		return s.opts.finish("jsonschema", value, []validation.Detail{{
			Message: fmt.Sprintf("%q cannot be encoded as JSON: %v", rootLabel, err),
			Type:    "any.invalid",
		}})
	}
	instance, err := decodeJSON(data)
	if err != nil {
		return s.opts.finish("jsonschema", value, []validation.Detail{{
			Message: fmt.Sprintf("%q cannot be decoded: %v", rootLabel, err),
			Type:    "any.invalid",
		}})
	}
	return s.check(value, instance)
}

// ValidateJSON checks a raw JSON document. The result carries the
// decoded document.
func (s *JSONSchema) ValidateJSON(data []byte) validation.Result {
	instance, err := decodeJSON(data)
	if err != nil {
		return s.opts.finish("jsonschema", nil, []validation.Detail{{
			Message: fmt.Sprintf("%q must be valid JSON: %v", rootLabel, err),
			Type:    "any.invalid",
		}})
	}
	return s.check(instance, instance)
}

func (s *JSONSchema) check(value, instance any) validation.Result {
	err := s.schema.Validate(instance)
	if err == nil {
		return validation.Succeeded(value)
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return s.opts.finish("jsonschema", value, []validation.Detail{{
			Message: err.Error(),
			Type:    "any.invalid",
		}})
	}

	var details []validation.Detail
	for _, leaf := range leaves(verr) {
		details = append(details, leafDetails(leaf)...)
	}
	sort.SliceStable(details, func(i, j int) bool {
		return s.order.less(details[i].Path, details[j].Path)
	})
	return s.opts.finish("jsonschema", value, details)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// leaves flattens the cause tree to the errors that carry a
// message. The library walks properties in map order, so leaves
// are sorted by location to keep the result stable.
func leaves(root *jsonschema.ValidationError) []*jsonschema.ValidationError {
	var out []*jsonschema.ValidationError
	var walk func(*jsonschema.ValidationError)
	walk = func(ve *jsonschema.ValidationError) {
		if len(ve.Causes) == 0 {
			if ve.Message != "" {
				out = append(out, ve)
			}
			return
		}
		for _, c := range ve.Causes {
			walk(c)
		}
	}
	walk(root)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].InstanceLocation != out[j].InstanceLocation {
			return out[i].InstanceLocation < out[j].InstanceLocation
		}
		return out[i].KeywordLocation < out[j].KeywordLocation
	})
	return out
}

// propertyOrder ranks property names by their first appearance
// under a "properties" keyword of the schema document.
type propertyOrder map[string]int

func readPropertyOrder(src []byte) propertyOrder {
	order := propertyOrder{}
	dec := json.NewDecoder(bytes.NewReader(src))
	// The document has already compiled; a read error only stops
	// ranking early.
	_ = order.read(dec, false)
	return order
}

// read consumes one JSON value. When names is set the value is a
// "properties" object and its keys are ranked.
func (o propertyOrder) read(dec *json.Decoder, names bool) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil
	}

	switch delim {
	case '{':
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := tok.(string)
			if names {
				if _, seen := o[key]; !seen {
					o[key] = len(o)
				}
			}
			if err := o.read(dec, !names && key == "properties"); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := o.read(dec, false); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token()
	return err
}

// less orders instance paths: parents first, array indexes by
// number, properties in declaration order, unknown names last.
func (o propertyOrder) less(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return o.segmentLess(a[i], b[i])
		}
	}
	return len(a) < len(b)
}

func (o propertyOrder) segmentLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}

	ar, aok := o[a]
	br, bok := o[b]
	switch {
	case aok && bok:
		return ar < br
	case aok != bok:
		return aok
	}
	return a < b
}

var quotedName = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'`)

// leafDetails converts one schema violation. Missing properties
// become one "is required" detail each.
func leafDetails(ve *jsonschema.ValidationError) []validation.Detail {
	path := pointerPath(ve.InstanceLocation)
	keyword := lastSegment(ve.KeywordLocation)
	lbl := label(path)
	q := fmt.Sprintf("%q", lbl)

	switch keyword {
	case "required":
		var details []validation.Detail
		for _, m := range quotedName.FindAllStringSubmatch(ve.Message, -1) {
			name := strings.ReplaceAll(m[1], `\'`, `'`)
			p := append(append([]string{}, path...), name)
			details = append(details, validation.Detail{
				Message: fmt.Sprintf("%q is required", label(p)),
				Path:    p,
				Type:    "any.required",
				Context: map[string]any{"label": label(p), "key": name},
			})
		}
		if len(details) > 0 {
			return details
		}

	case "type":
		if expected, ok := expectedType(ve.Message); ok {
			return []validation.Detail{{
				Message: fmt.Sprintf("%s must be %s", q, expected),
				Path:    path,
				Type:    "type",
				Context: map[string]any{"label": lbl},
			}}
		}
	}

	return []validation.Detail{{
		Message: fmt.Sprintf("%s %s", q, ve.Message),
		Path:    path,
		Type:    keyword,
		Context: map[string]any{"label": lbl},
	}}
}

// expectedType reads "expected string or null, but got number" as
// "a string or null".
func expectedType(message string) (string, bool) {
	rest, ok := strings.CutPrefix(message, "expected ")
	if !ok {
		return "", false
	}
	types, _, ok := strings.Cut(rest, ", but got")
	if !ok {
		return "", false
	}

	parts := strings.Split(types, " or ")
	for i, t := range parts {
		parts[i] = article(t) + " " + t
	}
	return strings.Join(parts, " or "), true
}

func article(word string) string {
	switch word {
	case "array", "object", "integer":
		return "an"
	}
	return "a"
}

// pointerPath splits a JSON pointer such as "/server/ports/0".
func pointerPath(ptr string) []string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return nil
	}
	segments := strings.Split(ptr, "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "~1", "/")
		segments[i] = strings.ReplaceAll(seg, "~0", "~")
	}
	return segments
}

func lastSegment(ptr string) string {
	if i := strings.LastIndexByte(ptr, '/'); i >= 0 {
		return ptr[i+1:]
	}
	return ptr
}
