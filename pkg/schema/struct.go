package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"digital.vasic.validresult/pkg/validation"
)

// MessageFunc renders the message of a failed rule for the field
// labelled label.
type MessageFunc func(label string, fe validator.FieldError) string

// StructValidator validates structs by their `validate` tags.
// Field names in messages and paths come from `json` tags.
type StructValidator struct {
	validate *validator.Validate
	opts     options
	messages map[string]MessageFunc
}

var _ Validator = (*StructValidator)(nil)

// NewStructValidator creates a StructValidator.
func NewStructValidator(opts ...Option) *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	return &StructValidator{
		validate: v,
		opts:     newOptions(opts...),
		messages: map[string]MessageFunc{},
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// RegisterRule adds a custom validation tag with its message.
func (v *StructValidator) RegisterRule(tag string, fn validator.Func, message MessageFunc) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return errors.Wrapf(err, "register rule %s", tag)
	}
	if message != nil {
		v.messages[tag] = message
	}
	return nil
}

// Validate checks value, which must be a struct or a pointer to
// one. The result carries value on success and on failure.
func (v *StructValidator) Validate(value any) validation.Result {
	err := v.validate.Struct(value)
	if err == nil {
		return validation.Succeeded(value)
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return v.opts.finish("struct", value, []validation.Detail{{
			Message: fmt.Sprintf("%q must be of type object", rootLabel),
			Type:    "object.base",
			Context: map[string]any{"label": rootLabel},
		}})
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return v.opts.finish("struct", value, []validation.Detail{{
			Message: err.Error(),
			Type:    "any.invalid",
		}})
	}

	details := make([]validation.Detail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, v.detail(fe))
	}
	return v.opts.finish("struct", value, details)
}

func (v *StructValidator) detail(fe validator.FieldError) validation.Detail {
	path := namespacePath(fe.Namespace())
	lbl := label(path)

	context := map[string]any{
		"label": lbl,
		"value": fe.Value(),
	}
	if len(path) > 0 {
		context["key"] = path[len(path)-1]
	}
	if fe.Param() != "" {
		context["limit"] = fe.Param()
	}

	if custom, ok := v.messages[fe.Tag()]; ok {
		return validation.Detail{
			Message: custom(lbl, fe),
			Path:    path,
			Type:    fe.Tag(),
			Context: context,
		}
	}

	message, typ := ruleMessage(lbl, fe)
	return validation.Detail{
		Message: message,
		Path:    path,
		Type:    typ,
		Context: context,
	}
}

// namespacePath turns "Config.server.ports[0]" into
// ["server", "ports", "0"], dropping the root type name.
func namespacePath(ns string) []string {
	segments := strings.Split(ns, ".")
	if len(segments) > 0 {
		segments = segments[1:]
	}

	path := make([]string, 0, len(segments))
	for _, seg := range segments {
		for seg != "" {
			open := strings.IndexByte(seg, '[')
			if open < 0 {
				path = append(path, seg)
				break
			}
			if open > 0 {
				path = append(path, seg[:open])
			}
			end := strings.IndexByte(seg[open:], ']')
			if end < 0 {
				path = append(path, seg[open+1:])
				break
			}
			path = append(path, seg[open+1:open+end])
			seg = seg[open+end+1:]
		}
	}
	return path
}
