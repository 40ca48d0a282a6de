package validation

import (
	"encoding/json"
	"fmt"
)

// describe renders a subject compactly for failure messages.
func describe(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}

// dump renders a subject in full, indented, for failure messages
// that need the whole result in view.
func dump(v any, indent string) string {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(data)
}
