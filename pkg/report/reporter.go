// Package report renders evaluated assertion results as JSON,
// coloured text, HTML and Markdown summaries.
package report

import (
	"encoding/json"
	"io"

	"digital.vasic.validresult/pkg/assertion"
)

// Reporter renders a list of evaluated assertions, including
// their follow-up results.
type Reporter interface {
	// Generate renders the results.
	Generate(results []assertion.Result) ([]byte, error)

	// Write renders the results to w.
	Write(w io.Writer, results []assertion.Result) error
}

// Replaced in tests to exercise encoding failures.
var (
	jsonMarshal       = json.Marshal
	jsonMarshalIndent = json.MarshalIndent
)

// writeGenerated is the Write of reporters that render into
// memory first.
func writeGenerated(w io.Writer, data []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// walk visits every result depth first with its nesting depth.
func walk(results []assertion.Result, depth int, visit func(assertion.Result, int)) {
	for _, r := range results {
		visit(r, depth)
		walk(r.Then, depth+1, visit)
	}
}
