package report

import (
	"io"

	"digital.vasic.validresult/pkg/assertion"
)

// JSONReporter renders results with their summary as JSON.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

type jsonReport struct {
	Summary *Summary           `json:"summary"`
	Results []assertion.Result `json:"results"`
}

// Generate implements Reporter.
func (r *JSONReporter) Generate(results []assertion.Result) ([]byte, error) {
	if results == nil {
		results = []assertion.Result{}
	}
	report := jsonReport{
		Summary: BuildSummary(results),
		Results: results,
	}
	if r.pretty {
		return jsonMarshalIndent(report, "", "  ")
	}
	return jsonMarshal(report)
}

// Write implements Reporter.
func (r *JSONReporter) Write(w io.Writer, results []assertion.Result) error {
	data, err := r.Generate(results)
	return writeGenerated(w, data, err)
}
