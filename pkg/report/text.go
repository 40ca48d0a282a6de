package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"digital.vasic.validresult/pkg/assertion"
)

// TextReporter renders results as an indented PASS/FAIL tree.
type TextReporter struct {
	pass  *color.Color
	fail  *color.Color
	faint *color.Color
}

// TextOption configures a TextReporter.
type TextOption func(*TextReporter)

// WithColor forces colour on or off. By default colour follows
// whether stdout is a terminal.
func WithColor(enabled bool) TextOption {
	return func(r *TextReporter) {
		for _, c := range []*color.Color{r.pass, r.fail, r.faint} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// NewTextReporter creates a TextReporter.
func NewTextReporter(opts ...TextOption) *TextReporter {
	r := &TextReporter{
		pass:  color.New(color.FgGreen, color.Bold),
		fail:  color.New(color.FgRed, color.Bold),
		faint: color.New(color.FgHiBlack),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate implements Reporter.
func (r *TextReporter) Generate(results []assertion.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write implements Reporter.
func (r *TextReporter) Write(w io.Writer, results []assertion.Result) error {
	var werr error
	walk(results, 0, func(res assertion.Result, depth int) {
		if werr != nil {
			return
		}
		werr = r.line(w, res, depth)
	})
	if werr != nil {
		return werr
	}

	s := BuildSummary(results)
	status := r.pass.Sprint("ok")
	if !s.OK() {
		status = r.fail.Sprint("FAILED")
	}
	_, err := fmt.Fprintf(w, "%s: %d assertions, %d passed, %d failed\n",
		status, s.Total, s.Passed, s.Failed)
	return err
}

func (r *TextReporter) line(w io.Writer, res assertion.Result, depth int) error {
	indent := strings.Repeat("  ", depth)
	status := r.pass.Sprint("PASS")
	if !res.Passed {
		status = r.fail.Sprint("FAIL")
	}

	name := assertionLabel(res.Type, res.Negated)
	if res.Target != "" {
		name += " " + r.faint.Sprintf("[%s]", res.Target)
	}

	if res.Passed {
		_, err := fmt.Fprintf(w, "%s%s %s\n", indent, status, name)
		return err
	}
	_, err := fmt.Fprintf(w, "%s%s %s: %s\n", indent, status, name, res.Message)
	return err
}
