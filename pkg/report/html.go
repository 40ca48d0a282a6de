package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"time"

	"digital.vasic.validresult/pkg/assertion"
)

// HTMLReporter renders results as a standalone HTML page.
type HTMLReporter struct {
	title string
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(title string) *HTMLReporter {
	if title == "" {
		title = "Assertion Report"
	}
	return &HTMLReporter{title: title}
}

// Generate implements Reporter.
func (r *HTMLReporter) Generate(results []assertion.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write implements Reporter.
func (r *HTMLReporter) Write(w io.Writer, results []assertion.Result) error {
	var buf bytes.Buffer
	s := BuildSummary(results)

	r.writeHeader(&buf)
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(r.title))
	fmt.Fprintf(&buf, "<p><strong>Generated:</strong> %s</p>\n",
		s.GeneratedAt.Format(time.RFC3339))

	buf.WriteString("<table>\n<tr><th>Assertions</th><th>Passed</th><th>Failed</th><th>Pass Rate</th></tr>\n")
	fmt.Fprintf(&buf, "<tr><td>%d</td><td>%d</td><td>%d</td><td>%.0f%%</td></tr>\n</table>\n",
		s.Total, s.Passed, s.Failed, s.PassRate*100)

	buf.WriteString("<h2>Results</h2>\n")
	writeResultList(&buf, results)

	buf.WriteString("</body>\n</html>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeResultList(buf *bytes.Buffer, results []assertion.Result) {
	if len(results) == 0 {
		return
	}
	buf.WriteString("<ul>\n")
	for _, res := range results {
		class, status := "status-passed", "PASS"
		if !res.Passed {
			class, status = "status-failed", "FAIL"
		}
		fmt.Fprintf(buf, `<li><span class="%s">%s</span> <code>%s</code>`,
			class, status, html.EscapeString(assertionLabel(res.Type, res.Negated)))
		if res.Target != "" {
			fmt.Fprintf(buf, " [%s]", html.EscapeString(res.Target))
		}
		if res.Message != "" {
			fmt.Fprintf(buf, "<pre>%s</pre>", html.EscapeString(res.Message))
		}
		buf.WriteString("\n")
		writeResultList(buf, res.Then)
		buf.WriteString("</li>\n")
	}
	buf.WriteString("</ul>\n")
}

func (r *HTMLReporter) writeHeader(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; color: #333; }
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
table { border-collapse: collapse; margin: 10px 0; }
th, td { border: 1px solid #ddd; padding: 8px 12px; text-align: left; }
th { background: #3498db; color: #fff; }
pre { background: #ecf0f1; padding: 6px; white-space: pre-wrap; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
</style>
</head>
<body>
`, html.EscapeString(r.title))
}
