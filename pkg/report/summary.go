package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"digital.vasic.validresult/pkg/assertion"
)

// Summary aggregates a list of evaluated assertions. Follow-up
// results count like top-level ones.
type Summary struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	PassRate    float64   `json:"pass_rate"`
	Failures    []Failure `json:"failures,omitempty"`
}

// Failure is one failed assertion of a Summary.
type Failure struct {
	Type    string `json:"type"`
	Target  string `json:"target,omitempty"`
	Depth   int    `json:"depth"`
	Negated bool   `json:"negated,omitempty"`
	Message string `json:"message"`
}

// BuildSummary counts the results and collects the failures in
// evaluation order.
func BuildSummary(results []assertion.Result) *Summary {
	now := time.Now()
	summary := &Summary{
		ID:          fmt.Sprintf("summary_%s", now.Format("20060102_150405")),
		GeneratedAt: now,
	}

	walk(results, 0, func(r assertion.Result, depth int) {
		summary.Total++
		if r.Passed {
			summary.Passed++
			return
		}
		summary.Failed++
		summary.Failures = append(summary.Failures, Failure{
			Type:    r.Type,
			Target:  r.Target,
			Depth:   depth,
			Negated: r.Negated,
			Message: r.Message,
		})
	})

	if summary.Total > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.Total)
	}
	return summary
}

// OK reports whether nothing failed.
func (s *Summary) OK() bool {
	return s.Failed == 0
}

// SaveSummary writes the summary as JSON and Markdown into
// outputDir and points latest_summary.{json,md} at them.
func SaveSummary(summary *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.json", ts))
	jsonData, err := jsonMarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal summary")
	}
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return errors.Wrap(err, "write JSON summary")
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.md", ts))
	if err := os.WriteFile(mdPath, []byte(summaryMarkdown(summary)), 0o644); err != nil {
		return errors.Wrap(err, "write Markdown summary")
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")
	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

func summaryMarkdown(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Assertion Summary\n\n")
	fmt.Fprintf(&sb, "**Summary ID:** %s\n\n", summary.ID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Assertions | %d |\n", summary.Total)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.Passed)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.Failed)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)

	if len(summary.Failures) > 0 {
		sb.WriteString("\n## Failures\n\n")
		sb.WriteString("| Assertion | Target | Message |\n")
		sb.WriteString("|-----------|--------|---------|\n")
		for _, f := range summary.Failures {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n",
				assertionLabel(f.Type, f.Negated), f.Target,
				strings.ReplaceAll(f.Message, "|", `\|`),
			)
		}
	}

	return sb.String()
}

// assertionLabel renders a type as written in a chain, e.g.
// "not validate".
func assertionLabel(typ string, negated bool) string {
	if negated {
		return "not " + typ
	}
	return typ
}
