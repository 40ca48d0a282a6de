package report

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
)

// HistoryEntry is one run in the historical log.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Suite     string    `json:"suite"`
	Total     int       `json:"total"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	PassRate  float64   `json:"pass_rate"`
}

// AppendToHistory adds the summary of a run of suite to the log
// at historyPath. Each entry is a single JSON line.
func AppendToHistory(historyPath, suite string, summary *Summary) error {
	entry := HistoryEntry{
		Timestamp: summary.GeneratedAt,
		Suite:     suite,
		Total:     summary.Total,
		Passed:    summary.Passed,
		Failed:    summary.Failed,
		PassRate:  summary.PassRate,
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return errors.Wrap(err, "marshal history entry")
	}

	file, err := os.OpenFile(historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrap(err, "open history file")
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
