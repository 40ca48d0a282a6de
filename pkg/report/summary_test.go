package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.validresult/pkg/assertion"
)

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(evaluateSample(t))

	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 3, s.Passed)
	assert.Equal(t, 3, s.Failed)
	assert.InDelta(t, 0.5, s.PassRate, 0.001)
	assert.False(t, s.OK())

	require.Len(t, s.Failures, 3)
	assert.Equal(t, "errmsgs", s.Failures[0].Type)
	assert.Equal(t, 0, s.Failures[0].Depth)
	assert.Equal(t, "contains", s.Failures[1].Type)
	assert.Equal(t, 1, s.Failures[1].Depth)
	assert.Equal(t, "validate", s.Failures[2].Type)
	assert.Contains(t, s.Failures[2].Message, `should validate but does not because "a" must be a string`)
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil)

	assert.Zero(t, s.Total)
	assert.Zero(t, s.PassRate)
	assert.True(t, s.OK())
}

func TestSaveSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	s := BuildSummary(evaluateSample(t))

	require.NoError(t, SaveSummary(s, dir))

	md, err := os.ReadFile(filepath.Join(dir, "latest_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Assertion Summary")
	assert.Contains(t, string(md), "| Failed | 3 |")
	assert.Contains(t, string(md), "| validate | bad |")

	data, err := os.ReadFile(filepath.Join(dir, "latest_summary.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"failed": 3`)
}

func TestSaveSummary_MarshalError(t *testing.T) {
	original := jsonMarshalIndent
	t.Cleanup(func() { jsonMarshalIndent = original })
	jsonMarshalIndent = func(any, string, string) ([]byte, error) {
		return nil, assert.AnError
	}

	err := SaveSummary(BuildSummary(nil), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal summary")
}

func TestSaveSummary_DirectoryError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := SaveSummary(BuildSummary(nil), filepath.Join(file, "sub"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output directory")
}

func TestSummaryMarkdown_EscapesPipes(t *testing.T) {
	s := BuildSummary([]assertion.Result{{Type: "equals", Message: "a|b"}})

	assert.Contains(t, summaryMarkdown(s), `a\|b`)
}
