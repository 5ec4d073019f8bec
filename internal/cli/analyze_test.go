package cli

import (
	"bytes"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/parleyhq/parley/internal/testhelper"
)

const ansi = "[\u001B\u009B][[\\]()#;?]*(?:(?:(?:[a-zA-Z\\d]*(?:;[a-zA-Z\\d]*)*)?\u0007)|(?:(?:\\d{1,4}(?:;\\d{0,4})*)?[\\dA-PRZcf-ntqry=><~]))"

var ansiRe = regexp.MustCompile(ansi)

// runInBuffers executes a command function against in-memory writers with
// the deterministic test spinner.
func runInBuffers(t *testing.T, fn func(ctx runContext) error) (string, string, error) {
	t.Helper()
	t.Setenv("PARLEY_TEST", "true")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := fn(runContext{stdout: stdout, stderr: stderr})

	return ansiRe.ReplaceAllString(stdout.String(), ""),
		ansiRe.ReplaceAllString(stderr.String(), ""),
		err
}

func setOutputFormat(t *testing.T, format string) {
	t.Helper()
	viper.Set("output", format)
	t.Cleanup(func() { viper.Set("output", "text") })
}

func TestAnalyze_Report(t *testing.T) {
	path := filepath.Join("testdata", "daily_conversations_2025-10-25.json")

	stdout, _, err := runInBuffers(t, func(ctx runContext) error {
		return runAnalyze(ctx, path)
	})
	require.NoError(t, err)

	snaps.MatchSnapshot(t, stdout)
}

func TestAnalyze_ReportContents(t *testing.T) {
	path := filepath.Join("testdata", "daily_conversations_2025-10-25.json")

	stdout, stderr, err := runInBuffers(t, func(ctx runContext) error {
		return runAnalyze(ctx, path)
	})
	require.NoError(t, err)

	assert.Contains(t, stdout, "Conversation Analysis for 2025-10-25")
	assert.Contains(t, stdout, "Total Conversations: 4")
	assert.Contains(t, stdout, "Total Messages: 6")
	// "release" appears in four messages.
	assert.Contains(t, stdout, " 1. release")
	// The spinner reports on stderr, never in the report.
	assert.Contains(t, stderr, "[SPINNER START]")
	assert.NotContains(t, stdout, "[SPINNER")
}

func TestAnalyze_JSONOutput(t *testing.T) {
	setOutputFormat(t, "json")
	path := filepath.Join("testdata", "daily_conversations_2025-10-25.json")

	stdout, _, err := runInBuffers(t, func(ctx runContext) error {
		return runAnalyze(ctx, path)
	})
	require.NoError(t, err)

	assert.Contains(t, stdout, `"total_messages": 6`)
	assert.Contains(t, stdout, `"date": "2025-10-25"`)
}

func TestAnalyze_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	stdout, stderr, err := runInBuffers(t, func(ctx runContext) error {
		return runAnalyze(ctx, path)
	})

	require.Error(t, err)
	assert.Contains(t, stderr, "File not found")
	// No partial report on stdout.
	assert.NotContains(t, stdout, "Conversation Analysis")
}

func TestTopics_Report(t *testing.T) {
	path := filepath.Join("testdata", "daily_conversations_2025-10-25.json")

	stdout, _, err := runInBuffers(t, func(ctx runContext) error {
		return runTopics(ctx, path)
	})
	require.NoError(t, err)

	assert.Contains(t, stdout, "Main Topics Discussed")
	assert.Contains(t, stdout, " 1. release")
	assert.NotContains(t, stdout, "Time of Day Patterns")
}
