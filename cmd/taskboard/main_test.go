package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuqie6/taskboard/internal/analytics"
	"github.com/yuqie6/taskboard/internal/service"
)

const snapshotYAML = `
project_id: 1
task_types:
  - {id: 1, title: Feature, chart_color: "#5cb85c"}
phases:
  - {id: 1, order: 0, title: Backlog}
  - {id: 2, order: 1, title: Doing}
sprint:
  title: Sprint 1
  date_start: 2024-03-04
  date_end: 2024-03-08
  ignore_weekends: true
stories:
  - id: 1
    title: Login
    time_start: 2024-03-04T09:00:00Z
    tasks:
      - {id: 1, title: Form, type_id: 1, phase_id: 2, created_at: 2024-03-01T09:00:00Z, is_done: true, time_end: 2024-03-05T16:00:00Z}
      - {id: 2, title: API, type_id: 1, phase_id: 1, created_at: 2024-03-01T09:00:00Z}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLIEndToEnd(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := filepath.Join(dir, "config.yaml")
	snapPath := filepath.Join(dir, "snapshot.yaml")
	require.NoError(t, os.WriteFile(snapPath, []byte(snapshotYAML), 0o600))

	out, err := run(t, "-c", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)

	_, err = run(t, "-c", cfgPath, "config", "init")
	assert.Equal(t, exitUsage, exitCodeOf(err), "refuses to overwrite")

	out, err = run(t, "-c", cfgPath, "import", snapPath)
	require.NoError(t, err)
	assert.Contains(t, out, "已导入迭代 1")

	out, err = run(t, "-c", cfgPath, "analytics", "--sprint", "1", "--format", "json")
	require.NoError(t, err)
	var res map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res, "chart_data")
	assert.Contains(t, res, "statistics")

	out, err = run(t, "-c", cfgPath, "analytics", "--sprint", "1", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Sprint 1")

	out, err = run(t, "-c", cfgPath, "sprints")
	require.NoError(t, err)
	assert.Contains(t, out, "Sprint 1")

	pdfPath := filepath.Join(dir, "out", "s1.pdf")
	_, err = run(t, "-c", cfgPath, "report", "--sprint", "1", "-o", pdfPath)
	require.NoError(t, err)
	b, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	_, err = run(t, "-c", cfgPath, "analytics", "--sprint", "99")
	assert.Equal(t, exitNotFound, exitCodeOf(err))

	_, err = run(t, "-c", cfgPath, "analytics", "--sprint", "1", "--format", "xml")
	assert.Equal(t, exitUsage, exitCodeOf(err))
}

func TestAnalyticsRequiresSprint(t *testing.T) {
	_, err := run(t, "analytics")
	assert.Equal(t, exitUsage, exitCodeOf(err))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "taskboard "))
}

func TestWrapExit(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{fmt.Errorf("x: %w", service.ErrNotFound), exitNotFound},
		{fmt.Errorf("x: %w", analytics.ErrComputation), exitComputation},
		{&service.FetchError{Op: "get", Resource: "sprint", Err: errors.New("db")}, exitUpstream},
		{errors.New("other"), exitFailure},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, exitCodeOf(wrapExit("失败", tc.err)), "err=%v", tc.err)
	}
}

func TestDefaultFormatForNonTerminal(t *testing.T) {
	assert.Equal(t, formatJSON, defaultFormat(&bytes.Buffer{}))
}
