package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/ui"
	"github.com/talss89/envtmpl/pkg/ui/display"
)

var sampleErr = errors.New(errors.ErrOutputExists, "output already exists").
	WithDetail("output", "/etc/app.conf").
	WithDetail("target", "app.tmpl:/etc/app.conf")

func TestNewRenderer(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		r, err := ui.NewRenderer(f, &bytes.Buffer{})
		require.NoError(t, err, f.String())
		assert.NotNil(t, r)
	}

	_, err := ui.NewRenderer(ui.Format(42), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderProgress(display.Progress{Input: "in/a.tmpl", Output: "out/a", Bytes: 12}))
	require.NoError(t, r.RenderProgress(display.Progress{Input: "in/b.tmpl", Output: "out/b", Bytes: 1, DryRun: true}))
	require.NoError(t, r.RenderSummary(display.Summary{Targets: 1, Files: 2}))
	require.NoError(t, r.RenderSummary(display.Summary{Targets: 2, Files: 1, DryRun: true}))
	require.NoError(t, r.RenderMessage("hello"))
	require.NoError(t, r.RenderError(sampleErr))

	assert.Equal(t, strings.Join([]string{
		"in/a.tmpl -> out/a",
		"in/b.tmpl -> out/b [dry run]",
		"Rendered 2 files from 1 target",
		"Would render 1 file from 2 targets",
		"hello",
		"Error: [OUTPUT_EXISTS] output already exists",
		"  output: /etc/app.conf",
		"  target: app.tmpl:/etc/app.conf",
		"",
	}, "\n"), buf.String())
}

func TestTextRendererFuncs(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderFuncs([]display.FuncEntry{
		{Name: "lower", Arity: "1", Summary: "Lowercase a string"},
	}))
	assert.Equal(t, "lower            1      Lowercase a string\n", buf.String())
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderProgress(display.Progress{Target: "a:b", Input: "a", Output: "b", Bytes: 3}))
	require.NoError(t, r.RenderSummary(display.Summary{Targets: 1, Files: 1}))
	require.NoError(t, r.RenderError(sampleErr))
	require.NoError(t, r.RenderMessage("done"))
	require.NoError(t, r.RenderFuncs(nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var progress map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &progress))
	assert.Equal(t, "file", progress["event"])
	assert.Equal(t, map[string]interface{}{
		"target": "a:b", "input": "a", "output": "b", "bytes": float64(3), "dry_run": false,
	}, progress["data"])

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &summary))
	assert.Equal(t, "summary", summary["event"])

	var info display.ErrorInfo
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &info))
	assert.Equal(t, "[OUTPUT_EXISTS] output already exists", info.Message)
	assert.Equal(t, "OUTPUT_EXISTS", info.Code)
	assert.Equal(t, "/etc/app.conf", info.Details["output"])

	assert.JSONEq(t, `{"message":"done"}`, lines[3])
	assert.Equal(t, "[]", lines[4])
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderProgress(display.Progress{Input: "a.tmpl", Output: "a.conf", Bytes: 5, DryRun: true}))
	require.NoError(t, r.RenderSummary(display.Summary{Targets: 1, Files: 1}))
	require.NoError(t, r.RenderFuncs([]display.FuncEntry{{Name: "upper", Arity: "1", Summary: "Uppercase a string"}}))
	require.NoError(t, r.RenderError(sampleErr))

	out := buf.String()
	for _, want := range []string{
		"a.tmpl", "a.conf", "(5 bytes)", "[dry run]",
		"Rendered 1 file from 1 target",
		"Template functions", "upper", "Uppercase a string",
		"output already exists", "output: /etc/app.conf",
	} {
		assert.Contains(t, out, want)
	}
}

func TestErrorInfoPlainError(t *testing.T) {
	info := display.NewErrorInfo(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), info.Message)
	assert.Empty(t, info.Code)
	assert.Nil(t, info.Details)
}
