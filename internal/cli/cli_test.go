package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	params "github.com/goliatone/go-params"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), logs.String(), err
}

func TestClassesCommand(t *testing.T) {
	out, _, err := execute(t, "classes")
	require.NoError(t, err)
	assert.Equal(t, "ColorMap\nEdge\nText\nViewport\n", out)
}

func TestEveryClassBuilds(t *testing.T) {
	for _, name := range classNames() {
		t.Run(name, func(t *testing.T) {
			c := New(&bytes.Buffer{}, LogInfo)
			c.errorMode = "exception"
			obj, err := c.build(name, nil)
			require.NoError(t, err)
			assert.Equal(t, name, obj.Name())
			assert.NoError(t, obj.Options().Validate())
		})
	}
}

func TestDescribeCommand(t *testing.T) {
	out, _, err := execute(t, "describe", "Text")
	require.NoError(t, err)
	assert.Contains(t, out, "halign\n  Set the font justification.")
	assert.Contains(t, out, `Allow:   ["left", "center", "right"]`)
}

func TestScriptCommandAppliesOverrides(t *testing.T) {
	out, logs, err := execute(t, "script", "Text", "Text:text=hello", "Text:font_size=0.1", "Edge:width=4")
	require.NoError(t, err)
	assert.Equal(t, "text=\"hello\"\n{text} -> set(font, size=0.1)\n", out)
	assert.Contains(t, logs, "Setting Option from Command Line: Text:font_size=0.1")
	assert.NotContains(t, logs, "Edge:width=4")
}

func TestScriptCommandInstanceOverride(t *testing.T) {
	out, _, err := execute(t, "script", "Text", "Text:text=plain", "Text:title:text=titled", "Text:name=title")
	require.NoError(t, err)
	assert.Contains(t, out, `text="plain"`)
	assert.Contains(t, out, `name="title"`)
}

func TestScriptCommandWithConfigFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	override := filepath.Join(dir, "override.toml")
	require.NoError(t, os.WriteFile(base, []byte("text: from yaml\nrotate: 45\n"), 0o644))
	require.NoError(t, os.WriteFile(override, []byte("text = \"from toml\"\n[font]\nbold = true\n"), 0o644))

	out, logs, err := execute(t, "script", "Text", "--config", base, "--config", override, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, `text="from toml"`)
	assert.Contains(t, out, "rotate=45")
	assert.Contains(t, out, "{text} -> set(font, bold=true)")
	assert.Contains(t, logs, "value from file")
	assert.Contains(t, logs, "params.updated")
}

func TestAutoColorFollowsViewportBackground(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.errorMode = "exception"

	obj, err := c.build("Text", []string{"Viewport:background_color=(0, 0, 0)"})
	require.NoError(t, err)
	color, ok := obj.Option("font", "color").(params.AutoColor)
	require.True(t, ok, "got %T", obj.Option("font", "color"))
	assert.Equal(t, []float64{1, 1, 1}, color.RGB())

	obj, err = c.build("Text", []string{"Viewport:background_color=(1, 1, 1)"})
	require.NoError(t, err)
	color = obj.Option("font", "color").(params.AutoColor)
	assert.Equal(t, []float64{0, 0, 0}, color.RGB())
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := execute(t, "schema", "Edge")
	require.NoError(t, err)
	var fields []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	paths := make([]string, 0, len(fields))
	for _, field := range fields {
		paths = append(paths, field["Path"].(string))
	}
	assert.Equal(t, []string{"name", "orientation", "rotation", "visible", "color", "width", "size"}, paths)

	out, _, err = execute(t, "schema", "Viewport", "--format", "openapi")
	require.NoError(t, err)
	var document map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &document))
	assert.Contains(t, document["paths"], "/viewport")
	item := document["paths"].(map[string]any)["/viewport"].(map[string]any)
	assert.Contains(t, item, "get")
	assert.Equal(t, "Apply Viewport parameters", item["put"].(map[string]any)["summary"])
	assert.Equal(t, "Viewport Parameters", document["info"].(map[string]any)["title"])
}

func TestCommandErrors(t *testing.T) {
	_, _, err := execute(t, "describe", "Window")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown class")

	_, _, err = execute(t, "describe", "Text", "--error-mode", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown error mode")

	_, _, err = execute(t, "schema", "Text", "--format", "xml")
	require.Error(t, err)

	_, _, err = execute(t, "script", "Text", "Text:font_opacity=2")
	require.ErrorIs(t, err, params.ErrValue)
}

func TestErrorModeWarningLogsInsteadOfFailing(t *testing.T) {
	out, logs, err := execute(t, "script", "Text", "--error-mode", "warning", "Text:font_opacity=2", "Text:rotate=90")
	require.NoError(t, err)
	assert.True(t, strings.Contains(logs, "font_opacity") || strings.Contains(logs, "opacity"))
	assert.Equal(t, "rotate=90\n", out)
}

func TestAuditLogsActivityRecords(t *testing.T) {
	_, logs, err := execute(t, "script", "Text", "--audit", "Text:rotate=90")
	require.NoError(t, err)
	assert.Contains(t, logs, "params.override.applied")
	assert.Contains(t, logs, "channel=paramsctl")
	assert.Contains(t, logs, "Text:rotate=90")

	_, logs, err = execute(t, "script", "Text", "Text:rotate=90")
	require.NoError(t, err)
	assert.NotContains(t, logs, "params.override.applied")
}

func TestVerboseLogsVerifyExpressions(t *testing.T) {
	_, logs, err := execute(t, "script", "Text", "-v", "Text:rotate=90")
	require.NoError(t, err)
	assert.Contains(t, logs, "expression evaluated")
	assert.Contains(t, logs, "path=rotate")

	_, logs, err = execute(t, "script", "Text", "Text:rotate=90")
	require.NoError(t, err)
	assert.NotContains(t, logs, "expression evaluated")
}
