package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validDoc = `<gpx version="1.1" creator="test">
  <wpt lat="47.5" lon="8.5">
    <extensions><power>220</power></extensions>
  </wpt>
</gpx>
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gpx")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(args ...string) (code int, stdout, stderr string) {
	var out, errb bytes.Buffer
	code = run(args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestValidateOK(t *testing.T) {
	path := writeTemp(t, validDoc)
	code, stdout, _ := runCommand("validate", path)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, path+" validates")
}

func TestValidateClassifiedError(t *testing.T) {
	path := writeTemp(t, `<foo/>`)
	code, _, stderr := runCommand("validate", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "gpx-no-root")
}

func TestValidateMixedFiles(t *testing.T) {
	good := writeTemp(t, validDoc)
	bad := writeTemp(t, `<gpx version="3.0"></gpx>`)
	code, stdout, stderr := runCommand("validate", good, bad)
	require.Equal(t, 1, code)
	require.Contains(t, stdout, good+" validates")
	require.Contains(t, stderr, "gpx-unsupported-version")
}

func TestExtensionsJSON(t *testing.T) {
	path := writeTemp(t, validDoc)
	code, stdout, _ := runCommand("extensions", path)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, `"context": "wpt[0]"`)
	require.Contains(t, stdout, `"kind"`)
	require.Contains(t, stdout, `"power"`)
}

func TestExtensionsYAML(t *testing.T) {
	path := writeTemp(t, validDoc)
	code, stdout, _ := runCommand("extensions", "-o", "yaml", path)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "context: wpt[0]")
}

func TestExtensionsNone(t *testing.T) {
	path := writeTemp(t, `<gpx version="1.1"></gpx>`)
	code, stdout, _ := runCommand("extensions", path)
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "contains no extensions")
}

func TestExtensionsUnknownFormat(t *testing.T) {
	path := writeTemp(t, validDoc)
	code, _, stderr := runCommand("extensions", "-o", "toml", path)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown output format")
}
