package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praal/pearl/perl/parser"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.HasExtension("lib/Foo.pm"))
	assert.True(t, cfg.HasExtension("t/basic.t"))
	assert.False(t, cfg.HasExtension("README.md"))
	assert.True(t, cfg.Ignored(".git/objects/ab/cdef"))
	assert.False(t, cfg.Ignored("lib/Foo.pm"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
severity:
  "unterminated": warning
ignore:
  - "vendor/**"
  - "*.bak"
extensions:
  - ".pl"
  - ".cgi"
max_file_size: 1048576
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1048576), cfg.MaxFileSize)
	assert.True(t, cfg.HasExtension("script.cgi"))
	assert.False(t, cfg.HasExtension("Module.pm"))
	assert.True(t, cfg.Ignored("vendor/Foo/Bar.pm"))
	assert.True(t, cfg.Ignored("lib/old.bak"))
}

func TestLoadInvalidSeverity(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "severity:\n  \"foo\": fatal\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity")
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "severity: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadNegativeFileSize(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "max_file_size: -1\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestDiscoverUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "ignore:\n  - \"tmp/**\"\n")
	nested := filepath.Join(root, "lib", "Deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.True(t, cfg.Ignored("tmp/scratch.pl"))
}

func TestDiscoverMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, path, err := Discover(dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	require.NotNil(t, cfg)
	assert.True(t, cfg.HasExtension("x.pl"))
}

func TestSeverityFor(t *testing.T) {
	cfg := Default()
	cfg.Severity = map[string]string{
		"unterminated":        "warning",
		"unterminated string": "hint",
	}

	diag := parser.Diagnostic{Severity: parser.SeverityError, Message: "unterminated string literal"}
	assert.Equal(t, parser.SeverityHint, cfg.SeverityFor(diag))

	diag.Message = "unterminated regex"
	assert.Equal(t, parser.SeverityWarning, cfg.SeverityFor(diag))

	diag.Message = "expected expression"
	assert.Equal(t, parser.SeverityError, cfg.SeverityFor(diag))
}
