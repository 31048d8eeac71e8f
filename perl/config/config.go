// Package config loads `.pearl.yml`, the project configuration for the
// pearl CLI. Settings cover diagnostic severity overrides, file selection
// and parse limits. The language server reads the same file when present
// in the workspace root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/praal/pearl/perl/parser"
)

// FileName is the project config file searched for upward from the
// working directory.
const FileName = ".pearl.yml"

type Config struct {
	// Severity maps a diagnostic message prefix to "error", "warning" or
	// "hint", overriding the parser's default.
	Severity map[string]string `yaml:"severity"`

	// Ignore lists path globs excluded from `pearl check` walks.
	Ignore []string `yaml:"ignore"`

	// Extensions recognized as Perl in addition to content detection.
	Extensions []string `yaml:"extensions"`

	// MaxFileSize in bytes; larger files are skipped by `check`.
	// Zero means no limit.
	MaxFileSize int64 `yaml:"max_file_size"`
}

func Default() *Config {
	return &Config{
		Severity:   map[string]string{},
		Ignore:     []string{".git/**", "blib/**", "local/**"},
		Extensions: []string{".pl", ".pm", ".t", ".psgi"},
	}
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover searches dir and its ancestors for FileName. It returns the
// defaults when no file exists.
func Discover(dir string) (*Config, string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, FileName)
		if _, err := os.Stat(candidate); err == nil {
			cfg, err := Load(candidate)
			if err != nil {
				return nil, "", err
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return Default(), "", nil
		}
		current = parent
	}
}

func (c *Config) validate() error {
	for prefix, level := range c.Severity {
		if _, ok := parseSeverity(level); !ok {
			return fmt.Errorf("severity %q for %q: want error, warning or hint", level, prefix)
		}
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative")
	}
	return nil
}

// SeverityFor returns the configured severity for a diagnostic, falling
// back to the parser's default. Overrides match on message prefix; the
// longest matching prefix wins.
func (c *Config) SeverityFor(d parser.Diagnostic) parser.Severity {
	best := -1
	result := d.Severity
	for prefix, level := range c.Severity {
		if !strings.HasPrefix(d.Message, prefix) || len(prefix) <= best {
			continue
		}
		if sev, ok := parseSeverity(level); ok {
			best = len(prefix)
			result = sev
		}
	}
	return result
}

// Ignored reports whether a slash-separated relative path matches an
// ignore glob. A trailing `/**` matches the directory itself and
// everything below it.
func (c *Config) Ignored(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range c.Ignore {
		if strings.HasSuffix(pattern, "/**") {
			root := strings.TrimSuffix(pattern, "/**")
			if relPath == root || strings.HasPrefix(relPath, root+"/") {
				return true
			}
			continue
		}
		if ok, err := filepath.Match(pattern, relPath); err == nil && ok {
			return true
		}
		// Also match against the basename so `*.bak` works at any depth.
		if ok, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}

// HasExtension reports whether path carries one of the configured Perl
// extensions.
func (c *Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func parseSeverity(s string) (parser.Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return parser.SeverityError, true
	case "warning", "warn":
		return parser.SeverityWarning, true
	case "hint", "info":
		return parser.SeverityHint, true
	}
	return parser.SeverityError, false
}
