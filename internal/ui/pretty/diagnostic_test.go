package pretty

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/praal/pearl/perl/parser"
)

func span(line, col, offset int) parser.Span {
	p := parser.Position{Offset: offset, Line: line, Column: col}
	return parser.Span{Start: p, End: p}
}

func TestFormatDiagnostic(t *testing.T) {
	s := NewStyles(false)
	diag := parser.Diagnostic{
		Severity: parser.SeverityError,
		Message:  "expected expression",
		Span:     span(3, 9, 30),
	}

	out := s.FormatDiagnostic("lib/Foo.pm", diag, "my $x = ;")
	assert.Contains(t, out, "lib/Foo.pm:3:9")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "expected expression")
	assert.Contains(t, out, "my $x = ;")
	assert.Contains(t, out, "        ^")
}

func TestFormatDiagnosticFix(t *testing.T) {
	s := NewStyles(false)
	diag := parser.Diagnostic{
		Severity: parser.SeverityWarning,
		Message:  "unterminated string literal",
		Span:     span(1, 5, 4),
		Fix:      "add a closing quote",
	}
	out := s.FormatDiagnostic("a.pl", diag, "")
	assert.Contains(t, out, "fix: add a closing quote")
	assert.Contains(t, out, "warning")
}

func TestFormatSeverity(t *testing.T) {
	s := NewStyles(false)
	assert.Equal(t, "error", s.FormatSeverity(parser.SeverityError))
	assert.Equal(t, "warning", s.FormatSeverity(parser.SeverityWarning))
	assert.Equal(t, "hint", s.FormatSeverity(parser.SeverityHint))
}

func TestFormatFileHeader(t *testing.T) {
	s := NewStyles(false)
	assert.Equal(t, "a.pl (1 problem)", s.FormatFileHeader("a.pl", 1))
	assert.Equal(t, "a.pl (3 problems)", s.FormatFileHeader("a.pl", 3))
	assert.Equal(t, "a.pl", s.FormatFileHeader("a.pl", 0))
}

func TestFormatSummary(t *testing.T) {
	s := NewStyles(false)
	assert.Contains(t, s.FormatSummary(4, 0, 0), "No problems found")
	assert.Contains(t, s.FormatSummary(4, 2, 1), "2 errors")
	assert.Contains(t, s.FormatSummary(4, 2, 1), "1 warnings")
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, IsColorEnabled("always", &buf))
	assert.False(t, IsColorEnabled("never", &buf))
	assert.False(t, IsColorEnabled("auto", &buf))
}
