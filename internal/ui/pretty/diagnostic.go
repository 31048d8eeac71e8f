package pretty

import (
	"fmt"
	"strings"

	"github.com/praal/pearl/perl/parser"
)

// FormatDiagnostic renders one diagnostic. sourceLine, when non-empty, is
// printed below with a caret at the start column.
func (s *Styles) FormatDiagnostic(path string, diag parser.Diagnostic, sourceLine string) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		diag.Span.Start.Line,
		diag.Span.Start.Column,
	)

	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	))

	if sourceLine != "" {
		b.WriteString(s.formatSourceContext(sourceLine, diag.Span.Start.Column))
	}
	if diag.Fix != "" {
		b.WriteString("    " + s.Dim.Render("fix:") + " " + s.Fix.Render(diag.Fix) + "\n")
	}
	return b.String()
}

func (s *Styles) FormatSeverity(sev parser.Severity) string {
	switch sev {
	case parser.SeverityError:
		return s.Error.Render("error")
	case parser.SeverityWarning:
		return s.Warning.Render("warning")
	case parser.SeverityHint:
		return s.Hint.Render("hint")
	}
	return sev.String()
}

func (s *Styles) formatSourceContext(line string, column int) string {
	const indent = "        "
	var b strings.Builder
	b.WriteString(indent + s.SourceLine.Render(strings.TrimRight(line, "\r\n")) + "\n")
	if column > 0 {
		b.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return b.String()
}

// FormatFileHeader prints the file path with its problem count.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		word := "problems"
		if count == 1 {
			word = "problem"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, word))
	}
	return header
}

// FormatSummary is the final line of a check run.
func (s *Styles) FormatSummary(files, errors, warnings int) string {
	if errors == 0 && warnings == 0 {
		return s.Success.Render("No problems found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", files)) + "\n"
	}
	var parts []string
	if errors > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	return strings.Join(parts, ", ") +
		s.Dim.Render(fmt.Sprintf(" in %d files", files)) + "\n"
}
