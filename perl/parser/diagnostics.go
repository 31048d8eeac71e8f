package parser

import "sort"

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityHint
)

var severityNames = map[Severity]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityHint:    "hint",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Diagnostic is one reported problem. Fix, when non-empty, is a short
// human-readable suggestion, not a machine-applicable edit.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     Span
	Fix      string
}

func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Span.Start, diags[j].Span.Start
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		return diags[i].Span.End.Offset < diags[j].Span.End.Offset
	})
}

// Result is the output of a parse: a root node that always covers the whole
// input, plus the diagnostics collected along the way. Trees are immutable;
// Reparse returns a fresh Result sharing unchanged subtrees with the old one.
type Result struct {
	Root        *Node
	Diagnostics []Diagnostic
	input       []byte
	file        string
}

func (r *Result) Input() []byte { return r.input }
func (r *Result) File() string  { return r.file }

// ErrorCount reports how many error-severity diagnostics the parse produced.
func (r *Result) ErrorCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// DebugText renders the tree in a stable textual form used to compare an
// incremental result against a from-scratch parse.
func (r *Result) DebugText() string {
	if r.Root == nil {
		return ""
	}
	return r.Root.StringWithPositions()
}
