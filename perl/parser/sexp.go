package parser

import (
	"strconv"
	"strings"
)

// SexpVersion tags the dump format so downstream tools can detect
// incompatible changes.
const SexpVersion = "pearl-ast/1"

// Sexp renders the tree as a versioned s-expression, one node per line,
// indentation showing depth. The format is stable across runs on the same
// input and is what golden tests diff against.
func (r *Result) Sexp() string {
	var b strings.Builder
	b.WriteString(";; " + SexpVersion + "\n")
	if r.Root != nil {
		writeSexp(&b, r.Root, 0)
	}
	return b.String()
}

func writeSexp(b *strings.Builder, n *Node, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	if depth >= maxRenderDepth {
		b.WriteString("...\n")
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	b.WriteString(" " + strconv.Itoa(n.Span.Start.Offset) + ".." + strconv.Itoa(n.Span.End.Offset))
	if n.Token != nil && n.Token.Literal != "" {
		b.WriteString(" " + strconv.Quote(n.Token.Literal))
	}
	if n.Error != nil {
		b.WriteString(" (error " + strconv.Quote(n.Error.Message) + ")")
	}
	if len(n.Children) == 0 {
		b.WriteString(")\n")
		return
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		writeSexp(b, child, depth+1)
	}
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString(")\n")
}
