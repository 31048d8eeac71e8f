package parser

import (
	"hash/fnv"
	"strings"
)

type NodeKind int

const (
	KindError NodeKind = iota

	// Top level
	KindProgram
	KindPackageDecl
	KindUseDecl
	KindNoDecl
	KindRequireDecl
	KindSubDecl
	KindPhaseBlock
	KindDataSection

	// Statements
	KindBlock
	KindVarDecl
	KindConditional
	KindLoop
	KindForeach
	KindForC
	KindStatementModifier
	KindExprStmt
	KindReturnStmt
	KindLoopControl
	KindEmptyStmt

	// Expressions
	KindAssignExpr
	KindTernaryExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindRangeExpr
	KindCall
	KindMethodCall
	KindIndexExpr
	KindKeyExpr
	KindSliceExpr
	KindDeref
	KindRefExpr
	KindListExpr
	KindArrayLiteral
	KindHashLiteral
	KindAnonSub
	KindDoBlock
	KindEvalBlock
	KindParenExpr

	// Terms
	KindVariable
	KindIdentifier
	KindNumberLiteral
	KindStringLiteral
	KindQuoteWords
	KindQuoteRegex
	KindRegexMatch
	KindSubstitution
	KindTransliteration
	KindHeredocString
	KindReadline
	KindBacktick
	KindVersionLiteral
	KindMatchBind
)

var nodeKindNames = map[NodeKind]string{
	KindError:             "Error",
	KindProgram:           "Program",
	KindPackageDecl:       "PackageDecl",
	KindUseDecl:           "UseDecl",
	KindNoDecl:            "NoDecl",
	KindRequireDecl:       "RequireDecl",
	KindSubDecl:           "SubDecl",
	KindPhaseBlock:        "PhaseBlock",
	KindDataSection:       "DataSection",
	KindBlock:             "Block",
	KindVarDecl:           "VarDecl",
	KindConditional:       "Conditional",
	KindLoop:              "Loop",
	KindForeach:           "Foreach",
	KindForC:              "ForC",
	KindStatementModifier: "StatementModifier",
	KindExprStmt:          "ExprStmt",
	KindReturnStmt:        "ReturnStmt",
	KindLoopControl:       "LoopControl",
	KindEmptyStmt:         "EmptyStmt",
	KindAssignExpr:        "AssignExpr",
	KindTernaryExpr:       "TernaryExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindPostfixExpr:       "PostfixExpr",
	KindRangeExpr:         "RangeExpr",
	KindCall:              "Call",
	KindMethodCall:        "MethodCall",
	KindIndexExpr:         "IndexExpr",
	KindKeyExpr:           "KeyExpr",
	KindSliceExpr:         "SliceExpr",
	KindDeref:             "Deref",
	KindRefExpr:           "RefExpr",
	KindListExpr:          "ListExpr",
	KindArrayLiteral:      "ArrayLiteral",
	KindHashLiteral:       "HashLiteral",
	KindAnonSub:           "AnonSub",
	KindDoBlock:           "DoBlock",
	KindEvalBlock:         "EvalBlock",
	KindParenExpr:         "ParenExpr",
	KindVariable:          "Variable",
	KindIdentifier:        "Identifier",
	KindNumberLiteral:     "NumberLiteral",
	KindStringLiteral:     "StringLiteral",
	KindQuoteWords:        "QuoteWords",
	KindQuoteRegex:        "QuoteRegex",
	KindRegexMatch:        "RegexMatch",
	KindSubstitution:      "Substitution",
	KindTransliteration:   "Transliteration",
	KindHeredocString:     "HeredocString",
	KindReadline:          "Readline",
	KindBacktick:          "Backtick",
	KindVersionLiteral:    "VersionLiteral",
	KindMatchBind:         "MatchBind",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type ParseError struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

// Node is one vertex of the syntax tree. A node owns its children; there
// are no parent pointers, so whole subtrees can be shared between tree
// versions by the incremental engine. Nodes are immutable once the parser
// finishes them.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *ParseError

	fp    uint64
	fpSet bool
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Fingerprint is a content hash over kind, token text and child
// fingerprints. Two subtrees with equal fingerprints and equal extents are
// treated as interchangeable by the incremental engine; it is not a
// semantic equality.
func (n *Node) Fingerprint() uint64 {
	if n.fpSet {
		return n.fp
	}
	h := fnv.New64a()
	var kindBuf [2]byte
	kindBuf[0] = byte(n.Kind)
	kindBuf[1] = byte(n.Kind >> 8)
	h.Write(kindBuf[:])
	if n.Token != nil {
		h.Write([]byte(n.Token.Literal))
		if n.Token.Heredoc != nil {
			h.Write([]byte(n.Token.Heredoc.Body))
		}
	}
	for _, child := range n.Children {
		cf := child.Fingerprint()
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(cf >> (8 * i))
		}
		h.Write(buf[:])
	}
	n.fp = h.Sum64()
	n.fpSet = true
	return n.fp
}

// Equal reports structural equality: same kinds, same token literals, same
// shape. Spans are ignored.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.TokenLiteral() != other.TokenLiteral() {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Walk calls fn for n and every descendant, parents first. Returning false
// prunes the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// NodeAt returns the smallest node whose span contains the byte offset.
func (n *Node) NodeAt(offset int) *Node {
	if n == nil || offset < n.Span.Start.Offset || offset >= n.Span.End.Offset {
		return nil
	}
	for _, child := range n.Children {
		if found := child.NodeAt(offset); found != nil {
			return found
		}
	}
	return n
}

func (n *Node) String() string {
	var b strings.Builder
	n.stringIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.stringIndent(&b, 0, true)
	return b.String()
}

// maxRenderDepth bounds dump recursion. Parse recursion is capped well
// below this, but iteratively built operator chains can nest arbitrarily.
const maxRenderDepth = 4096

func (n *Node) stringIndent(b *strings.Builder, indent int, showPositions bool) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
	if indent >= maxRenderDepth {
		b.WriteString("...\n")
		return
	}
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		b.WriteString(" " + n.Token.Literal)
	}
	if n.Error != nil {
		b.WriteString(" ERROR: " + n.Error.Message)
	}
	b.WriteByte('\n')
	for _, child := range n.Children {
		child.stringIndent(b, indent+1, showPositions)
	}
}

// validateSpans checks the containment and ordering invariants: every child
// span inside its parent, sibling starts non-decreasing. Used by tests and
// by the incremental engine's splice verification.
func validateSpans(n *Node) bool {
	prev := n.Span.Start.Offset
	for _, child := range n.Children {
		if !n.Span.Contains(child.Span) {
			return false
		}
		if child.Span.Start.Offset < prev {
			return false
		}
		prev = child.Span.Start.Offset
		if !validateSpans(child) {
			return false
		}
	}
	return true
}
