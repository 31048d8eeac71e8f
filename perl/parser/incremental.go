package parser

// Edit describes one contiguous buffer change: bytes [Start, OldEnd) of the
// old buffer were replaced by bytes [Start, NewEnd) of the new buffer.
type Edit struct {
	Start  int
	OldEnd int
	NewEnd int
}

func (e Edit) delta() int { return e.NewEnd - e.OldEnd }

// ComputeEdit derives an Edit from two buffer snapshots by trimming their
// common prefix and suffix. Callers with precise change ranges should build
// the Edit directly.
func ComputeEdit(old, new []byte) Edit {
	start := 0
	for start < len(old) && start < len(new) && old[start] == new[start] {
		start++
	}
	oldEnd, newEnd := len(old), len(new)
	for oldEnd > start && newEnd > start && old[oldEnd-1] == new[newEnd-1] {
		oldEnd--
		newEnd--
	}
	return Edit{Start: start, OldEnd: oldEnd, NewEnd: newEnd}
}

// grow attempts before giving up and reparsing from scratch.
const maxRegionGrowth = 4

// Reparse produces a tree for the edited buffer, reusing top-level
// statements that the edit cannot have touched. Statements before the edit
// are shared by pointer; statements after it are copied with their
// positions shifted. Whenever the statement boundaries cannot be
// re-established cheaply, it falls back to a full parse.
func (r *Result) Reparse(newInput []byte, edit Edit) *Result {
	if r == nil || r.Root == nil || r.Root.Kind != KindProgram {
		return Parse(newInput, "")
	}
	full := func() *Result { return Parse(newInput, r.file) }
	if edit.Start > len(r.input) || edit.OldEnd > len(r.input) || edit.NewEnd > len(newInput) || edit.Start > edit.OldEnd {
		return full()
	}

	stmts := r.Root.Children
	firstAffected, lastAffected := -1, -1
	for i, s := range stmts {
		if s.Span.End.Offset < edit.Start {
			continue
		}
		if s.Span.Start.Offset > edit.OldEnd {
			break
		}
		if firstAffected < 0 {
			firstAffected = i
		}
		lastAffected = i
	}
	if firstAffected < 0 {
		// The edit landed between statements, possibly inside a comment
		// or POD block the tree does not cover.
		return full()
	}
	for i := firstAffected; i <= lastAffected; i++ {
		if stmts[i].Kind == KindDataSection {
			return full()
		}
	}

	// A full lex reaches this offset with whatever mode the previous
	// statement left behind; the window always starts expecting a term.
	// The modes agree after ';'. Otherwise, bail out when the region
	// begins with something the mode would change the reading of.
	if firstAffected > 0 {
		prevEnd := stmts[firstAffected-1].Span.End.Offset
		regionOff := stmts[firstAffected].Span.Start.Offset
		if !endsWithSemicolon(r.input, prevEnd) &&
			regionOff < len(newInput) && modeSensitiveStart(newInput[regionOff:]) {
			return full()
		}
	}

	sh := newShifter(r.input, newInput, edit)

	for growth := 0; growth <= maxRegionGrowth; growth++ {
		last := lastAffected + growth
		if last >= len(stmts) {
			break
		}
		suffix := stmts[last+1:]
		regionStart := stmts[firstAffected].Span.Start
		if regionStart.Offset > edit.Start {
			return full()
		}

		// Cut at the first reusable suffix statement, shifted into new
		// buffer coordinates. No suffix means parsing to EOF, which a
		// full parse does just as well.
		if len(suffix) == 0 {
			return full()
		}
		if suffix[0].Kind == KindDataSection {
			// Re-lexing up to __END__ re-derives the marker anyway.
			return full()
		}
		cut := suffix[0].Span.Start.Offset + edit.delta()
		if cut <= regionStart.Offset || cut > len(newInput) {
			return full()
		}

		res, ok := r.parseWindow(newInput, regionStart, cut)
		if !ok {
			continue
		}
		// Error recovery may consume past a statement boundary in a full
		// parse; a window parse cannot, so any error forces a full parse.
		if len(res.diags) > 0 {
			return full()
		}
		for _, s := range res.stmts {
			if findErrorNode(s) {
				return full()
			}
		}

		// The reused suffix keeps the reading the old region's mode gave
		// it; a full parse would re-lex it with the new region's mode.
		// The two modes are known to agree only after a ';' terminator,
		// so a mode-sensitive suffix behind any other boundary must be
		// re-read from scratch.
		if modeSensitiveStart(newInput[cut:]) {
			oldNeutral := endsWithSemicolon(r.input, stmts[last].Span.End.Offset)
			newNeutral := true
			if n := len(res.stmts); n > 0 {
				newNeutral = endsWithSemicolon(newInput, res.stmts[n-1].Span.End.Offset)
			} else if firstAffected > 0 {
				newNeutral = endsWithSemicolon(newInput, stmts[firstAffected-1].Span.End.Offset)
			}
			if !oldNeutral || !newNeutral {
				return full()
			}
		}

		root := &Node{Kind: KindProgram}
		root.Children = append(root.Children, stmts[:firstAffected]...)
		root.Children = append(root.Children, res.stmts...)
		for _, s := range suffix {
			root.Children = append(root.Children, sh.node(s))
		}
		root.Span = Span{
			Start: Position{File: r.file, Offset: 0, Line: 1, Column: 1},
			End:   sh.pos(r.Root.Span.End),
		}
		if !validateSpans(root) {
			return full()
		}

		var diags []Diagnostic
		for _, d := range r.Diagnostics {
			if d.Span.End.Offset < regionStart.Offset {
				diags = append(diags, d)
			}
		}
		diags = append(diags, res.diags...)
		cutOld := cut - edit.delta()
		for _, d := range r.Diagnostics {
			if d.Span.Start.Offset >= cutOld {
				diags = append(diags, Diagnostic{
					Severity: d.Severity,
					Message:  d.Message,
					Span:     Span{Start: sh.pos(d.Span.Start), End: sh.pos(d.Span.End)},
					Fix:      d.Fix,
				})
			}
		}
		sortDiagnostics(diags)
		return &Result{Root: root, Diagnostics: diags, input: newInput, file: r.file}
	}
	return full()
}

// endsWithSemicolon reports whether the byte before end is the ';'
// statement terminator, the only boundary where the lexer mode after it is
// the same in every parse.
func endsWithSemicolon(buf []byte, end int) bool {
	return end > 0 && end <= len(buf) && buf[end-1] == ';'
}

func findErrorNode(root *Node) bool {
	found := false
	root.Walk(func(n *Node) bool {
		if n.Kind == KindError {
			found = true
		}
		return !found
	})
	return found
}

// modeSensitiveStart reports whether the bytes begin with a token whose
// meaning depends on the lexer mode: a regex-or-division slash, a sigil
// that could be an operator, a heredoc-or-shift, or the word operators
// that double as identifiers.
func modeSensitiveStart(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	switch b[0] {
	case '/', '%', '*', '&', '<', '.':
		return true
	}
	words := []string{"x", "eq", "ne", "lt", "gt", "le", "ge", "cmp"}
	for _, w := range words {
		if len(b) >= len(w) && string(b[:len(w)]) == w &&
			(len(b) == len(w) || !isIdentPart(b[len(w)])) {
			return true
		}
	}
	return false
}

type windowResult struct {
	stmts []*Node
	diags []Diagnostic
}

// parseWindow lexes and parses new-buffer bytes [start, cut) as a run of
// top-level statements. It reports failure when the window does not end on
// a clean statement boundary.
func (r *Result) parseWindow(newInput []byte, start Position, cut int) (windowResult, bool) {
	lex := NewLexerAt(newInput, r.file, Checkpoint{Pos: start, Mode: ModeExpectTerm})
	p := &Parser{file: r.file, input: newInput}

	var awaiting []int
	endPos := start
	for {
		if lex.Position().Offset >= cut && lex.PendingHeredocs() == 0 {
			break
		}
		tok := lex.NextToken()
		for _, body := range lex.TakeHeredocBodies() {
			if body.Unterminated || len(awaiting) == 0 {
				return windowResult{}, false
			}
			idx := awaiting[0]
			awaiting = awaiting[1:]
			info := p.tokens[idx].Heredoc
			info.Body = body.Body
			info.BodySpan = body.Span
		}
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Span.Start.Offset >= cut {
			// Only trivia or heredoc bodies separated the last statement
			// from the cut; the boundary is clean.
			break
		}
		if tok.Span.End.Offset > cut {
			// A single token crosses the boundary; the region must grow.
			return windowResult{}, false
		}
		switch tok.Kind {
		case TokenWhitespace, TokenPod:
		case TokenComment:
			p.comments = append(p.comments, tok)
		default:
			p.tokens = append(p.tokens, tok)
			if tok.Kind == TokenHeredocStart {
				awaiting = append(awaiting, len(p.tokens)-1)
			}
			p.noteLexDiagnostic(tok)
		}
		endPos = tok.Span.End
	}
	if len(awaiting) > 0 || lex.PendingHeredocs() > 0 {
		return windowResult{}, false
	}
	p.tokens = append(p.tokens, Token{Kind: TokenEOF, Span: Span{Start: endPos, End: endPos}})

	var stmts []*Node
	for !p.check(TokenEOF) {
		progressed := p.mustProgress()
		stmts = append(stmts, p.parseStatement())
		if !progressed() {
			break
		}
	}
	if !p.check(TokenEOF) {
		return windowResult{}, false
	}
	for _, s := range stmts {
		if s.Span.End.Offset > cut {
			return windowResult{}, false
		}
		// A parse that ran off the end of the window means the statement
		// actually continues into the suffix.
		hitEnd := false
		s.Walk(func(n *Node) bool {
			if n.Error != nil && n.Error.Got != nil && n.Error.Got.Kind == TokenEOF {
				hitEnd = true
			}
			return !hitEnd
		})
		if hitEnd {
			return windowResult{}, false
		}
	}
	sortDiagnostics(p.diags)
	return windowResult{stmts: stmts, diags: p.diags}, true
}

// shifter moves old-buffer positions past the edit into new-buffer
// coordinates, fixing offset, line and column.
type shifter struct {
	delta    int
	oldLine  int
	oldCol   int
	newLine  int
	newCol   int
	lineDiff int
}

func newShifter(old, new []byte, edit Edit) shifter {
	ol, oc := lineColAt(old, edit.OldEnd)
	nl, nc := lineColAt(new, edit.NewEnd)
	return shifter{
		delta:    edit.delta(),
		oldLine:  ol,
		oldCol:   oc,
		newLine:  nl,
		newCol:   nc,
		lineDiff: nl - ol,
	}
}

func lineColAt(input []byte, offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (sh shifter) pos(p Position) Position {
	out := p
	out.Offset += sh.delta
	if p.Line == sh.oldLine {
		out.Line = sh.newLine
		out.Column = p.Column - sh.oldCol + sh.newCol
	} else {
		out.Line += sh.lineDiff
	}
	return out
}

func (sh shifter) span(s Span) Span {
	return Span{Start: sh.pos(s.Start), End: sh.pos(s.End)}
}

// node deep-copies a subtree with every position shifted. Fingerprints are
// content hashes and survive the move.
func (sh shifter) node(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:  n.Kind,
		Span:  sh.span(n.Span),
		Error: n.Error,
		fp:    n.fp,
		fpSet: n.fpSet,
	}
	if n.Token != nil {
		t := *n.Token
		t.Span = sh.span(t.Span)
		if t.Heredoc != nil {
			h := *t.Heredoc
			h.BodySpan = sh.span(h.BodySpan)
			t.Heredoc = &h
		}
		out.Token = &t
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = sh.node(child)
		}
	}
	return out
}
