package parser

import "strings"

// Heredocs are lexed in two phases. The start marker (<<LABEL and variants)
// is recognized in-line and queued; the body is only consumed when lexing
// crosses onto the following line, because everything else on the start line
// still belongs to the surrounding expression. Bodies for stacked heredocs
// on one line are consumed in marker order.

func (l *Lexer) scanHeredocStart(start Position) (Token, bool) {
	if l.peek() != '<' || l.peekN(1) != '<' {
		return Token{}, false
	}

	i := l.pos + 2
	indent := false
	if i < len(l.input) && l.input[i] == '~' {
		indent = true
		i++
	}

	// Quoted labels may be separated from << by spaces; bare labels must be
	// adjacent, otherwise `1 << 2` would lex as a heredoc.
	j := i
	for j < len(l.input) && (l.input[j] == ' ' || l.input[j] == '\t') {
		j++
	}
	if j >= len(l.input) {
		return Token{}, false
	}

	var label string
	interpolate := true

	switch {
	case l.input[j] == '"' || l.input[j] == '\'':
		quote := l.input[j]
		k := j + 1
		for k < len(l.input) && l.input[k] != quote && l.input[k] != '\n' {
			k++
		}
		if k >= len(l.input) || l.input[k] != quote {
			return Token{}, false
		}
		label = string(l.input[j+1 : k])
		interpolate = quote == '"'
		j = k + 1
	case l.input[j] == '\\' && j+1 < len(l.input) && isIdentStart(l.input[j+1]):
		k := j + 1
		for k < len(l.input) && isIdentPart(l.input[k]) {
			k++
		}
		label = string(l.input[j+1 : k])
		interpolate = false
		j = k
	case isIdentStart(l.input[j]) && j == i:
		k := j
		for k < len(l.input) && isIdentPart(l.input[k]) {
			k++
		}
		label = string(l.input[j:k])
		j = k
	default:
		return Token{}, false
	}

	if label == "" {
		return Token{}, false
	}

	l.advanceN(j - l.pos)

	if len(l.pending) >= maxHeredocDepth {
		tok := l.token(TokenError, start)
		l.mode = ModeExpectOperator
		return tok, true
	}

	l.pending = append(l.pending, heredocSpec{label: label, indent: indent, interpolate: interpolate})
	l.mode = ModeExpectOperator

	tok := l.token(TokenHeredocStart, start)
	tok.Interpolates = interpolate
	tok.Heredoc = &HeredocInfo{Label: label, Indent: indent, Interpolate: interpolate}
	return tok, true
}

// consumeHeredocBodies runs at a line start and drains the pending queue,
// scanning line by line for each terminator.
func (l *Lexer) consumeHeredocBodies() {
	for len(l.pending) > 0 {
		spec := l.pending[0]
		l.pending = l.pending[1:]

		bodyStart := l.Position()
		terminated := false
		termIndent := ""
		var bodyEnd Position

		for l.pos < len(l.input) {
			if l.pos-bodyStart.Offset > maxHeredocBytes {
				break
			}
			lineStart := l.Position()
			lineEnd := l.pos
			for lineEnd < len(l.input) && l.input[lineEnd] != '\n' {
				lineEnd++
			}
			line := string(l.input[l.pos:lineEnd])
			if isHeredocTerminator(line, spec.label, spec.indent) {
				termIndent = leadingWhitespace(line)
				bodyEnd = lineStart
				l.advanceN(lineEnd - l.pos)
				if l.pos < len(l.input) {
					l.advance() // newline after terminator
				}
				terminated = true
				break
			}
			l.advanceN(lineEnd - l.pos)
			if l.pos < len(l.input) {
				l.advance()
			}
		}

		if !terminated {
			for l.pos < len(l.input) {
				l.advance()
			}
			bodyEnd = l.Position()
		}

		body := string(l.input[bodyStart.Offset:bodyEnd.Offset])
		if spec.indent {
			body = stripHeredocIndent(body, termIndent)
		}

		l.bodies = append(l.bodies, HeredocBodyRec{
			Label:        spec.label,
			Body:         body,
			Span:         Span{Start: bodyStart, End: bodyEnd},
			Unterminated: !terminated,
		})
	}
}

func isHeredocTerminator(line, label string, indent bool) bool {
	trimmed := strings.TrimRight(line, " \t\r")
	if indent {
		trimmed = strings.TrimLeft(trimmed, " \t")
	}
	return trimmed == label
}

// stripHeredocIndent removes the terminator's indentation from every line
// of an indented (<<~) heredoc body, matching perl 5.26 semantics. Lines
// indented less than the terminator lose only the whitespace they have.
// An unterminated body has no terminator indentation and keeps its lines
// untouched.
func stripHeredocIndent(body, termIndent string) string {
	if body == "" || termIndent == "" {
		return body
	}
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		n := 0
		for n < len(line) && n < len(termIndent) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		lines[i] = line[n:]
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) string {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return line[:n]
}
