package parser

// Quote-like constructs: q qq qw qr qx, m// s/// tr/// y///, plain strings
// and regex literals. Each is lexed as a single token covering the operator,
// delimiters, bodies and trailing flags. Delimiters may be any
// non-alphanumeric, non-whitespace character; the four bracket pairs nest.

func closingDelim(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '{':
		return '}'
	case '[':
		return ']'
	case '<':
		return '>'
	}
	return open
}

func isPaired(open byte) bool {
	return open == '(' || open == '{' || open == '[' || open == '<'
}

func isQuoteDelim(ch byte) bool {
	if ch == 0 || ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return false
	}
	return !isIdentPart(ch)
}

// scanQuoteBody consumes one delimited body starting at the opening
// delimiter. Reports whether the closing delimiter was found before end of
// input or the size budget ran out.
func (l *Lexer) scanQuoteBody() bool {
	open := l.advance()
	close := closingDelim(open)
	paired := isPaired(open)
	depth := 1
	start := l.pos

	for l.pos < len(l.input) {
		if l.pos-start > maxQuoteBytes || depth > maxDelimNest {
			l.skipToEOF()
			return false
		}
		ch := l.peek()
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
			continue
		}
		if paired && ch == open {
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				l.advance()
				return true
			}
		}
		l.advance()
	}
	return false
}

func (l *Lexer) scanFlags() {
	for {
		ch := l.peek()
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' {
			l.advance()
		} else {
			return
		}
	}
}

// scanDelimitedString lexes "...", '...' and `...`.
func (l *Lexer) scanDelimitedString(start Position, kind TokenKind, _ byte, interpolates bool) Token {
	closed := l.scanQuoteBody()
	tok := l.token(kind, start)
	tok.Interpolates = interpolates
	tok.Unterminated = !closed
	l.mode = ModeExpectOperator
	return tok
}

// scanRegexLiteral lexes a bare /pattern/flags in term position.
func (l *Lexer) scanRegexLiteral(start Position) Token {
	closed := l.scanQuoteBody()
	if closed {
		l.scanFlags()
	}
	tok := l.token(TokenMatch, start)
	tok.Interpolates = true
	tok.Unterminated = !closed
	l.mode = ModeExpectOperator
	return tok
}

// tryQuoteLike recognizes a quote-like operator after its identifier-looking
// prefix has been consumed. Returns false when the word is an ordinary
// identifier in this position (e.g. `q => 1`).
func (l *Lexer) tryQuoteLike(word string, start Position) (Token, bool) {
	switch word {
	case "m", "s", "tr", "y":
		// The delimiter must be immediately adjacent.
		if !isQuoteDelim(l.peek()) {
			return Token{}, false
		}
		if l.peek() == '=' && l.peekN(1) == '>' {
			return Token{}, false
		}
		switch word {
		case "m":
			return l.scanMatch(start), true
		case "s":
			return l.scanSubstitution(start), true
		default:
			return l.scanTransliteration(start), true
		}
	case "q", "qq", "qw", "qr", "qx":
		// Whitespace may separate the operator from its delimiter, but a
		// '#' after whitespace is a comment, and `=>` keeps the word a
		// hash key.
		i := l.pos
		sawSpace := false
		for i < len(l.input) && (l.input[i] == ' ' || l.input[i] == '\t') {
			i++
			sawSpace = true
		}
		if i >= len(l.input) || !isQuoteDelim(l.input[i]) {
			return Token{}, false
		}
		if l.input[i] == '=' && i+1 < len(l.input) && l.input[i+1] == '>' {
			return Token{}, false
		}
		if sawSpace && l.input[i] == '#' {
			return Token{}, false
		}
		if sawSpace && l.input[i] == ',' {
			return Token{}, false
		}
		l.advanceN(i - l.pos)
		return l.scanQuoteOperator(word, start), true
	}
	return Token{}, false
}

func (l *Lexer) scanQuoteOperator(word string, start Position) Token {
	open := l.peek()
	closed := l.scanQuoteBody()

	var kind TokenKind
	interpolates := false
	switch word {
	case "q":
		kind = TokenString
	case "qq":
		kind = TokenString
		interpolates = true
	case "qw":
		kind = TokenQuoteWords
	case "qr":
		kind = TokenQuoteRegex
		interpolates = open != '\''
		if closed {
			l.scanFlags()
		}
	case "qx":
		kind = TokenBacktick
		interpolates = open != '\''
	}

	tok := l.token(kind, start)
	tok.Interpolates = interpolates
	tok.Unterminated = !closed
	l.mode = ModeExpectOperator
	return tok
}

func (l *Lexer) scanMatch(start Position) Token {
	open := l.peek()
	closed := l.scanQuoteBody()
	if closed {
		l.scanFlags()
	}
	tok := l.token(TokenMatch, start)
	tok.Interpolates = open != '\''
	tok.Unterminated = !closed
	l.mode = ModeExpectOperator
	return tok
}

// scanSubstitution lexes s/PATTERN/REPLACEMENT/flags. With a bracketing
// first delimiter the replacement gets its own delimiter pair, possibly of a
// different kind: s{foo}{bar}.
func (l *Lexer) scanSubstitution(start Position) Token {
	tok, _ := l.scanTwoPartQuote(start, TokenSubstitution)
	return tok
}

func (l *Lexer) scanTransliteration(start Position) Token {
	tok, _ := l.scanTwoPartQuote(start, TokenTransliteration)
	return tok
}

func (l *Lexer) scanTwoPartQuote(start Position, kind TokenKind) (Token, bool) {
	open := l.peek()
	paired := isPaired(open)

	closed := l.scanQuoteBody()
	if !closed {
		tok := l.token(kind, start)
		tok.Unterminated = true
		l.mode = ModeExpectOperator
		return tok, false
	}

	if paired {
		// Whitespace (including newlines) may precede the second opening
		// delimiter.
		for {
			ch := l.peek()
			if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
				l.advance()
				continue
			}
			break
		}
		if !isQuoteDelim(l.peek()) {
			tok := l.token(kind, start)
			tok.Unterminated = true
			l.mode = ModeExpectOperator
			return tok, false
		}
		closed = l.scanQuoteBody()
	} else {
		// Same delimiter continues: the middle delimiter was already
		// consumed as the close of part one, so part two runs to the next
		// occurrence.
		closed = l.scanRestOfBody(open)
	}

	if closed {
		l.scanFlags()
	}
	tok := l.token(kind, start)
	tok.Interpolates = open != '\''
	tok.Unterminated = !closed
	l.mode = ModeExpectOperator
	return tok, closed
}

// scanRestOfBody consumes up to and including the next unescaped close
// character (non-paired second bodies).
func (l *Lexer) scanRestOfBody(close byte) bool {
	start := l.pos
	for l.pos < len(l.input) {
		if l.pos-start > maxQuoteBytes {
			l.skipToEOF()
			return false
		}
		ch := l.peek()
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.input) {
				l.advance()
			}
			continue
		}
		if ch == close {
			l.advance()
			return true
		}
		l.advance()
	}
	return false
}
