package parser

// LexerMode tracks what the next ambiguous character should be read as.
// A '/' in ModeExpectTerm starts a regex; in ModeExpectOperator it is
// division. The mode is carried on the lexer cursor, never in shared state,
// so independent documents lex in parallel and incremental reparses can
// resume from any recorded checkpoint.
type LexerMode int

const (
	ModeExpectTerm LexerMode = iota
	ModeExpectOperator
)

func (m LexerMode) String() string {
	if m == ModeExpectOperator {
		return "ExpectOperator"
	}
	return "ExpectTerm"
}

// Checkpoint captures the resumable part of the lexer cursor. It is only
// valid at points where no heredoc bodies are pending; statement boundaries
// always satisfy this.
type Checkpoint struct {
	Pos  Position
	Mode LexerMode
}

// Budget limits that keep pathological input from hanging the lexer. When a
// limit is hit the current token is truncated and tagged unterminated; the
// stream continues.
const (
	maxQuoteBytes   = 64 * 1024
	maxHeredocBytes = 256 * 1024
	maxDelimNest    = 128
	maxHeredocDepth = 100
)

type heredocSpec struct {
	label       string
	indent      bool
	interpolate bool
}

// HeredocBodyRec is a consumed heredoc body waiting to be attached to its
// start token. Bodies become available once lexing crosses the newline that
// ends the start token's logical line.
type HeredocBodyRec struct {
	Label        string
	Body         string
	Span         Span
	Unterminated bool
}

type Lexer struct {
	input       []byte
	file        string
	pos         int
	line        int
	column      int
	mode        LexerMode
	atLineStart bool
	pending     []heredocSpec
	bodies      []HeredocBodyRec
	inData      bool
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:       input,
		file:        file,
		pos:         0,
		line:        1,
		column:      1,
		mode:        ModeExpectTerm,
		atLineStart: true,
	}
}

// NewLexerAt resumes lexing mid-buffer from a recorded checkpoint. The
// incremental engine uses this to re-lex only the affected span.
func NewLexerAt(input []byte, file string, cp Checkpoint) *Lexer {
	return &Lexer{
		input:       input,
		file:        file,
		pos:         cp.Pos.Offset,
		line:        cp.Pos.Line,
		column:      cp.Pos.Column,
		mode:        cp.Mode,
		atLineStart: cp.Pos.Column == 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{File: l.file, Offset: l.pos, Line: l.line, Column: l.column}
}

func (l *Lexer) Mode() LexerMode { return l.mode }

// SetMode overrides the cursor mode. The parser resets to ModeExpectTerm at
// statement boundaries where the grammar guarantees a term follows.
func (l *Lexer) SetMode(mode LexerMode) { l.mode = mode }

// PendingHeredocs reports how many heredoc bodies are still owed.
func (l *Lexer) PendingHeredocs() int { return len(l.pending) }

// Checkpoint returns the current cursor state. Only neutral positions (no
// pending heredocs) produce checkpoints that are safe to resume from.
func (l *Lexer) Checkpoint() Checkpoint {
	return Checkpoint{Pos: l.Position(), Mode: l.mode}
}

// TakeHeredocBodies drains bodies consumed since the last call, in the order
// their start tokens appeared.
func (l *Lexer) TakeHeredocBodies() []HeredocBodyRec {
	if len(l.bodies) == 0 {
		return nil
	}
	out := l.bodies
	l.bodies = nil
	return out
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
		l.atLineStart = true
	} else {
		l.column++
		l.atLineStart = false
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// skipToEOF consumes the rest of the input byte-wise so that line and
// column bookkeeping stays accurate. Used when a size budget runs out.
func (l *Lexer) skipToEOF() {
	for l.pos < len(l.input) {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	// Heredoc bodies own the lines following their start line. They must be
	// consumed before anything on those lines is lexed as code.
	if l.atLineStart && len(l.pending) > 0 && l.pos < len(l.input) {
		l.consumeHeredocBodies()
	}

	startPos := l.Position()

	if l.pos >= len(l.input) {
		if len(l.pending) > 0 {
			// Start line never ended; the owed bodies are empty and
			// unterminated.
			for _, spec := range l.pending {
				l.bodies = append(l.bodies, HeredocBodyRec{
					Label:        spec.label,
					Span:         Span{Start: startPos, End: startPos},
					Unterminated: true,
				})
			}
			l.pending = nil
		}
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if ch == '#' {
		return l.scanComment(startPos)
	}

	if ch == '=' && l.atLineStart && isIdentStart(l.peekN(1)) {
		return l.scanPod(startPos)
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos, false)
	}

	switch ch {
	case '$', '@':
		return l.scanVariable(startPos)
	case '%', '*', '&':
		if l.mode == ModeExpectTerm && l.looksLikeSigil() {
			return l.scanVariable(startPos)
		}
	case '"':
		return l.scanDelimitedString(startPos, TokenString, '"', true)
	case '\'':
		return l.scanDelimitedString(startPos, TokenString, '\'', false)
	case '`':
		return l.scanDelimitedString(startPos, TokenBacktick, '`', true)
	case '/':
		if l.mode == ModeExpectTerm {
			return l.scanRegexLiteral(startPos)
		}
	case '<':
		if l.mode == ModeExpectTerm {
			if tok, ok := l.scanHeredocStart(startPos); ok {
				return tok
			}
			if tok, ok := l.scanReadline(startPos); ok {
				return tok
			}
		}
	}

	if ch >= 0x80 {
		return l.scanInvalidByte(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
			continue
		}
		if ch == '\n' {
			l.advance()
			// Bodies begin on the line after the heredoc start line.
			if len(l.pending) > 0 {
				break
			}
			continue
		}
		break
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanComment(start Position) Token {
	for l.peek() != 0 && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenComment, start)
}

// scanPod consumes a POD block from a line-leading '=word' through the line
// after '=cut' (or end of input).
func (l *Lexer) scanPod(start Position) Token {
	for l.pos < len(l.input) {
		lineOK := l.atLineStart &&
			l.peek() == '=' && l.peekN(1) == 'c' && l.peekN(2) == 'u' && l.peekN(3) == 't' &&
			(l.peekN(4) == 0 || l.peekN(4) == '\n' || l.peekN(4) == '\r' || l.peekN(4) == ' ' || l.peekN(4) == '\t')
		if lineOK && start.Offset != l.pos {
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
			if l.peek() == '\n' {
				l.advance()
			}
			return l.token(TokenPod, start)
		}
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
		if l.peek() == '\n' {
			l.advance()
		}
	}
	tok := l.token(TokenPod, start)
	tok.Unterminated = true
	return tok
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	// s'...' and y'...' and tr'...' hide the quote inside what looks like an
	// identifier; detect the operators before consuming the quote.
	if l.peek() == 's' && l.peekN(1) == '\'' {
		l.advance()
		return l.scanSubstitution(start)
	}
	if l.peek() == 'y' && l.peekN(1) == '\'' {
		l.advance()
		return l.scanTransliteration(start)
	}
	if l.peek() == 't' && l.peekN(1) == 'r' && l.peekN(2) == '\'' {
		l.advanceN(2)
		return l.scanTransliteration(start)
	}

	for isIdentPart(l.peek()) {
		l.advance()
	}
	// Package-qualified names: Foo::Bar::baz
	for l.peek() == ':' && l.peekN(1) == ':' && isIdentStart(l.peekN(2)) {
		l.advanceN(2)
		for isIdentPart(l.peek()) {
			l.advance()
		}
	}

	literal := string(l.input[start.Offset:l.pos])

	if (literal == "__END__" || literal == "__DATA__") && start.Column == 1 && l.restOfLineBlank() {
		return l.scanDataSection(start)
	}

	if tok, ok := l.tryQuoteLike(literal, start); ok {
		return tok
	}

	kind := LookupKeyword(literal)
	switch kind {
	case TokenIdent:
		if isListOperator(literal) {
			// List operators take a term next: `split / /, $s` lexes the
			// slash as a regex.
			l.mode = ModeExpectTerm
		} else {
			l.mode = ModeExpectOperator
		}
	case TokenRepeat, TokenStrEq, TokenStrNe, TokenStrLt, TokenStrGt, TokenStrLe, TokenStrGe, TokenStrCmp:
		if l.mode != ModeExpectOperator {
			// Not in operator position: `x` and friends are ordinary
			// identifiers there (e.g. hash key `x => 1`).
			kind = TokenIdent
			l.mode = ModeExpectOperator
		} else {
			l.mode = ModeExpectTerm
		}
	default:
		// Keywords leave the cursor expecting a term.
		l.mode = ModeExpectTerm
	}

	end := l.Position()
	return Token{Kind: kind, Span: Span{Start: start, End: end}, Literal: literal}
}

func (l *Lexer) restOfLineBlank() bool {
	for i := l.pos; i < len(l.input); i++ {
		switch l.input[i] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func (l *Lexer) scanDataSection(start Position) Token {
	for l.pos < len(l.input) {
		l.advance()
	}
	l.inData = true
	return l.token(TokenData, start)
}

func (l *Lexer) scanNumber(start Position, leadingDot bool) Token {
	if !leadingDot && l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.mode = ModeExpectOperator
		return l.token(TokenNumber, start)
	}
	if !leadingDot && l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		l.mode = ModeExpectOperator
		return l.token(TokenNumber, start)
	}

	if leadingDot {
		l.advance() // the '.'
	}
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	dots := 0
	if leadingDot {
		dots = 1
	}
	if dots == 0 && l.peek() == '.' && isDigit(l.peekN(1)) {
		dots++
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	// A second dotted run makes this a version string: 5.10.1
	if l.peek() == '.' && isDigit(l.peekN(1)) {
		for l.peek() == '.' && isDigit(l.peekN(1)) {
			l.advance()
			for isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
		l.mode = ModeExpectOperator
		return l.token(TokenVersionString, start)
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		if isDigit(l.peek()) {
			for isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		} else {
			l.rewindTo(save, start)
		}
	}

	l.mode = ModeExpectOperator
	return l.token(TokenNumber, start)
}

// rewindTo moves the cursor back to an earlier offset on the same line.
func (l *Lexer) rewindTo(offset int, lineStart Position) {
	l.pos = offset
	l.line = lineStart.Line
	l.column = lineStart.Column + (offset - lineStart.Offset)
}

func (l *Lexer) looksLikeSigil() bool {
	next := l.peekN(1)
	switch l.peek() {
	case '%', '*':
		return isIdentStart(next) || next == '{' || next == '$' || next == '^'
	case '&':
		return isIdentStart(next) || next == '{' || next == '$'
	}
	return false
}

func (l *Lexer) scanVariable(start Position) Token {
	sigil := l.advance()

	// $#array is the last-index form.
	if sigil == '$' && l.peek() == '#' && (isIdentStart(l.peekN(1)) || l.peekN(1) == '{' || l.peekN(1) == '$') {
		l.advance()
	}

	// Dereference chains: $$x, @$x, $$$x...
	for l.peek() == '$' && (isIdentStart(l.peekN(1)) || l.peekN(1) == '$') {
		l.advance()
	}

	switch {
	case l.peek() == '{':
		// ${name} or ${^SPECIAL}; balanced to the closing brace.
		depth := 0
		for l.pos < len(l.input) {
			ch := l.advance()
			if ch == '{' {
				depth++
			} else if ch == '}' {
				depth--
				if depth == 0 {
					break
				}
			} else if ch == '\n' {
				break
			}
		}
	case isIdentStart(l.peek()):
		for isIdentPart(l.peek()) {
			l.advance()
		}
		for l.peek() == ':' && l.peekN(1) == ':' && isIdentStart(l.peekN(2)) {
			l.advanceN(2)
			for isIdentPart(l.peek()) {
				l.advance()
			}
		}
	case isDigit(l.peek()):
		for isDigit(l.peek()) {
			l.advance()
		}
	case sigil == '$' && isSpecialVarChar(l.peek()):
		if l.peek() == '^' && l.peekN(1) >= 'A' && l.peekN(1) <= 'Z' {
			l.advance()
		}
		l.advance()
	case sigil == '@' && l.peek() == '_':
		l.advance()
	default:
		if l.pos == start.Offset+1 {
			// A lone sigil is not a variable; the parser reports it.
			tok := l.token(TokenError, start)
			l.mode = ModeExpectTerm
			return tok
		}
	}

	l.mode = ModeExpectOperator
	return l.token(TokenVariable, start)
}

func (l *Lexer) scanReadline(start Position) (Token, bool) {
	// <FH>, <$fh>, <>, <STDIN>; never spans a line.
	i := l.pos + 1
	if i < len(l.input) && l.input[i] == '$' {
		i++
	}
	for i < len(l.input) && isIdentPart(l.input[i]) {
		i++
	}
	if i >= len(l.input) || l.input[i] != '>' {
		return Token{}, false
	}
	l.advanceN(i + 1 - l.pos)
	l.mode = ModeExpectOperator
	return l.token(TokenReadline, start), true
}

func (l *Lexer) scanInvalidByte(start Position) Token {
	// Invalid or non-ASCII byte outside a literal: emit one marked token and
	// keep going; the stream never aborts.
	l.advance()
	tok := l.token(TokenError, start)
	return tok
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenLParen, start)
	case ')':
		l.advance()
		l.mode = ModeExpectOperator
		return l.token(TokenRParen, start)
	case '{':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenLBrace, start)
	case '}':
		l.advance()
		l.mode = ModeExpectOperator
		return l.token(TokenRBrace, start)
	case '[':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenLBracket, start)
	case ']':
		l.advance()
		l.mode = ModeExpectOperator
		return l.token(TokenRBracket, start)
	case ';':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenSemicolon, start)
	case ',':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenComma, start)
	case '?':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenQuestion, start)
	case ':':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenColon, start)
	case '\\':
		l.advance()
		l.mode = ModeExpectTerm
		return l.token(TokenBackslash, start)

	case '.':
		if isDigit(l.peekN(1)) && l.mode == ModeExpectTerm {
			return l.scanNumber(start, true)
		}
		if l.peekN(1) == '.' {
			if l.peekN(2) == '.' {
				l.advanceN(3)
				return l.opToken(TokenDotDotDot, start)
			}
			l.advanceN(2)
			return l.opToken(TokenDotDot, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenDotAssign, start)
		}
		l.advance()
		return l.opToken(TokenDot, start)

	case '=':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenEQ, start)
		}
		if l.peekN(1) == '~' {
			l.advanceN(2)
			return l.opToken(TokenMatchBind, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.opToken(TokenFatArrow, start)
		}
		l.advance()
		return l.opToken(TokenAssign, start)

	case '!':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenNE, start)
		}
		if l.peekN(1) == '~' {
			l.advanceN(2)
			return l.opToken(TokenNotMatchBind, start)
		}
		l.advance()
		return l.opToken(TokenNot, start)

	case '<':
		if l.peekN(1) == '=' {
			if l.peekN(2) == '>' {
				l.advanceN(3)
				return l.opToken(TokenCompare, start)
			}
			l.advanceN(2)
			return l.opToken(TokenLE, start)
		}
		if l.peekN(1) == '<' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.opToken(TokenShlAssign, start)
			}
			l.advanceN(2)
			return l.opToken(TokenShl, start)
		}
		l.advance()
		return l.opToken(TokenLT, start)

	case '>':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenGE, start)
		}
		if l.peekN(1) == '>' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.opToken(TokenShrAssign, start)
			}
			l.advanceN(2)
			return l.opToken(TokenShr, start)
		}
		l.advance()
		return l.opToken(TokenGT, start)

	case '&':
		if l.peekN(1) == '&' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.opToken(TokenAndAndAssign, start)
			}
			l.advanceN(2)
			return l.opToken(TokenAnd, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenAndAssign, start)
		}
		l.advance()
		return l.opToken(TokenBitAnd, start)

	case '|':
		if l.peekN(1) == '|' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.opToken(TokenOrOrAssign, start)
			}
			l.advanceN(2)
			return l.opToken(TokenOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenOrAssign, start)
		}
		l.advance()
		return l.opToken(TokenBitOr, start)

	case '^':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenXorAssign, start)
		}
		l.advance()
		return l.opToken(TokenBitXor, start)

	case '+':
		if l.peekN(1) == '+' {
			l.advanceN(2)
			return l.postfixToken(TokenIncrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenPlusAssign, start)
		}
		l.advance()
		return l.opToken(TokenPlus, start)

	case '-':
		if l.peekN(1) == '-' {
			l.advanceN(2)
			return l.postfixToken(TokenDecrement, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenMinusAssign, start)
		}
		if l.peekN(1) == '>' {
			l.advanceN(2)
			return l.opToken(TokenArrow, start)
		}
		l.advance()
		return l.opToken(TokenMinus, start)

	case '*':
		if l.peekN(1) == '*' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.opToken(TokenPowAssign, start)
			}
			l.advanceN(2)
			return l.opToken(TokenPow, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenStarAssign, start)
		}
		l.advance()
		return l.opToken(TokenStar, start)

	case '/':
		// Division side of the slash; the regex side is dispatched in
		// NextToken before we get here.
		if l.peekN(1) == '/' {
			if l.peekN(2) == '=' {
				l.advanceN(3)
				return l.opToken(TokenDefinedOrAssign, start)
			}
			l.advanceN(2)
			return l.opToken(TokenDefinedOr, start)
		}
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenSlashAssign, start)
		}
		l.advance()
		return l.opToken(TokenSlash, start)

	case '%':
		if l.peekN(1) == '=' {
			l.advanceN(2)
			return l.opToken(TokenPercentAssign, start)
		}
		l.advance()
		return l.opToken(TokenPercent, start)

	case '~':
		l.advance()
		return l.opToken(TokenBitNot, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

// opToken finishes a binary/unary operator: a term must follow.
func (l *Lexer) opToken(kind TokenKind, start Position) Token {
	l.mode = ModeExpectTerm
	return l.token(kind, start)
}

// postfixToken finishes ++/--. After a term they are postfix and the
// expression stays complete: `$x++ / 2` divides.
func (l *Lexer) postfixToken(kind TokenKind, start Position) Token {
	if l.mode != ModeExpectOperator {
		l.mode = ModeExpectTerm
	}
	return l.token(kind, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isSpecialVarChar(ch byte) bool {
	switch ch {
	case '_', '!', '@', '&', '`', '\'', '+', '.', '/', '\\', ',', ';', '^',
		'%', '=', '~', '|', '?', '<', '>', '(', ')', '[', ']', ':', '-', '"', '$', '0':
		return true
	}
	return false
}

// listOperators are named builtins that take a list (or pattern) argument,
// so a following slash begins a regex rather than division.
var listOperators = map[string]bool{
	"print": true, "say": true, "push": true, "pop": true, "shift": true,
	"unshift": true, "splice": true, "split": true, "join": true, "grep": true,
	"map": true, "sort": true, "reverse": true, "keys": true, "values": true,
	"each": true, "die": true, "warn": true, "defined": true, "ref": true,
	"scalar": true, "wantarray": true, "exists": true, "delete": true,
	"open": true, "close": true, "chomp": true, "chop": true, "chdir": true,
	"uc": true, "lc": true, "ucfirst": true, "lcfirst": true, "length": true,
	"bless": true, "undef": true,
}

func isListOperator(ident string) bool {
	return listOperators[ident]
}
