package parser

// Parser turns a byte buffer into a syntax tree. It pre-tokenizes the whole
// input, filtering trivia, then runs a recursive-descent pass over the token
// slice. Parsing never fails: malformed regions become error nodes and the
// root always spans the full input.
type Parser struct {
	file     string
	input    []byte
	tokens   []Token
	comments []Token
	pos      int
	depth    int
	diags    []Diagnostic
}

// Nesting bound. Past this depth the parser reports an error instead of
// recursing further; recovery then skips to the next statement boundary.
const maxParseDepth = 500

// Parse builds a tree for the whole buffer.
func Parse(input []byte, file string) *Result {
	p := newParser(input, file)
	root := p.parseProgram()
	sortDiagnostics(p.diags)
	return &Result{Root: root, Diagnostics: p.diags, input: input, file: file}
}

func newParser(input []byte, file string) *Parser {
	p := &Parser{file: file, input: input}
	p.tokenize(NewLexer(input, file))
	return p
}

// tokenize drains the lexer. Heredoc bodies arrive after the rest of their
// logical line; they are matched FIFO to the start markers already emitted.
func (p *Parser) tokenize(lex *Lexer) {
	var awaiting []int
	for {
		tok := lex.NextToken()
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
		for _, body := range lex.TakeHeredocBodies() {
			if len(awaiting) == 0 {
				break
			}
			idx := awaiting[0]
			awaiting = awaiting[1:]
			info := p.tokens[idx].Heredoc
			info.Body = body.Body
			info.BodySpan = body.Span
			if body.Unterminated {
				p.tokens[idx].Unterminated = true
				p.addDiag(SeverityError, "unterminated heredoc \""+info.Label+"\"", p.tokens[idx].Span,
					"add a line containing only "+info.Label)
			}
		}
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) noteLexDiagnostic(tok Token) {
	if tok.Kind == TokenError {
		p.addDiag(SeverityError, "unrecognized input "+quoteSnippet(tok.Literal), tok.Span, "")
		return
	}
	if !tok.Unterminated {
		return
	}
	switch tok.Kind {
	case TokenString, TokenBacktick, TokenQuoteWords:
		p.addDiag(SeverityError, "unterminated string", tok.Span, "add the closing delimiter")
	case TokenMatch, TokenQuoteRegex:
		p.addDiag(SeverityError, "unterminated regex", tok.Span, "add the closing delimiter")
	case TokenSubstitution, TokenTransliteration:
		p.addDiag(SeverityError, "unterminated replacement", tok.Span, "add the closing delimiter")
	case TokenReadline:
		p.addDiag(SeverityError, "unterminated readline", tok.Span, "add '>'")
	}
}

func quoteSnippet(s string) string {
	const max = 12
	if len(s) > max {
		s = s[:max] + "..."
	}
	return "\"" + s + "\""
}

func (p *Parser) addDiag(sev Severity, msg string, span Span, fix string) {
	p.diags = append(p.diags, Diagnostic{Severity: sev, Message: msg, Span: span, Fix: fix})
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start, End: p.peek().Span.Start},
	}
}

func (p *Parser) tokenNode(kind NodeKind, tok Token) *Node {
	t := tok
	span := t.Span
	if t.Heredoc != nil && t.Heredoc.BodySpan.End.Offset > span.End.Offset {
		span.End = t.Heredoc.BodySpan.End
	}
	return &Node{Kind: kind, Span: span, Token: &t}
}

// finishNode closes the span at the last consumed token, then widens it to
// cover any child that reaches further. Heredoc bodies make children extend
// past their statement's final token.
func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		end := p.tokens[p.pos-1].Span.End
		if end.Offset > n.Span.End.Offset {
			n.Span.End = end
		}
	}
	for _, child := range n.Children {
		if child.Span.End.Offset > n.Span.End.Offset {
			n.Span.End = child.Span.End
		}
	}
	return n
}

func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &ParseError{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.addDiag(SeverityError, msg, node.Span, "")
	p.recoverTo(recoverTo)
	if p.pos > 0 && p.tokens[p.pos-1].Span.End.Offset > node.Span.End.Offset {
		node.Span.End = p.tokens[p.pos-1].Span.End
	}
	return node
}

// recoverTo advances until one of the sync kinds is next. It always moves
// forward at least one token unless already at EOF.
func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) {
		for _, kind := range kinds {
			if p.check(kind) {
				return
			}
		}
		p.advance()
	}
}

var statementSync = []TokenKind{TokenSemicolon, TokenRBrace}

func (p *Parser) parseProgram() *Node {
	node := p.startNode(KindProgram)
	for !p.check(TokenEOF) {
		progressed := p.mustProgress()
		if p.check(TokenData) {
			node.AddChild(p.tokenNode(KindDataSection, p.advance()))
			break
		}
		node.AddChild(p.parseStatement())
		if !progressed() {
			break
		}
	}
	p.finishNode(node)
	// The root covers the entire buffer regardless of where the last
	// statement ended; the EOF token carries the true end position.
	node.Span.Start = Position{File: p.file, Offset: 0, Line: 1, Column: 1}
	if len(p.tokens) > 0 {
		eof := p.tokens[len(p.tokens)-1].Span.End
		if eof.Offset > node.Span.End.Offset {
			node.Span.End = eof
		}
	}
	return node
}

func (p *Parser) parseStatement() *Node {
	if p.depth >= maxParseDepth {
		return p.errorNode("nesting too deep", statementSync)
	}
	p.depth++
	defer func() { p.depth-- }()

	switch p.peek().Kind {
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case TokenLBrace:
		return p.parseBlock()
	case TokenPackage:
		return p.parsePackageDecl()
	case TokenUse, TokenNo:
		return p.parseUseDecl()
	case TokenRequire:
		return p.parseRequireDecl()
	case TokenSub:
		if p.peekN(1).Kind == TokenIdent {
			return p.parseSubDecl()
		}
	case TokenMy, TokenOur, TokenLocal:
		return p.parseVarDecl()
	case TokenIf, TokenUnless:
		return p.parseConditional()
	case TokenWhile, TokenUntil:
		return p.parseWhileLoop()
	case TokenFor, TokenForeach:
		return p.parseForLoop()
	case TokenReturn:
		return p.parseReturn()
	case TokenLast, TokenNext, TokenRedo:
		return p.parseLoopControl()
	case TokenPhase:
		return p.parsePhaseBlock()
	case TokenIdent:
		// LABEL: before a loop or block
		if p.peekN(1).Kind == TokenColon {
			switch p.peekN(2).Kind {
			case TokenWhile, TokenUntil, TokenFor, TokenForeach, TokenLBrace:
				return p.parseLabeledStatement()
			}
		}
	}
	return p.parseExprStatement()
}

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		node.AddChild(p.errorNode("expected '{'", statementSync, TokenLBrace))
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progressed := p.mustProgress()
		node.AddChild(p.parseStatement())
		if !progressed() {
			break
		}
	}
	if p.expect(TokenRBrace) == nil {
		node.AddChild(p.errorNode("expected '}'", nil, TokenRBrace))
	}
	return p.finishNode(node)
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	p.advance()
	if name := p.expect(TokenIdent); name != nil {
		node.AddChild(p.tokenNode(KindIdentifier, *name))
	} else {
		node.AddChild(p.errorNode("expected package name", statementSync, TokenIdent))
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}
	if p.match(TokenVersionString, TokenNumber) {
		node.AddChild(p.tokenNode(KindVersionLiteral, p.advance()))
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		p.expectSemicolon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseUseDecl() *Node {
	kind := KindUseDecl
	if p.check(TokenNo) {
		kind = KindNoDecl
	}
	node := p.startNode(kind)
	p.advance()
	switch {
	case p.check(TokenIdent):
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	case p.match(TokenVersionString, TokenNumber):
		node.AddChild(p.tokenNode(KindVersionLiteral, p.advance()))
	default:
		node.AddChild(p.errorNode("expected module name or version", statementSync, TokenIdent, TokenVersionString))
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}
	if !p.match(TokenSemicolon, TokenRBrace, TokenEOF) {
		node.AddChild(p.parseExpression())
	}
	p.expectSemicolon(node)
	return p.finishNode(node)
}

func (p *Parser) parseRequireDecl() *Node {
	node := p.startNode(KindRequireDecl)
	p.advance()
	switch {
	case p.check(TokenIdent):
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	case p.match(TokenVersionString, TokenNumber):
		node.AddChild(p.tokenNode(KindVersionLiteral, p.advance()))
	case p.match(TokenSemicolon, TokenRBrace, TokenEOF):
		node.AddChild(p.errorNode("expected module name, version or expression", statementSync))
	default:
		node.AddChild(p.parseExpression())
	}
	p.expectSemicolon(node)
	return p.finishNode(node)
}

func (p *Parser) parseSubDecl() *Node {
	node := p.startNode(KindSubDecl)
	p.advance()
	if name := p.expect(TokenIdent); name != nil {
		node.AddChild(p.tokenNode(KindIdentifier, *name))
	} else {
		node.AddChild(p.errorNode("expected subroutine name", []TokenKind{TokenLBrace, TokenSemicolon, TokenRBrace}, TokenIdent))
	}
	// Prototype or signature
	if p.check(TokenLParen) {
		node.AddChild(p.parseParenExpr())
	}
	p.parseAttributes(node)
	switch {
	case p.check(TokenLBrace):
		node.AddChild(p.parseBlock())
	case p.check(TokenSemicolon):
		p.advance()
	default:
		node.AddChild(p.errorNode("expected subroutine body or ';'", statementSync, TokenLBrace, TokenSemicolon))
		p.expect(TokenSemicolon)
	}
	return p.finishNode(node)
}

// parseAttributes consumes ":attr" and ":attr(arg)" after a sub or variable
// declaration. Attributes are recorded as identifier children.
func (p *Parser) parseAttributes(node *Node) {
	for p.check(TokenColon) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
		if p.check(TokenLParen) {
			node.AddChild(p.parseParenExpr())
		}
	}
}

func (p *Parser) parseVarDecl() *Node {
	node := p.startNode(KindVarDecl)
	keyword := p.advance()
	node.Token = &keyword
	switch {
	case p.check(TokenVariable):
		node.AddChild(p.tokenNode(KindVariable, p.advance()))
	case p.check(TokenLParen):
		node.AddChild(p.parseParenExpr())
	default:
		node.AddChild(p.errorNode("expected variable after '"+keyword.Literal+"'", statementSync, TokenVariable, TokenLParen))
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}
	p.parseAttributes(node)
	if p.check(TokenAssign) {
		p.advance()
		if p.match(TokenSemicolon, TokenRBrace, TokenEOF) {
			node.AddChild(p.errorNode("expected expression after '='", statementSync))
		} else {
			node.AddChild(p.parseExpression())
		}
	}
	return p.finishStatement(node)
}

func (p *Parser) parseConditional() *Node {
	node := p.startNode(KindConditional)
	keyword := p.advance()
	node.Token = &keyword
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseBlockOrError())
	for p.check(TokenElsif) {
		clause := p.startNode(KindConditional)
		tok := p.advance()
		clause.Token = &tok
		clause.AddChild(p.parseCondition())
		clause.AddChild(p.parseBlockOrError())
		node.AddChild(p.finishNode(clause))
	}
	if p.check(TokenElse) {
		p.advance()
		node.AddChild(p.parseBlockOrError())
	}
	return p.finishNode(node)
}

func (p *Parser) parseCondition() *Node {
	node := p.startNode(KindParenExpr)
	if p.expect(TokenLParen) == nil {
		node.AddChild(p.errorNode("expected '(' before condition", []TokenKind{TokenLBrace, TokenSemicolon, TokenRBrace}, TokenLParen))
		return p.finishNode(node)
	}
	if p.check(TokenRParen) {
		node.AddChild(p.errorNode("expected condition", []TokenKind{TokenRParen}))
	} else {
		node.AddChild(p.parseExpression())
	}
	if p.expect(TokenRParen) == nil {
		node.AddChild(p.errorNode("expected ')'", []TokenKind{TokenLBrace, TokenSemicolon, TokenRBrace}, TokenRParen))
	}
	return p.finishNode(node)
}

func (p *Parser) parseBlockOrError() *Node {
	if p.check(TokenLBrace) {
		return p.parseBlock()
	}
	return p.errorNode("expected block", statementSync, TokenLBrace)
}

func (p *Parser) parseWhileLoop() *Node {
	node := p.startNode(KindLoop)
	keyword := p.advance()
	node.Token = &keyword
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseBlockOrError())
	return p.finishNode(node)
}

// parseForLoop distinguishes C-style for from list foreach by scanning
// ahead for a ';' at parenthesis depth one.
func (p *Parser) parseForLoop() *Node {
	keyword := p.peek()
	if p.isCStyleFor() {
		return p.parseCStyleFor()
	}
	node := p.startNode(KindForeach)
	p.advance()
	node.Token = &keyword
	if p.match(TokenMy, TokenOur, TokenLocal) {
		decl := p.startNode(KindVarDecl)
		kw := p.advance()
		decl.Token = &kw
		if p.check(TokenVariable) {
			decl.AddChild(p.tokenNode(KindVariable, p.advance()))
		} else {
			decl.AddChild(p.errorNode("expected loop variable", []TokenKind{TokenLParen, TokenLBrace}, TokenVariable))
		}
		node.AddChild(p.finishNode(decl))
	} else if p.check(TokenVariable) {
		node.AddChild(p.tokenNode(KindVariable, p.advance()))
	}
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseBlockOrError())
	return p.finishNode(node)
}

func (p *Parser) isCStyleFor() bool {
	if p.peekN(1).Kind != TokenLParen {
		return false
	}
	depth := 0
	for i := 1; ; i++ {
		switch p.peekN(i).Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
			if depth == 0 {
				return false
			}
		case TokenSemicolon:
			if depth == 1 {
				return true
			}
		case TokenEOF, TokenLBrace:
			return false
		}
	}
}

func (p *Parser) parseCStyleFor() *Node {
	node := p.startNode(KindForC)
	keyword := p.advance()
	node.Token = &keyword
	p.expect(TokenLParen)
	for i := 0; i < 3; i++ {
		clause := p.startNode(KindExprStmt)
		if !p.match(TokenSemicolon, TokenRParen) {
			if p.match(TokenMy, TokenOur, TokenLocal) {
				clause.AddChild(p.parseVarDeclClause())
			} else {
				clause.AddChild(p.parseExpression())
			}
		}
		node.AddChild(p.finishNode(clause))
		if i < 2 && p.expect(TokenSemicolon) == nil {
			node.AddChild(p.errorNode("expected ';' in for clauses", []TokenKind{TokenSemicolon, TokenRParen, TokenLBrace}, TokenSemicolon))
			p.expect(TokenSemicolon)
		}
	}
	if p.expect(TokenRParen) == nil {
		node.AddChild(p.errorNode("expected ')'", []TokenKind{TokenLBrace, TokenSemicolon, TokenRBrace}, TokenRParen))
	}
	node.AddChild(p.parseBlockOrError())
	return p.finishNode(node)
}

// parseVarDeclClause is a declaration without the trailing ';', used inside
// C-style for headers.
func (p *Parser) parseVarDeclClause() *Node {
	node := p.startNode(KindVarDecl)
	keyword := p.advance()
	node.Token = &keyword
	if p.check(TokenVariable) {
		node.AddChild(p.tokenNode(KindVariable, p.advance()))
	} else if p.check(TokenLParen) {
		node.AddChild(p.parseParenExpr())
	}
	if p.check(TokenAssign) {
		p.advance()
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseReturn() *Node {
	node := p.startNode(KindReturnStmt)
	p.advance()
	if !p.match(TokenSemicolon, TokenRBrace, TokenEOF, TokenIf, TokenUnless, TokenWhile, TokenUntil, TokenFor, TokenForeach) {
		node.AddChild(p.parseExpression())
	}
	return p.finishStatement(node)
}

func (p *Parser) parseLoopControl() *Node {
	node := p.startNode(KindLoopControl)
	keyword := p.advance()
	node.Token = &keyword
	if p.check(TokenIdent) {
		node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	}
	return p.finishStatement(node)
}

func (p *Parser) parsePhaseBlock() *Node {
	node := p.startNode(KindPhaseBlock)
	keyword := p.advance()
	node.Token = &keyword
	node.AddChild(p.parseBlockOrError())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseLabeledStatement() *Node {
	node := p.startNode(KindExprStmt)
	node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
	p.advance() // ':'
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseExprStatement() *Node {
	node := p.startNode(KindExprStmt)
	node.AddChild(p.parseExpression())
	return p.finishStatement(node)
}

// finishStatement attaches trailing statement modifiers ("EXPR if COND")
// and the terminating semicolon, then closes the node.
func (p *Parser) finishStatement(node *Node) *Node {
	for p.match(TokenIf, TokenUnless, TokenWhile, TokenUntil, TokenFor, TokenForeach) {
		mod := p.startNode(KindStatementModifier)
		keyword := p.advance()
		mod.Token = &keyword
		if p.match(TokenSemicolon, TokenRBrace, TokenEOF) {
			mod.AddChild(p.errorNode("expected expression after '"+keyword.Literal+"'", statementSync))
		} else {
			mod.AddChild(p.parseExpression())
		}
		node.AddChild(p.finishNode(mod))
	}
	p.expectSemicolon(node)
	return p.finishNode(node)
}

// expectSemicolon consumes ';', tolerating its absence before '}' and EOF.
func (p *Parser) expectSemicolon(node *Node) {
	if p.expect(TokenSemicolon) != nil {
		return
	}
	if p.match(TokenRBrace, TokenEOF, TokenData) {
		return
	}
	node.AddChild(p.errorNode("expected ';'", statementSync, TokenSemicolon))
	p.expect(TokenSemicolon)
}
