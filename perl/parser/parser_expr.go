package parser

// Binding levels, loosest first. Arrow, subscripts and postfix ++/-- bind
// tighter than everything here and are handled in the postfix chain.
const (
	precLowest         = iota + 1 // or xor
	precAnd                       // and
	precNot                       // not
	precComma                     // , =>
	precAssign                    // = += ||= ...
	precTernary                   // ?:
	precRange                     // .. ...
	precOrOr                      // || //
	precAndAnd                    // &&
	precBitOr                     // | ^
	precBitAnd                    // &
	precEquality                  // == != <=> eq ne cmp
	precRelational                // < > <= >= lt gt le ge
	precShift                     // << >>
	precAdditive                  // + - .
	precMultiplicative            // * / % x
	precMatchBind                 // =~ !~
	precPow                       // **
)

type opInfo struct {
	prec       int
	rightAssoc bool
	kind       NodeKind
}

var binaryOps = map[TokenKind]opInfo{
	TokenWordOr:  {precLowest, false, KindBinaryExpr},
	TokenWordXor: {precLowest, false, KindBinaryExpr},
	TokenWordAnd: {precAnd, false, KindBinaryExpr},

	TokenAssign:          {precAssign, true, KindAssignExpr},
	TokenPlusAssign:      {precAssign, true, KindAssignExpr},
	TokenMinusAssign:     {precAssign, true, KindAssignExpr},
	TokenStarAssign:      {precAssign, true, KindAssignExpr},
	TokenSlashAssign:     {precAssign, true, KindAssignExpr},
	TokenPercentAssign:   {precAssign, true, KindAssignExpr},
	TokenDotAssign:       {precAssign, true, KindAssignExpr},
	TokenPowAssign:       {precAssign, true, KindAssignExpr},
	TokenRepeatAssign:    {precAssign, true, KindAssignExpr},
	TokenAndAndAssign:    {precAssign, true, KindAssignExpr},
	TokenOrOrAssign:      {precAssign, true, KindAssignExpr},
	TokenDefinedOrAssign: {precAssign, true, KindAssignExpr},
	TokenShlAssign:       {precAssign, true, KindAssignExpr},
	TokenShrAssign:       {precAssign, true, KindAssignExpr},
	TokenAndAssign:       {precAssign, true, KindAssignExpr},
	TokenOrAssign:        {precAssign, true, KindAssignExpr},
	TokenXorAssign:       {precAssign, true, KindAssignExpr},

	TokenDotDot:    {precRange, false, KindRangeExpr},
	TokenDotDotDot: {precRange, false, KindRangeExpr},

	TokenOr:        {precOrOr, false, KindBinaryExpr},
	TokenDefinedOr: {precOrOr, false, KindBinaryExpr},
	TokenAnd:       {precAndAnd, false, KindBinaryExpr},

	TokenBitOr:  {precBitOr, false, KindBinaryExpr},
	TokenBitXor: {precBitOr, false, KindBinaryExpr},
	TokenBitAnd: {precBitAnd, false, KindBinaryExpr},

	TokenEQ:      {precEquality, false, KindBinaryExpr},
	TokenNE:      {precEquality, false, KindBinaryExpr},
	TokenCompare: {precEquality, false, KindBinaryExpr},
	TokenStrEq:   {precEquality, false, KindBinaryExpr},
	TokenStrNe:   {precEquality, false, KindBinaryExpr},
	TokenStrCmp:  {precEquality, false, KindBinaryExpr},

	TokenLT:    {precRelational, false, KindBinaryExpr},
	TokenGT:    {precRelational, false, KindBinaryExpr},
	TokenLE:    {precRelational, false, KindBinaryExpr},
	TokenGE:    {precRelational, false, KindBinaryExpr},
	TokenStrLt: {precRelational, false, KindBinaryExpr},
	TokenStrGt: {precRelational, false, KindBinaryExpr},
	TokenStrLe: {precRelational, false, KindBinaryExpr},
	TokenStrGe: {precRelational, false, KindBinaryExpr},

	TokenShl: {precShift, false, KindBinaryExpr},
	TokenShr: {precShift, false, KindBinaryExpr},

	TokenPlus:  {precAdditive, false, KindBinaryExpr},
	TokenMinus: {precAdditive, false, KindBinaryExpr},
	TokenDot:   {precAdditive, false, KindBinaryExpr},

	TokenStar:    {precMultiplicative, false, KindBinaryExpr},
	TokenSlash:   {precMultiplicative, false, KindBinaryExpr},
	TokenPercent: {precMultiplicative, false, KindBinaryExpr},
	TokenRepeat:  {precMultiplicative, false, KindBinaryExpr},

	TokenMatchBind:    {precMatchBind, false, KindMatchBind},
	TokenNotMatchBind: {precMatchBind, false, KindMatchBind},

	TokenPow: {precPow, true, KindBinaryExpr},
}

func (p *Parser) parseExpression() *Node {
	return p.parseExprPrec(precLowest)
}

func (p *Parser) parseExprPrec(minPrec int) *Node {
	if p.depth >= maxParseDepth {
		return p.errorNode("nesting too deep", statementSync)
	}
	p.depth++
	defer func() { p.depth-- }()

	if p.check(TokenWordNot) && minPrec <= precNot {
		tok := p.advance()
		node := &Node{Kind: KindUnaryExpr, Span: Span{Start: tok.Span.Start, End: tok.Span.End}, Token: &tok}
		node.AddChild(p.parseExprPrec(precNot))
		return p.climb(p.finishNode(node), minPrec)
	}
	return p.climb(p.parseUnary(), minPrec)
}

func (p *Parser) climb(left *Node, minPrec int) *Node {
	for {
		tok := p.peek()
		if tok.Kind == TokenQuestion && minPrec <= precTernary {
			left = p.parseTernary(left)
			continue
		}
		if (tok.Kind == TokenComma || tok.Kind == TokenFatArrow) && minPrec <= precComma {
			left = p.parseListTail(left)
			continue
		}
		info, ok := binaryOps[tok.Kind]
		if !ok || info.prec < minPrec {
			return left
		}
		p.advance()
		next := info.prec + 1
		if info.rightAssoc {
			next = info.prec
		}
		node := p.infixNode(info.kind, tok, left)
		if p.exprEnds() {
			node.AddChild(p.missingTerm("expected expression after '" + tok.Literal + "'"))
		} else {
			node.AddChild(p.parseExprPrec(next))
		}
		left = p.finishNode(node)
	}
}

func (p *Parser) parseTernary(cond *Node) *Node {
	tok := p.advance() // '?'
	node := p.infixNode(KindTernaryExpr, tok, cond)
	node.AddChild(p.parseExprPrec(precAssign))
	if p.expect(TokenColon) == nil {
		node.AddChild(p.errorNode("expected ':' in conditional expression", statementSync, TokenColon))
		return p.finishNode(node)
	}
	node.AddChild(p.parseExprPrec(precTernary))
	return p.finishNode(node)
}

// parseListTail folds "a, b, c" and fat-comma pairs into one flat list.
func (p *Parser) parseListTail(first *Node) *Node {
	var node *Node
	if first.Kind == KindListExpr {
		node = first
	} else {
		node = &Node{Kind: KindListExpr, Span: first.Span}
		node.AddChild(first)
	}
	for p.match(TokenComma, TokenFatArrow) {
		p.advance()
		if p.exprEnds() {
			break // trailing comma
		}
		node.AddChild(p.parseExprPrec(precAssign))
	}
	return p.finishNode(node)
}

// exprEnds reports whether the next token cannot begin an operand.
func (p *Parser) exprEnds() bool {
	switch p.peek().Kind {
	case TokenSemicolon, TokenRBrace, TokenRParen, TokenRBracket,
		TokenComma, TokenFatArrow, TokenColon, TokenEOF, TokenData,
		TokenIf, TokenUnless, TokenWhile, TokenUntil, TokenFor, TokenForeach:
		return true
	}
	return false
}

// missingTerm records an error without consuming anything, so statement
// terminators stay available to the caller.
func (p *Parser) missingTerm(msg string) *Node {
	tok := p.peek()
	pos := tok.Span.Start
	if p.pos > 0 && p.pos <= len(p.tokens) {
		pos = p.tokens[p.pos-1].Span.End
	}
	node := &Node{
		Kind:  KindError,
		Span:  Span{Start: pos, End: pos},
		Error: &ParseError{Message: msg, Got: &tok},
	}
	p.addDiag(SeverityError, msg, node.Span, "")
	return node
}

func (p *Parser) infixNode(kind NodeKind, tok Token, left *Node) *Node {
	t := tok
	node := &Node{
		Kind:  kind,
		Span:  Span{Start: left.Span.Start, End: tok.Span.End},
		Token: &t,
	}
	node.AddChild(left)
	return node
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case TokenNot, TokenBitNot, TokenPlus, TokenMinus:
		tok := p.advance()
		node := &Node{Kind: KindUnaryExpr, Span: Span{Start: tok.Span.Start, End: tok.Span.End}, Token: &tok}
		if p.exprEnds() {
			node.AddChild(p.missingTerm("expected expression after '" + tok.Literal + "'"))
		} else {
			node.AddChild(p.parseExprPrec(precPow))
		}
		return p.finishNode(node)
	case TokenBackslash:
		tok := p.advance()
		node := &Node{Kind: KindRefExpr, Span: Span{Start: tok.Span.Start, End: tok.Span.End}, Token: &tok}
		node.AddChild(p.parseExprPrec(precPow))
		return p.finishNode(node)
	case TokenIncrement, TokenDecrement:
		tok := p.advance()
		node := &Node{Kind: KindUnaryExpr, Span: Span{Start: tok.Span.Start, End: tok.Span.End}, Token: &tok}
		node.AddChild(p.parseExprPrec(precPow))
		return p.finishNode(node)
	}
	return p.parsePostfixChain()
}

func (p *Parser) parsePostfixChain() *Node {
	left := p.parseTerm()
	for {
		switch p.peek().Kind {
		case TokenArrow:
			left = p.parseArrowSuffix(left)
		case TokenLBracket:
			if !subscriptable(left) {
				return left
			}
			left = p.parseSubscript(left, TokenRBracket)
		case TokenLBrace:
			if !subscriptable(left) {
				return left
			}
			left = p.parseSubscript(left, TokenRBrace)
		case TokenIncrement, TokenDecrement:
			tok := p.advance()
			node := p.infixNode(KindPostfixExpr, tok, left)
			left = p.finishNode(node)
		default:
			return left
		}
	}
}

// subscriptable limits bare subscripts to things that can be indexed
// directly; everything else reaches a subscript through an arrow.
func subscriptable(n *Node) bool {
	switch n.Kind {
	case KindVariable, KindIndexExpr, KindKeyExpr, KindSliceExpr, KindDeref:
		return true
	}
	return false
}

func (p *Parser) parseArrowSuffix(left *Node) *Node {
	arrow := p.advance()
	switch p.peek().Kind {
	case TokenIdent:
		name := p.advance()
		node := p.infixNode(KindMethodCall, arrow, left)
		node.AddChild(p.tokenNode(KindIdentifier, name))
		if p.check(TokenLParen) {
			node.AddChild(p.parseParenExpr())
		}
		return p.finishNode(node)
	case TokenVariable:
		node := p.infixNode(KindMethodCall, arrow, left)
		node.AddChild(p.tokenNode(KindVariable, p.advance()))
		if p.check(TokenLParen) {
			node.AddChild(p.parseParenExpr())
		}
		return p.finishNode(node)
	case TokenLBracket:
		node := p.infixNode(KindDeref, arrow, left)
		node.AddChild(p.parseSubscriptBody(TokenRBracket))
		return p.finishNode(node)
	case TokenLBrace:
		node := p.infixNode(KindDeref, arrow, left)
		node.AddChild(p.parseSubscriptBody(TokenRBrace))
		return p.finishNode(node)
	case TokenLParen:
		node := p.infixNode(KindCall, arrow, left)
		node.AddChild(p.parseParenExpr())
		return p.finishNode(node)
	}
	node := p.infixNode(KindMethodCall, arrow, left)
	node.AddChild(p.missingTerm("expected method name after '->'"))
	return p.finishNode(node)
}

func (p *Parser) parseSubscript(left *Node, closer TokenKind) *Node {
	kind := KindIndexExpr
	if closer == TokenRBrace {
		kind = KindKeyExpr
	}
	if left.Kind == KindVariable && left.Token != nil && len(left.Token.Literal) > 0 {
		switch left.Token.Literal[0] {
		case '@', '%':
			kind = KindSliceExpr
		}
	}
	open := p.peek()
	node := p.infixNode(kind, open, left)
	node.AddChild(p.parseSubscriptBody(closer))
	return p.finishNode(node)
}

// parseSubscriptBody parses "[ expr ]" or "{ key }" starting at the opener.
func (p *Parser) parseSubscriptBody(closer TokenKind) *Node {
	kind := KindIndexExpr
	if closer == TokenRBrace {
		kind = KindKeyExpr
	}
	node := p.startNode(kind)
	p.advance() // opener
	if !p.check(closer) {
		if closer == TokenRBrace {
			node.AddChild(p.parseHashKey())
		} else {
			node.AddChild(p.parseExprPrec(precComma))
		}
	}
	if p.expect(closer) == nil {
		node.AddChild(p.errorNode("expected '"+closerLiteral(closer)+"'", statementSync, closer))
		p.expect(closer)
	}
	return p.finishNode(node)
}

func closerLiteral(kind TokenKind) string {
	switch kind {
	case TokenRBracket:
		return "]"
	case TokenRBrace:
		return "}"
	case TokenRParen:
		return ")"
	}
	return kind.String()
}

// parseHashKey treats a lone bareword inside braces as a literal key.
func (p *Parser) parseHashKey() *Node {
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenRBrace {
		return p.tokenNode(KindStringLiteral, p.advance())
	}
	return p.parseExprPrec(precComma)
}

func (p *Parser) parseParenExpr() *Node {
	node := p.startNode(KindParenExpr)
	p.advance() // '('
	if !p.check(TokenRParen) {
		node.AddChild(p.parseExprPrec(precComma))
	}
	if p.expect(TokenRParen) == nil {
		node.AddChild(p.errorNode("expected ')'", []TokenKind{TokenRParen, TokenSemicolon, TokenRBrace}, TokenRParen))
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

func (p *Parser) parseTerm() *Node {
	tok := p.peek()
	switch tok.Kind {
	case TokenNumber:
		return p.tokenNode(KindNumberLiteral, p.advance())
	case TokenVersionString:
		return p.tokenNode(KindVersionLiteral, p.advance())
	case TokenString:
		return p.tokenNode(KindStringLiteral, p.advance())
	case TokenBacktick:
		return p.tokenNode(KindBacktick, p.advance())
	case TokenQuoteWords:
		return p.tokenNode(KindQuoteWords, p.advance())
	case TokenQuoteRegex:
		return p.tokenNode(KindQuoteRegex, p.advance())
	case TokenMatch:
		return p.tokenNode(KindRegexMatch, p.advance())
	case TokenSubstitution:
		return p.tokenNode(KindSubstitution, p.advance())
	case TokenTransliteration:
		return p.tokenNode(KindTransliteration, p.advance())
	case TokenHeredocStart:
		return p.tokenNode(KindHeredocString, p.advance())
	case TokenReadline:
		return p.tokenNode(KindReadline, p.advance())
	case TokenVariable:
		return p.tokenNode(KindVariable, p.advance())
	case TokenIdent:
		return p.parseIdentTerm()
	case TokenLParen:
		return p.parseParenExpr()
	case TokenLBracket:
		return p.parseAnonArray()
	case TokenLBrace:
		if p.looksLikeHash() {
			return p.parseAnonHash()
		}
		return p.parseBlock()
	case TokenSub:
		return p.parseAnonSub()
	case TokenDo:
		return p.parseDoExpr()
	case TokenEval:
		return p.parseEvalExpr()
	case TokenMy, TokenOur, TokenLocal:
		return p.parseDeclExpr()
	case TokenReturn:
		node := p.startNode(KindReturnStmt)
		p.advance()
		if !p.exprEnds() {
			node.AddChild(p.parseExprPrec(precAssign))
		}
		return p.finishNode(node)
	case TokenLast, TokenNext, TokenRedo:
		node := p.startNode(KindLoopControl)
		kw := p.advance()
		node.Token = &kw
		if p.check(TokenIdent) {
			node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
		}
		return p.finishNode(node)
	}
	if p.exprEnds() {
		return p.missingTerm("expected expression")
	}
	return p.errorNode("expected expression, got "+tok.Kind.String(), statementSync)
}

// parseIdentTerm handles barewords: class names, named calls with parens,
// and the builtin list operators that take arguments without parens.
func (p *Parser) parseIdentTerm() *Node {
	tok := p.advance()
	ident := p.tokenNode(KindIdentifier, tok)
	if p.check(TokenLParen) {
		node := &Node{Kind: KindCall, Span: ident.Span}
		node.AddChild(ident)
		node.AddChild(p.parseParenExpr())
		return p.finishNode(node)
	}
	if isListOperator(tok.Literal) && p.termStarts() {
		node := &Node{Kind: KindCall, Span: ident.Span}
		node.AddChild(ident)
		if p.looksLikeFilehandle() {
			node.AddChild(p.tokenNode(KindIdentifier, p.advance()))
		}
		// map/grep/sort take a bare block before the list.
		if p.check(TokenLBrace) && !p.looksLikeHash() {
			node.AddChild(p.parseBlock())
			if p.check(TokenComma) {
				p.advance()
			}
			if p.termStarts() {
				node.AddChild(p.parseExprPrec(precComma))
			}
			return p.finishNode(node)
		}
		node.AddChild(p.parseExprPrec(precComma))
		return p.finishNode(node)
	}
	return ident
}

// looksLikeFilehandle spots "print STDERR ..." shapes: a bareword directly
// followed by an argument rather than an operator or comma.
func (p *Parser) looksLikeFilehandle() bool {
	if !p.check(TokenIdent) {
		return false
	}
	switch p.peekN(1).Kind {
	case TokenVariable, TokenString, TokenNumber, TokenHeredocStart,
		TokenMatch, TokenQuoteWords, TokenBacktick:
		return true
	}
	return false
}

// termStarts reports whether the next token can begin an argument to a
// parenless list operator.
func (p *Parser) termStarts() bool {
	switch p.peek().Kind {
	case TokenNumber, TokenVersionString, TokenString, TokenBacktick,
		TokenQuoteWords, TokenQuoteRegex, TokenMatch, TokenSubstitution,
		TokenTransliteration, TokenHeredocStart, TokenReadline,
		TokenVariable, TokenIdent, TokenLBracket, TokenLBrace,
		TokenBackslash, TokenNot, TokenBitNot, TokenMinus, TokenPlus,
		TokenMy, TokenOur, TokenLocal, TokenSub, TokenDo, TokenEval,
		TokenIncrement, TokenDecrement:
		return true
	}
	return false
}

func (p *Parser) parseAnonArray() *Node {
	node := p.startNode(KindArrayLiteral)
	p.advance() // '['
	if !p.check(TokenRBracket) {
		node.AddChild(p.parseExprPrec(precComma))
	}
	if p.expect(TokenRBracket) == nil {
		node.AddChild(p.errorNode("expected ']'", statementSync, TokenRBracket))
		p.expect(TokenRBracket)
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnonHash() *Node {
	node := p.startNode(KindHashLiteral)
	p.advance() // '{'
	if !p.check(TokenRBrace) {
		node.AddChild(p.parseExprPrec(precComma))
	}
	if p.expect(TokenRBrace) == nil {
		node.AddChild(p.errorNode("expected '}'", statementSync, TokenRBrace))
		p.expect(TokenRBrace)
	}
	return p.finishNode(node)
}

// looksLikeHash decides whether a '{' in term position opens a hash
// constructor or a block, by peeking at the first tokens inside. An empty
// pair and "key =>" or "key ," shapes are hashes; anything else is a block.
func (p *Parser) looksLikeHash() bool {
	first := p.peekN(1)
	switch first.Kind {
	case TokenRBrace:
		return true
	case TokenIdent, TokenString, TokenNumber, TokenVariable:
		switch p.peekN(2).Kind {
		case TokenFatArrow, TokenComma:
			return true
		}
	}
	return false
}

func (p *Parser) parseAnonSub() *Node {
	node := p.startNode(KindAnonSub)
	p.advance()
	if p.check(TokenLParen) {
		node.AddChild(p.parseParenExpr())
	}
	p.parseAttributes(node)
	node.AddChild(p.parseBlockOrError())
	return p.finishNode(node)
}

func (p *Parser) parseDoExpr() *Node {
	node := p.startNode(KindDoBlock)
	p.advance()
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else if p.exprEnds() {
		node.AddChild(p.missingTerm("expected block or expression after 'do'"))
	} else {
		node.AddChild(p.parseExprPrec(precAssign))
	}
	return p.finishNode(node)
}

func (p *Parser) parseEvalExpr() *Node {
	node := p.startNode(KindEvalBlock)
	p.advance()
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else if p.exprEnds() {
		node.AddChild(p.missingTerm("expected block or expression after 'eval'"))
	} else {
		node.AddChild(p.parseExprPrec(precAssign))
	}
	return p.finishNode(node)
}

// parseDeclExpr is a declaration in expression position, as in
// "while (my $line = <FH>)". The initializer, if any, is picked up by the
// surrounding assignment operator.
func (p *Parser) parseDeclExpr() *Node {
	node := p.startNode(KindVarDecl)
	keyword := p.advance()
	node.Token = &keyword
	switch {
	case p.check(TokenVariable):
		node.AddChild(p.tokenNode(KindVariable, p.advance()))
	case p.check(TokenLParen):
		node.AddChild(p.parseParenExpr())
	default:
		node.AddChild(p.missingTerm("expected variable after '" + keyword.Literal + "'"))
	}
	return p.finishNode(node)
}
