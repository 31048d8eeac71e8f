package parser

import "strconv"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether other lies fully within s.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenPod

	// Literals
	TokenIdent
	TokenNumber
	TokenVersionString
	TokenVariable
	TokenString
	TokenBacktick
	TokenQuoteWords
	TokenQuoteRegex
	TokenMatch
	TokenSubstitution
	TokenTransliteration
	TokenHeredocStart
	TokenReadline
	TokenData

	// Keywords
	TokenMy
	TokenOur
	TokenLocal
	TokenSub
	TokenPackage
	TokenUse
	TokenNo
	TokenRequire
	TokenIf
	TokenElsif
	TokenElse
	TokenUnless
	TokenWhile
	TokenUntil
	TokenFor
	TokenForeach
	TokenDo
	TokenEval
	TokenReturn
	TokenLast
	TokenNext
	TokenRedo
	TokenPhase

	// Word operators
	TokenWordAnd
	TokenWordOr
	TokenWordNot
	TokenWordXor
	TokenStrEq
	TokenStrNe
	TokenStrLt
	TokenStrGt
	TokenStrLe
	TokenStrGe
	TokenStrCmp
	TokenRepeat

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenFatArrow
	TokenArrow
	TokenQuestion
	TokenColon
	TokenDot
	TokenDotDot
	TokenDotDotDot

	TokenAssign
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPow
	TokenBackslash
	TokenNot
	TokenBitNot
	TokenMatchBind
	TokenNotMatchBind
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenCompare
	TokenAnd
	TokenOr
	TokenDefinedOr
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenShl
	TokenShr
	TokenIncrement
	TokenDecrement

	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenDotAssign
	TokenPowAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenAndAndAssign
	TokenOrOrAssign
	TokenDefinedOrAssign
	TokenRepeatAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:             "EOF",
	TokenError:           "Error",
	TokenWhitespace:      "Whitespace",
	TokenComment:         "Comment",
	TokenPod:             "Pod",
	TokenIdent:           "Identifier",
	TokenNumber:          "Number",
	TokenVersionString:   "VersionString",
	TokenVariable:        "Variable",
	TokenString:          "String",
	TokenBacktick:        "Backtick",
	TokenQuoteWords:      "QuoteWords",
	TokenQuoteRegex:      "QuoteRegex",
	TokenMatch:           "Match",
	TokenSubstitution:    "Substitution",
	TokenTransliteration: "Transliteration",
	TokenHeredocStart:    "HeredocStart",
	TokenReadline:        "Readline",
	TokenData:            "Data",
	TokenMy:              "my",
	TokenOur:             "our",
	TokenLocal:           "local",
	TokenSub:             "sub",
	TokenPackage:         "package",
	TokenUse:             "use",
	TokenNo:              "no",
	TokenRequire:         "require",
	TokenIf:              "if",
	TokenElsif:           "elsif",
	TokenElse:            "else",
	TokenUnless:          "unless",
	TokenWhile:           "while",
	TokenUntil:           "until",
	TokenFor:             "for",
	TokenForeach:         "foreach",
	TokenDo:              "do",
	TokenEval:            "eval",
	TokenReturn:          "return",
	TokenLast:            "last",
	TokenNext:            "next",
	TokenRedo:            "redo",
	TokenPhase:           "PhaseKeyword",
	TokenWordAnd:         "and",
	TokenWordOr:          "or",
	TokenWordNot:         "not",
	TokenWordXor:         "xor",
	TokenStrEq:           "eq",
	TokenStrNe:           "ne",
	TokenStrLt:           "lt",
	TokenStrGt:           "gt",
	TokenStrLe:           "le",
	TokenStrGe:           "ge",
	TokenStrCmp:          "cmp",
	TokenRepeat:          "x",
	TokenLParen:          "(",
	TokenRParen:          ")",
	TokenLBrace:          "{",
	TokenRBrace:          "}",
	TokenLBracket:        "[",
	TokenRBracket:        "]",
	TokenSemicolon:       ";",
	TokenComma:           ",",
	TokenFatArrow:        "=>",
	TokenArrow:           "->",
	TokenQuestion:        "?",
	TokenColon:           ":",
	TokenDot:             ".",
	TokenDotDot:          "..",
	TokenDotDotDot:       "...",
	TokenAssign:          "=",
	TokenPlus:            "+",
	TokenMinus:           "-",
	TokenStar:            "*",
	TokenSlash:           "/",
	TokenPercent:         "%",
	TokenPow:             "**",
	TokenBackslash:       "\\",
	TokenNot:             "!",
	TokenBitNot:          "~",
	TokenMatchBind:       "=~",
	TokenNotMatchBind:    "!~",
	TokenEQ:              "==",
	TokenNE:              "!=",
	TokenLT:              "<",
	TokenLE:              "<=",
	TokenGT:              ">",
	TokenGE:              ">=",
	TokenCompare:         "<=>",
	TokenAnd:             "&&",
	TokenOr:              "||",
	TokenDefinedOr:       "//",
	TokenBitAnd:          "&",
	TokenBitOr:           "|",
	TokenBitXor:          "^",
	TokenShl:             "<<",
	TokenShr:             ">>",
	TokenIncrement:       "++",
	TokenDecrement:       "--",
	TokenPlusAssign:      "+=",
	TokenMinusAssign:     "-=",
	TokenStarAssign:      "*=",
	TokenSlashAssign:     "/=",
	TokenPercentAssign:   "%=",
	TokenDotAssign:       ".=",
	TokenPowAssign:       "**=",
	TokenAndAssign:       "&=",
	TokenOrAssign:        "|=",
	TokenXorAssign:       "^=",
	TokenShlAssign:       "<<=",
	TokenShrAssign:       ">>=",
	TokenAndAndAssign:    "&&=",
	TokenOrOrAssign:      "||=",
	TokenDefinedOrAssign: "//=",
	TokenRepeatAssign:    "x=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// HeredocInfo records the deferred parts of a here-document. The body is
// consumed after the rest of the logical line has been lexed and attached to
// the start token during token collection.
type HeredocInfo struct {
	Label       string
	Indent      bool // <<~LABEL strips leading whitespace
	Interpolate bool // bare or double-quoted label
	Body        string
	BodySpan    Span
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string

	// Interpolates marks double-quoted forms whose body is subject to
	// variable interpolation.
	Interpolates bool

	// Unterminated marks string/regex/heredoc tokens whose closing
	// delimiter was never found before end of input.
	Unterminated bool

	Heredoc *HeredocInfo
}

var keywords = map[string]TokenKind{
	"my":        TokenMy,
	"our":       TokenOur,
	"local":     TokenLocal,
	"sub":       TokenSub,
	"package":   TokenPackage,
	"use":       TokenUse,
	"no":        TokenNo,
	"require":   TokenRequire,
	"if":        TokenIf,
	"elsif":     TokenElsif,
	"else":      TokenElse,
	"unless":    TokenUnless,
	"while":     TokenWhile,
	"until":     TokenUntil,
	"for":       TokenFor,
	"foreach":   TokenForeach,
	"do":        TokenDo,
	"eval":      TokenEval,
	"return":    TokenReturn,
	"last":      TokenLast,
	"next":      TokenNext,
	"redo":      TokenRedo,
	"and":       TokenWordAnd,
	"or":        TokenWordOr,
	"not":       TokenWordNot,
	"xor":       TokenWordXor,
	"eq":        TokenStrEq,
	"ne":        TokenStrNe,
	"lt":        TokenStrLt,
	"gt":        TokenStrGt,
	"le":        TokenStrLe,
	"ge":        TokenStrGe,
	"cmp":       TokenStrCmp,
	"x":         TokenRepeat,
	"BEGIN":     TokenPhase,
	"END":       TokenPhase,
	"INIT":      TokenPhase,
	"CHECK":     TokenPhase,
	"UNITCHECK": TokenPhase,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
