// Package parser provides an error-tolerant parser for Perl 5 source code.
//
// # Overview
//
// The parser produces a position-tracked syntax tree from any byte sequence:
// malformed regions become error nodes with recorded expectations, and the
// root node always spans the whole input. It is built for editor tooling,
// where buffers are incomplete or mid-edit most of the time.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │ Mode-aware  │     │  ErrorNode  │
//	                    │  scanning   │     │  Recovery   │
//	                    └─────────────┘     └─────────────┘
//
// # Context-sensitive lexing
//
// Perl cannot be tokenized without parse context: "/" begins a regex where a
// term is expected and divides where an operator is expected. The lexer
// tracks that single bit of context as a mode (ModeExpectTerm or
// ModeExpectOperator) updated after every token, which also disambiguates
// quote-like operators, sigils and heredoc markers from shifts.
//
// # Heredocs
//
// A heredoc body begins on the line after its "<<LABEL" marker, so markers
// queue a pending body and the lexer collects bodies when it crosses the
// next newline. The parser reattaches each body to its marker token in
// order, and the marker's node span covers the body. Indented heredocs
// ("<<~LABEL") strip the terminator line's indentation from every body line,
// following perl 5.26 semantics.
//
// # Incremental reparsing
//
// Result.Reparse reuses top-level statements untouched by an edit:
// statements before the edit are shared, statements after it are shifted,
// and only the affected region is re-lexed and re-parsed. Every shortcut is
// verified; when a boundary cannot be re-established the engine falls back
// to a full parse, so a Reparse result is always identical to parsing the
// new buffer from scratch.
package parser
