// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines the token kinds of the formula grammar.
package token

// Token represents a formula token type.
type Token int

const (
	EOF Token = iota
	ILLEGAL

	NUMBER // 12, 0.5, .25
	IDENT  // x, sin, pi

	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	CARET   // ^
	POW     // ** - exponent spelling of the evaluation form
	PERCENT // %
	BANG    // ! - postfix factorial

	LT // <
	LE // <=
	GT // >
	GE // >=
	EQ // ==
	NE // !=

	ASSIGN // =
	LPAREN // (
	RPAREN // )
	COMMA  // ,
	SEMI   // ; or newline - statement separator
)

// Single-rune operators.
const (
	RunePlus    = '+'
	RuneMinus   = '-'
	RuneStar    = '*'
	RuneSlash   = '/'
	RuneCaret   = '^'
	RunePercent = '%'
	RuneBang    = '!'
	RuneLess    = '<'
	RuneGreater = '>'
	RuneEqual   = '='
	RuneLParen  = '('
	RuneRParen  = ')'
	RuneComma   = ','
	RuneSemi    = ';'
)

// TokenFromRune returns the token type for a single-rune operator.
// Two-rune operators (**, <=, >=, ==, !=) are assembled by the scanner.
func TokenFromRune(r rune) Token {
	switch r {
	case RunePlus:
		return PLUS
	case RuneMinus:
		return MINUS
	case RuneStar:
		return STAR
	case RuneSlash:
		return SLASH
	case RuneCaret:
		return CARET
	case RunePercent:
		return PERCENT
	case RuneBang:
		return BANG
	case RuneLess:
		return LT
	case RuneGreater:
		return GT
	case RuneEqual:
		return ASSIGN
	case RuneLParen:
		return LPAREN
	case RuneRParen:
		return RPAREN
	case RuneComma:
		return COMMA
	case RuneSemi, '\n':
		return SEMI
	}
	return ILLEGAL
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case ILLEGAL:
		return "ILLEGAL"
	case NUMBER:
		return "NUMBER"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case CARET:
		return "^"
	case POW:
		return "**"
	case PERCENT:
		return "%"
	case BANG:
		return "!"
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ:
		return "=="
	case NE:
		return "!="
	case ASSIGN:
		return "="
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case COMMA:
		return ","
	case SEMI:
		return ";"
	}
	return "UNKNOWN"
}

// IsAdditive returns true for + and -.
func (t Token) IsAdditive() bool {
	return t == PLUS || t == MINUS
}

// IsMultiplicative returns true for *, / and %.
func (t Token) IsMultiplicative() bool {
	switch t {
	case STAR, SLASH, PERCENT:
		return true
	}
	return false
}

// IsComparison returns true for relational and equality operators.
func (t Token) IsComparison() bool {
	switch t {
	case LT, LE, GT, GE, EQ, NE:
		return true
	}
	return false
}

// IsPower returns true for both spellings of exponentiation.
func (t Token) IsPower() bool {
	return t == CARET || t == POW
}
