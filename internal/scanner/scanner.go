// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming Unicode-aware lexer for formulas.
package scanner

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/fplot/internal/token"
)

// Scanner tokenizes formula input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	peeked *Item
	pos    int // Byte offset of the next unread rune
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string
	Pos   int // Byte offset where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Pos returns the byte offset of the next unread rune.
func (s *Scanner) Pos() int {
	return s.pos
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input.
func (s *Scanner) Next() (*Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	for {
		r, err := s.read()
		if err == io.EOF {
			return &Item{Token: token.EOF, Pos: s.pos}, nil
		}
		if err != nil {
			return nil, err
		}
		start := s.pos - len(string(r))

		switch {
		case r == '\n':
			return &Item{Token: token.SEMI, Value: "\n", Pos: start}, nil
		case unicode.IsSpace(r):
			continue
		case isDigit(r) || r == '.':
			return s.scanNumber(r, start)
		case unicode.IsLetter(r) || r == '_':
			return s.scanIdent(r, start)
		}

		return s.scanOperator(r, start)
	}
}

func (s *Scanner) read() (rune, error) {
	r, size, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	s.pos += size
	return r, nil
}

func (s *Scanner) unread(r rune) {
	if err := s.reader.UnreadRune(); err == nil {
		s.pos -= len(string(r))
	}
}

// scanNumber reads digits with at most one fractional part and an optional
// exponent. A lone '.' is ILLEGAL.
func (s *Scanner) scanNumber(first rune, start int) (*Item, error) {
	s.buf.Reset()
	s.buf.WriteRune(first)
	seenDot := first == '.'
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isDigit(r) {
			s.buf.WriteRune(r)
			continue
		}
		if r == '.' && !seenDot {
			seenDot = true
			s.buf.WriteRune(r)
			continue
		}
		s.unread(r)
		break
	}
	value := s.buf.String()
	if value == "." || strings.HasSuffix(value, ".") {
		return &Item{Token: token.ILLEGAL, Value: value, Pos: start}, nil
	}
	if n := s.exponentPrefix(); n > 0 {
		for i := 0; i < n; i++ {
			r, _ := s.read()
			s.buf.WriteRune(r)
		}
		for {
			r, err := s.read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			if !isDigit(r) {
				s.unread(r)
				break
			}
			s.buf.WriteRune(r)
		}
		value = s.buf.String()
	}
	return &Item{Token: token.NUMBER, Value: value, Pos: start}, nil
}

// exponentPrefix returns the length of "e", "e+" or "e-" at the read
// position when a digit follows it, and 0 otherwise.
func (s *Scanner) exponentPrefix() int {
	b, _ := s.reader.Peek(3)
	if len(b) < 2 || (b[0] != 'e' && b[0] != 'E') {
		return 0
	}
	if isDigit(rune(b[1])) {
		return 1
	}
	if len(b) == 3 && (b[1] == '+' || b[1] == '-') && isDigit(rune(b[2])) {
		return 2
	}
	return 0
}

func (s *Scanner) scanIdent(first rune, start int) (*Item, error) {
	s.buf.Reset()
	s.buf.WriteRune(first)
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !isIdentChar(r) {
			s.unread(r)
			break
		}
		s.buf.WriteRune(r)
	}
	return &Item{Token: token.IDENT, Value: s.buf.String(), Pos: start}, nil
}

// scanOperator handles single runes and the two-rune operators **, <=, >=, == and !=.
func (s *Scanner) scanOperator(r rune, start int) (*Item, error) {
	tok := token.TokenFromRune(r)
	if tok == token.ILLEGAL {
		return &Item{Token: token.ILLEGAL, Value: string(r), Pos: start}, nil
	}

	var second token.Token
	var want rune
	switch tok {
	case token.STAR:
		want, second = token.RuneStar, token.POW
	case token.LT:
		want, second = token.RuneEqual, token.LE
	case token.GT:
		want, second = token.RuneEqual, token.GE
	case token.ASSIGN:
		want, second = token.RuneEqual, token.EQ
	case token.BANG:
		want, second = token.RuneEqual, token.NE
	default:
		return &Item{Token: tok, Value: string(r), Pos: start}, nil
	}

	next, err := s.read()
	if err == io.EOF {
		return &Item{Token: tok, Value: string(r), Pos: start}, nil
	}
	if err != nil {
		return nil, err
	}
	if next == want {
		return &Item{Token: second, Value: second.String(), Pos: start}, nil
	}
	s.unread(next)
	return &Item{Token: tok, Value: string(r), Pos: start}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isIdentChar returns true if the rune is valid in an identifier (letter, digit, underscore).
func isIdentChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ScanAll tokenizes the whole input, including the trailing EOF item.
func ScanAll(input string) ([]*Item, error) {
	s := NewFromString(input)
	var items []*Item
	for {
		item, err := s.Next()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if item.Token == token.EOF {
			return items, nil
		}
	}
}
