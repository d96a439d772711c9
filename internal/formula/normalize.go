// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import (
	"strings"
	"unicode"
)

var typographic = strings.NewReplacer(
	"−", "-", // minus sign
	"×", "*", // multiplication sign
	"·", "*", // middle dot
	"÷", "/", // division sign
)

type pieceKind int

const (
	pieceNumber pieceKind = iota
	pieceFunc
	pieceSymbol
	pieceIdent // letters that are not an allowed name
	pieceLParen
	pieceRParen
	pieceOther
)

type piece struct {
	kind pieceKind
	text string
}

func (p piece) endsValue() bool {
	switch p.kind {
	case pieceNumber, pieceSymbol, pieceIdent, pieceRParen:
		return true
	}
	return false
}

func (p piece) startsValue() bool {
	switch p.kind {
	case pieceNumber, pieceSymbol, pieceIdent, pieceFunc, pieceLParen:
		return true
	}
	return false
}

// Normalize performs lexical cleanup of raw input and makes implicit
// multiplication and bare function application explicit:
//
//	"2x^2+1"  -> "2*x^2+1"
//	"sin x"   -> "sin(x)"
//	"(x+1)(x-1)" -> "(x+1)*(x-1)"
//	"1,5x"    -> "1.5*x"
//	"2e"      -> "2*e"
//
// Normalize never fails; malformed input is left for the parser to reject.
// It is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := typographic.Replace(strings.ToLower(strings.TrimSpace(raw)))
	return join(split(s))
}

// split chunks s into pieces, dropping whitespace.
func split(s string) []piece {
	rs := []rune(s)
	var out []piece
	// One entry per open parenthesis: true when it opens the argument list
	// of a multi-argument function, where ',' separates arguments.
	var argLists []bool

	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case isDigit(r) || (r == '.' && i+1 < len(rs) && isDigit(rs[i+1])):
			inArgs := len(argLists) > 0 && argLists[len(argLists)-1]
			j := scanNumber(rs, i, !inArgs)
			out = append(out, piece{pieceNumber, strings.ReplaceAll(string(rs[i:j]), ",", ".")})
			i = j

		case unicode.IsLetter(r):
			j := i
			for j < len(rs) && unicode.IsLetter(rs[j]) {
				j++
			}
			out = append(out, splitLetters(string(rs[i:j]))...)
			i = j

		case r == '(':
			multi := false
			if n := len(out); n > 0 && out[n-1].kind == pieceFunc {
				multi = Functions[out[n-1].text] > 1
			}
			argLists = append(argLists, multi)
			out = append(out, piece{pieceLParen, "("})
			i++

		case r == ')':
			if len(argLists) > 0 {
				argLists = argLists[:len(argLists)-1]
			}
			out = append(out, piece{pieceRParen, ")"})
			i++

		default:
			out = append(out, piece{pieceOther, string(r)})
			i++
		}
	}
	return out
}

// scanNumber returns the end of the number starting at i. A comma directly
// between two digits is read as a decimal separator when commaDecimal is set.
// An exponent ("1e5", "2.5e-1") belongs to the number only when digits
// follow it; otherwise the e is the constant.
func scanNumber(rs []rune, i int, commaDecimal bool) int {
	seenDot := false
	j := i
	for j < len(rs) {
		r := rs[j]
		if isDigit(r) {
			j++
			continue
		}
		sep := r == '.' || (r == ',' && commaDecimal)
		if sep && !seenDot && j+1 < len(rs) && isDigit(rs[j+1]) {
			seenDot = true
			j++
			continue
		}
		break
	}

	if j < len(rs) && rs[j] == 'e' {
		k := j + 1
		if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
			k++
		}
		if k < len(rs) && isDigit(rs[k]) {
			for j = k; j < len(rs) && isDigit(rs[j]); j++ {
			}
		}
	}
	return j
}

// splitLetters classifies a run of letters. A run made entirely of allowed
// names ("xsin", "pix") is split into them; any other run is kept whole so
// the validator can name it.
func splitLetters(run string) []piece {
	if parts := decompose(run, map[int]bool{}); parts != nil {
		out := make([]piece, len(parts))
		for i, p := range parts {
			if IsFunction(p) {
				out[i] = piece{pieceFunc, p}
			} else {
				out[i] = piece{pieceSymbol, p}
			}
		}
		return out
	}
	return []piece{{pieceIdent, run}}
}

// decompose splits s into allowed names, longest match first. failed
// memoizes offsets from which no split exists.
func decompose(s string, failed map[int]bool) []string {
	return decomposeFrom(s, 0, failed)
}

func decomposeFrom(s string, at int, failed map[int]bool) []string {
	if at == len(s) {
		return []string{}
	}
	if failed[at] {
		return nil
	}
	for end := len(s); end > at; end-- {
		name := s[at:end]
		if !IsFunction(name) && !IsSymbol(name) {
			continue
		}
		if rest := decomposeFrom(s, end, failed); rest != nil {
			return append([]string{name}, rest...)
		}
	}
	failed[at] = true
	return nil
}

// join writes pieces back, inserting '*' between adjacent values and
// parentheses around the single argument of a bare function application.
func join(ps []piece) string {
	var sb strings.Builder
	var prev *piece

	emit := func(p piece) {
		if prev != nil && prev.endsValue() && p.startsValue() {
			unknownCall := prev.kind == pieceIdent && p.kind == pieceLParen
			digits := prev.kind == pieceNumber && p.kind == pieceNumber
			if !unknownCall && !digits {
				sb.WriteByte('*')
			}
		}
		sb.WriteString(p.text)
		last := p
		prev = &last
	}

	for i := 0; i < len(ps); i++ {
		p := ps[i]
		if p.kind == pieceFunc && i+1 < len(ps) {
			switch arg := ps[i+1]; arg.kind {
			case pieceNumber, pieceSymbol, pieceIdent:
				emit(p)
				sb.WriteByte('(')
				sb.WriteString(arg.text)
				prev = nil
				emit(piece{pieceRParen, ")"})
				i++
				continue
			}
		}
		emit(p)
	}
	return sb.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
