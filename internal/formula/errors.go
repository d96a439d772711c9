// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import "fmt"

// Code classifies why a formula was refused.
type Code string

const (
	CodeEmpty              Code = "empty-formula"
	CodeSyntax             Code = "syntax-error"
	CodeSymbolNotAllowed   Code = "symbol-not-allowed"
	CodeOperatorNotAllowed Code = "operator-not-allowed"
	CodeFunctionNotAllowed Code = "function-not-allowed"
	CodeNodeNotAllowed     Code = "node-kind-not-allowed"
)

// Error is a refused formula. Token holds the offending name, operator or
// node kind; Pos is a byte offset into the normalized text, or -1.
type Error struct {
	Code  Code
	Token string
	Pos   int
	Err   error
}

func newError(code Code, tok string, pos int) *Error {
	return &Error{Code: code, Token: tok, Pos: pos}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Code {
	case CodeEmpty:
		msg = "formula is empty"
	case CodeSyntax:
		msg = "invalid formula syntax"
		if e.Token != "" {
			msg = fmt.Sprintf("invalid formula syntax near %q", e.Token)
		}
	case CodeSymbolNotAllowed:
		msg = fmt.Sprintf("symbol %q is not allowed", e.Token)
	case CodeOperatorNotAllowed:
		msg = fmt.Sprintf("operator %q is not allowed", e.Token)
	case CodeFunctionNotAllowed:
		msg = fmt.Sprintf("function %q is not allowed", e.Token)
	case CodeNodeNotAllowed:
		msg = fmt.Sprintf("node kind %q is not allowed", e.Token)
	default:
		msg = string(e.Code)
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s (position %d)", e.Code, msg, e.Pos)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code, so that
// errors.Is(err, &Error{Code: CodeSyntax}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
