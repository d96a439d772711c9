// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package formula

import (
	"errors"
	"strings"

	"nickandperla.net/fplot/internal/expr"
	"nickandperla.net/fplot/internal/parser"
)

// ParseAndValidate parses normalized text and checks every node of the
// resulting tree against the whitelist. The returned tree contains only
// symbol, operator, function, parenthesis and constant nodes.
func ParseAndValidate(normalized string) (expr.Node, error) {
	if strings.TrimSpace(normalized) == "" {
		return nil, newError(CodeEmpty, "", -1)
	}

	root, err := parser.Parse(normalized)
	if err != nil {
		var se *parser.SyntaxError
		if errors.As(err, &se) {
			return nil, &Error{Code: CodeSyntax, Token: se.Found, Pos: se.Pos, Err: err}
		}
		return nil, &Error{Code: CodeSyntax, Pos: -1, Err: err}
	}
	if root == nil {
		return nil, newError(CodeEmpty, "", -1)
	}

	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Validate walks the whole tree and returns the first whitelist violation.
func Validate(root expr.Node) error {
	return expr.Walk(root, check)
}

func check(n, parent expr.Node) error {
	switch v := n.(type) {
	case *expr.Symbol:
		// The name in callee position of a call is a function name, and is
		// judged against the function whitelist instead.
		if call, ok := parent.(*expr.Call); ok && call.Fn == v {
			if !IsFunction(v.Name) {
				return newError(CodeFunctionNotAllowed, v.Name, v.At)
			}
			return nil
		}
		if !IsSymbol(v.Name) {
			return newError(CodeSymbolNotAllowed, v.Name, v.At)
		}
		return nil

	case *expr.Operator:
		if v.Postfix || !Operators[v.Op] {
			return newError(CodeOperatorNotAllowed, v.Op, v.At)
		}
		return nil

	case *expr.Call:
		want, ok := Functions[v.Fn.Name]
		if !ok {
			return newError(CodeFunctionNotAllowed, v.Fn.Name, v.Fn.At)
		}
		if len(v.Args) != want {
			return newError(CodeSyntax, v.Fn.Name, v.Fn.At)
		}
		return nil

	case *expr.Paren, *expr.Constant:
		return nil
	}
	return newError(CodeNodeNotAllowed, n.Kind().String(), n.Pos())
}
