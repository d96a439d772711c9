// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser implements a general arithmetic expression grammar.
//
// The grammar is deliberately wider than what a plottable formula may
// contain: it accepts comparisons, '%', postfix '!', assignments and
// multi-statement blocks so that callers can report exactly which
// construct they refuse instead of a bare syntax error.
//
//	program    = statement { (";" | newline) statement }
//	statement  = comparison [ "=" comparison ]
//	comparison = additive { ("<" | "<=" | ">" | ">=" | "==" | "!=") additive }
//	additive   = term { ("+" | "-") term }
//	term       = unary { ("*" | "/" | "%") unary }
//	unary      = ("+" | "-") unary | power
//	power      = postfix [ ("^" | "**") unary ]
//	postfix    = primary { "!" }
//	primary    = NUMBER | IDENT [ "(" [ args ] ")" ] | "(" comparison ")"
package parser

import (
	"fmt"
	"strconv"

	"nickandperla.net/fplot/internal/expr"
	"nickandperla.net/fplot/internal/scanner"
	"nickandperla.net/fplot/internal/token"
)

// SyntaxError reports input the grammar cannot parse.
type SyntaxError struct {
	Pos   int
	Found string
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("position %d: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("position %d: %s near %q", e.Pos, e.Msg, e.Found)
}

// Parser is a recursive-descent parser over a token slice.
type Parser struct {
	items []*scanner.Item
	pos   int
}

// Parse parses input into a syntax tree. Empty input yields a nil node and
// no error; callers decide whether emptiness is acceptable.
func Parse(input string) (expr.Node, error) {
	items, err := scanner.ScanAll(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{items: items}
	return p.program()
}

func (p *Parser) peek() *scanner.Item {
	return p.items[p.pos]
}

func (p *Parser) next() *scanner.Item {
	item := p.items[p.pos]
	if item.Token != token.EOF {
		p.pos++
	}
	return item
}

func (p *Parser) errorf(item *scanner.Item, format string, args ...any) error {
	found := item.Value
	if item.Token == token.EOF {
		found = ""
	}
	return &SyntaxError{Pos: item.Pos, Found: found, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) skipSeparators() {
	for p.peek().Token == token.SEMI {
		p.next()
	}
}

func (p *Parser) program() (expr.Node, error) {
	p.skipSeparators()
	if p.peek().Token == token.EOF {
		return nil, nil
	}
	start := p.peek().Pos

	var stmts []expr.Node
	for {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)

		switch item := p.peek(); item.Token {
		case token.EOF:
			if len(stmts) == 1 {
				return stmts[0], nil
			}
			return &expr.Block{Stmts: stmts, At: start}, nil
		case token.SEMI:
			p.skipSeparators()
			if p.peek().Token == token.EOF {
				return &expr.Block{Stmts: stmts, At: start}, nil
			}
		default:
			return nil, p.errorf(item, "unexpected token")
		}
	}
}

func (p *Parser) statement() (expr.Node, error) {
	lhs, err := p.comparison()
	if err != nil {
		return nil, err
	}
	if p.peek().Token != token.ASSIGN {
		return lhs, nil
	}
	eq := p.next()
	rhs, err := p.comparison()
	if err != nil {
		return nil, err
	}

	switch target := lhs.(type) {
	case *expr.Symbol:
		return &expr.Assignment{Target: target, Value: rhs}, nil
	case *expr.Call:
		target.Fn.Callee = false
		return &expr.FunctionAssignment{Name: target.Fn, Params: target.Args, Body: rhs}, nil
	}
	return nil, p.errorf(eq, "invalid assignment target")
}

func (p *Parser) comparison() (expr.Node, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for p.peek().Token.IsComparison() {
		op := p.next()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = &expr.Operator{Op: op.Token.String(), Args: []expr.Node{left, right}, At: op.Pos}
	}
	return left, nil
}

func (p *Parser) additive() (expr.Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.peek().Token.IsAdditive() {
		op := p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &expr.Operator{Op: op.Value, Args: []expr.Node{left, right}, At: op.Pos}
	}
	return left, nil
}

func (p *Parser) term() (expr.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek().Token.IsMultiplicative() {
		op := p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &expr.Operator{Op: op.Value, Args: []expr.Node{left, right}, At: op.Pos}
	}
	return left, nil
}

func (p *Parser) unary() (expr.Node, error) {
	if p.peek().Token.IsAdditive() {
		op := p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &expr.Operator{Op: op.Value, Args: []expr.Node{operand}, At: op.Pos}, nil
	}
	return p.power()
}

// power is right-associative: the exponent is parsed by unary, which
// recurses back into power.
func (p *Parser) power() (expr.Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if !p.peek().Token.IsPower() {
		return base, nil
	}
	op := p.next()
	exponent, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &expr.Operator{Op: "^", Args: []expr.Node{base, exponent}, At: op.Pos}, nil
}

func (p *Parser) postfix() (expr.Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Token == token.BANG {
		op := p.next()
		n = &expr.Operator{Op: "!", Args: []expr.Node{n}, Postfix: true, At: op.Pos}
	}
	return n, nil
}

func (p *Parser) primary() (expr.Node, error) {
	item := p.next()
	switch item.Token {
	case token.NUMBER:
		v, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			return nil, p.errorf(item, "invalid number")
		}
		return &expr.Constant{Value: v, Text: item.Value, At: item.Pos}, nil

	case token.IDENT:
		sym := &expr.Symbol{Name: item.Value, At: item.Pos}
		if p.peek().Token != token.LPAREN {
			return sym, nil
		}
		p.next()
		sym.Callee = true
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return &expr.Call{Fn: sym, Args: args}, nil

	case token.LPAREN:
		inner, err := p.comparison()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Token != token.RPAREN {
			return nil, p.errorf(closing, "expected )")
		}
		return &expr.Paren{Inner: inner, At: item.Pos}, nil

	case token.EOF:
		return nil, p.errorf(item, "unexpected end of formula")
	}
	return nil, p.errorf(item, "unexpected token")
}

// arguments parses a comma-separated list after '(' up to and including ')'.
func (p *Parser) arguments() ([]expr.Node, error) {
	if p.peek().Token == token.RPAREN {
		p.next()
		return nil, nil
	}
	var args []expr.Node
	for {
		arg, err := p.comparison()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		item := p.next()
		switch item.Token {
		case token.COMMA:
			continue
		case token.RPAREN:
			return args, nil
		}
		return nil, p.errorf(item, "expected , or )")
	}
}
