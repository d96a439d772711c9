// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package expr

import (
	"strconv"
	"strings"
)

// Style selects how a tree is written back to text.
type Style int

const (
	// Display writes explicit multiplication, spaced binary operators and
	// only the parentheses precedence requires.
	Display Style = iota
	// Eval writes compact text for the evaluation engine: exponentiation is
	// spelled "**", unary plus is dropped, and every operand whose grouping
	// the engine could read differently (chained binary operators, negations,
	// power operands) is parenthesized.
	Eval
)

// Binding strengths, loosest first.
const (
	precComparison = iota
	precAdditive
	precMultiplicative
	precUnary
	precPower
	precPostfix
	precAtom
)

// Format writes the tree in the given style.
func Format(n Node, style Style) string {
	var sb strings.Builder
	f := formatter{sb: &sb, style: style}
	f.node(n, nil)
	return sb.String()
}

// FormatNumber writes a constant without exponent notation, so that the
// output never contains the letter e.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type formatter struct {
	sb    *strings.Builder
	style Style
}

// strip removes explicit parentheses; grouping is recomputed from precedence.
func strip(n Node) Node {
	for {
		p, ok := n.(*Paren)
		if !ok {
			return n
		}
		n = p.Inner
	}
}

func precedence(n Node) int {
	switch v := strip(n).(type) {
	case *Operator:
		if v.Postfix {
			return precPostfix
		}
		if v.Unary() {
			return precUnary
		}
		switch v.Op {
		case "+", "-":
			return precAdditive
		case "*", "/", "%":
			return precMultiplicative
		case "^":
			return precPower
		}
		return precComparison
	case *Assignment, *FunctionAssignment, *Block:
		return precComparison - 1
	}
	return precAtom
}

// bare removes explicit parentheses and, in Eval style, unary plus, which
// the evaluation engine has no prefix form for.
func (f *formatter) bare(n Node) Node {
	for {
		n = strip(n)
		o, ok := n.(*Operator)
		if f.style != Eval || !ok || o.Postfix || !o.Unary() || o.Op != "+" {
			return n
		}
		n = o.Args[0]
	}
}

func (f *formatter) node(n Node, parent Node) {
	switch v := f.bare(n).(type) {
	case *Symbol:
		f.sb.WriteString(v.Name)
	case *Constant:
		f.sb.WriteString(FormatNumber(v.Value))
	case *Call:
		f.sb.WriteString(v.Fn.Name)
		f.sb.WriteByte('(')
		for i, a := range v.Args {
			if i > 0 {
				if f.style == Display {
					f.sb.WriteString(", ")
				} else {
					f.sb.WriteByte(',')
				}
			}
			f.child(a, v, false)
		}
		f.sb.WriteByte(')')
	case *Operator:
		f.operator(v)
	case *Assignment:
		f.node(v.Target, v)
		f.sb.WriteString(" = ")
		f.node(v.Value, v)
	case *FunctionAssignment:
		f.sb.WriteString(v.Name.Name)
		f.sb.WriteByte('(')
		for i, p := range v.Params {
			if i > 0 {
				f.sb.WriteString(", ")
			}
			f.node(p, v)
		}
		f.sb.WriteString(") = ")
		f.node(v.Body, v)
	case *Block:
		for i, s := range v.Stmts {
			if i > 0 {
				f.sb.WriteString("; ")
			}
			f.node(s, v)
		}
	}
}

func (f *formatter) operator(o *Operator) {
	switch {
	case o.Postfix:
		f.child(o.Args[0], o, true)
		f.sb.WriteString(o.Op)
	case o.Unary():
		f.sb.WriteString(o.Op)
		f.child(o.Args[0], o, false)
	default:
		f.child(o.Args[0], o, true)
		f.sb.WriteString(f.opText(o.Op))
		f.child(o.Args[1], o, false)
	}
}

func (f *formatter) opText(op string) string {
	if f.style == Eval {
		if op == "^" {
			return "**"
		}
		return op
	}
	if op == "^" {
		return op
	}
	return " " + op + " "
}

// child writes n as an operand of parent, adding parentheses when needed.
func (f *formatter) child(n Node, parent Node, left bool) {
	n = f.bare(n)
	if f.needsParens(n, parent, left) {
		f.sb.WriteByte('(')
		f.node(n, parent)
		f.sb.WriteByte(')')
		return
	}
	f.node(n, parent)
}

func (f *formatter) needsParens(n Node, parent Node, left bool) bool {
	pc := precedence(n)
	if pc == precAtom {
		return false
	}
	if f.style == Eval {
		return f.needsParensEval(n, parent, left)
	}

	op, ok := parent.(*Operator)
	if !ok {
		return false
	}
	pp := precedence(op)
	switch {
	case op.Postfix:
		return pc < precPostfix
	case op.Unary():
		// Keep "-(-x)" rather than "--x".
		return pc <= precUnary
	case op.Op == "^":
		if left {
			return pc <= precPower
		}
		return pc < precUnary
	case left:
		return pc < pp
	default:
		return pc <= pp
	}
}

func (f *formatter) needsParensEval(n Node, parent Node, left bool) bool {
	pc := precedence(n)
	if pc == precUnary {
		return true
	}
	op, ok := parent.(*Operator)
	if !ok {
		return false
	}
	pp := precedence(op)
	switch {
	case op.Postfix:
		return pc < precPostfix
	case op.Unary():
		return pc <= precPower
	case op.Op == "^":
		return true
	default:
		return pc <= pp
	}
}
