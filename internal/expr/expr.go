// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package expr defines the formula syntax tree.
package expr

// Kind identifies the node type of a syntax tree node.
type Kind int

const (
	SymbolNode Kind = iota
	OperatorNode
	FunctionNode
	ParenthesisNode
	ConstantNode

	// Kinds the grammar can produce but no plottable formula may contain.
	AssignmentNode
	FunctionAssignmentNode
	BlockNode
)

// String returns the name of the node kind.
func (k Kind) String() string {
	switch k {
	case SymbolNode:
		return "SymbolNode"
	case OperatorNode:
		return "OperatorNode"
	case FunctionNode:
		return "FunctionNode"
	case ParenthesisNode:
		return "ParenthesisNode"
	case ConstantNode:
		return "ConstantNode"
	case AssignmentNode:
		return "AssignmentNode"
	case FunctionAssignmentNode:
		return "FunctionAssignmentNode"
	case BlockNode:
		return "BlockNode"
	}
	return "UnknownNode"
}

// Node is the interface all syntax tree nodes implement.
type Node interface {
	// Kind returns the node type.
	Kind() Kind
	// Children returns the direct sub-nodes in source order.
	Children() []Node
	// Pos returns the byte offset where the node starts in the parsed text.
	Pos() int
}

// Symbol is a bare identifier. Callee is set when the symbol names the
// function of an enclosing Call.
type Symbol struct {
	Name   string
	Callee bool
	At     int
}

func (s *Symbol) Kind() Kind       { return SymbolNode }
func (s *Symbol) Children() []Node { return nil }
func (s *Symbol) Pos() int         { return s.At }

// Constant is a numeric literal.
type Constant struct {
	Value float64
	Text  string
	At    int
}

func (c *Constant) Kind() Kind       { return ConstantNode }
func (c *Constant) Children() []Node { return nil }
func (c *Constant) Pos() int         { return c.At }

// Operator is a unary prefix, postfix or binary operator application.
// Exponentiation is always stored as "^", whichever spelling was parsed.
type Operator struct {
	Op      string
	Args    []Node
	Postfix bool
	At      int
}

func (o *Operator) Kind() Kind       { return OperatorNode }
func (o *Operator) Children() []Node { return o.Args }
func (o *Operator) Pos() int         { return o.At }

// Unary returns true for single-operand operators.
func (o *Operator) Unary() bool { return len(o.Args) == 1 }

// Call is a function application name(args...).
type Call struct {
	Fn   *Symbol
	Args []Node
}

func (c *Call) Kind() Kind { return FunctionNode }
func (c *Call) Children() []Node {
	out := make([]Node, 0, len(c.Args)+1)
	out = append(out, c.Fn)
	return append(out, c.Args...)
}
func (c *Call) Pos() int { return c.Fn.At }

// Paren is an explicit parenthesized group.
type Paren struct {
	Inner Node
	At    int
}

func (p *Paren) Kind() Kind       { return ParenthesisNode }
func (p *Paren) Children() []Node { return []Node{p.Inner} }
func (p *Paren) Pos() int         { return p.At }

// Assignment is name = value.
type Assignment struct {
	Target *Symbol
	Value  Node
}

func (a *Assignment) Kind() Kind       { return AssignmentNode }
func (a *Assignment) Children() []Node { return []Node{a.Target, a.Value} }
func (a *Assignment) Pos() int         { return a.Target.At }

// FunctionAssignment is name(params) = body.
type FunctionAssignment struct {
	Name   *Symbol
	Params []Node
	Body   Node
}

func (f *FunctionAssignment) Kind() Kind { return FunctionAssignmentNode }
func (f *FunctionAssignment) Children() []Node {
	out := []Node{f.Name}
	out = append(out, f.Params...)
	return append(out, f.Body)
}
func (f *FunctionAssignment) Pos() int { return f.Name.At }

// Block is a sequence of statements separated by ';' or newlines.
type Block struct {
	Stmts []Node
	At    int
}

func (b *Block) Kind() Kind       { return BlockNode }
func (b *Block) Children() []Node { return b.Stmts }
func (b *Block) Pos() int         { return b.At }

// VisitFunc is called for every node with its parent (nil for the root).
// Returning a non-nil error stops the walk.
type VisitFunc func(n, parent Node) error

// Walk traverses the tree depth-first in pre-order.
func Walk(root Node, fn VisitFunc) error {
	return walk(root, nil, fn)
}

func walk(n, parent Node, fn VisitFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(n, parent); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := walk(c, n, fn); err != nil {
			return err
		}
	}
	return nil
}

