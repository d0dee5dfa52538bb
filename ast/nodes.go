// Package ast defines the source-form syntax tree produced by the parser
// and a generic hook-driven walker over it.
package ast

import "fmt"

// Kind tags each node variant. The set is closed: Walk, and every
// consumer built on it, switches over exactly these values.
type Kind int

const (
	KindProgram Kind = iota
	KindCallExpression
	KindNumberLiteral
	KindStringLiteral
)

// Kinds lists every node kind in declaration order.
var Kinds = []Kind{KindProgram, KindCallExpression, KindNumberLiteral, KindStringLiteral}

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindCallExpression:
		return "CallExpression"
	case KindNumberLiteral:
		return "NumberLiteral"
	case KindStringLiteral:
		return "StringLiteral"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is the interface for all source AST nodes.
type Node interface {
	Kind() Kind
	node()
}

// Program is the root node. There is exactly one per compilation.
type Program struct {
	Body []Node
}

// CallExpression represents (name param...). Params hold literals or
// nested calls.
type CallExpression struct {
	Name   string
	Params []Node
}

// NumberLiteral keeps the digit run exactly as written.
type NumberLiteral struct {
	Value string
}

// StringLiteral keeps the raw text between the quotes.
type StringLiteral struct {
	Value string
}

func (p *Program) node()        {}
func (c *CallExpression) node() {}
func (n *NumberLiteral) node()  {}
func (s *StringLiteral) node()  {}

func (p *Program) Kind() Kind        { return KindProgram }
func (c *CallExpression) Kind() Kind { return KindCallExpression }
func (n *NumberLiteral) Kind() Kind  { return KindNumberLiteral }
func (s *StringLiteral) Kind() Kind  { return KindStringLiteral }
