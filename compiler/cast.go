package compiler

// C-style output AST types. The rewriter builds a CProgram tree from the
// source AST; the printer serializes it to text. Nodes are never shared
// between trees and are not modified once the rewriter has finished.

// CNode is implemented by every output node.
type CNode interface{ cNode() }

// CProgram is the output root: one statement per top-level form.
type CProgram struct {
	Body []CNode
}

// CExprStmt represents: expression;
type CExprStmt struct {
	Expression CNode
}

// CCallExpr represents: callee(arguments...)
type CCallExpr struct {
	Callee    *CIdent
	Arguments []CNode
}

// CIdent is a bare identifier.
type CIdent struct {
	Name string
}

// CNumberLit carries the digit text unchanged.
type CNumberLit struct {
	Value string
}

// CStringLit carries the unquoted string content unchanged.
type CStringLit struct {
	Value string
}

func (*CProgram) cNode()   {}
func (*CExprStmt) cNode()  {}
func (*CCallExpr) cNode()  {}
func (*CIdent) cNode()     {}
func (*CNumberLit) cNode() {}
func (*CStringLit) cNode() {}
