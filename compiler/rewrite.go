package compiler

import (
	"github.com/rubiojr/sexpc/ast"
)

// Rewrite lowers a source program into a new C-style output tree. The
// source tree is only read: the output collection each source node feeds
// is tracked in a map keyed by node identity, so no bookkeeping is stored
// on the source nodes themselves.
func Rewrite(prog *ast.Program) (*CProgram, error) {
	if prog == nil {
		return nil, &ast.TraversalError{Err: ast.ErrUnsupportedNodeKind}
	}
	out := &CProgram{}
	r := &rewriter{contexts: map[ast.Node]*[]CNode{prog: &out.Body}}
	if err := ast.Walk(prog, r.hooks()); err != nil {
		return nil, err
	}
	return out, nil
}

// rewriter holds the state of a single Rewrite call.
type rewriter struct {
	// contexts maps a source node to the output slice its children
	// append into.
	contexts map[ast.Node]*[]CNode
}

func (r *rewriter) hooks() ast.Hooks {
	return ast.Hooks{
		ast.KindNumberLiteral: {Enter: r.enterNumber},
		ast.KindStringLiteral: {Enter: r.enterString},
		ast.KindCallExpression: {Enter: r.enterCall},
	}
}

func (r *rewriter) enterNumber(n, parent ast.Node) error {
	return r.emit(parent, &CNumberLit{Value: n.(*ast.NumberLiteral).Value})
}

func (r *rewriter) enterString(n, parent ast.Node) error {
	return r.emit(parent, &CStringLit{Value: n.(*ast.StringLiteral).Value})
}

// enterCall opens a new argument list for the call's params. A call
// nested in another call becomes an argument; any other call becomes a
// statement.
func (r *rewriter) enterCall(n, parent ast.Node) error {
	call := &CCallExpr{
		Callee:    &CIdent{Name: n.(*ast.CallExpression).Name},
		Arguments: []CNode{},
	}
	r.contexts[n] = &call.Arguments

	if parent != nil && parent.Kind() == ast.KindCallExpression {
		return r.emit(parent, call)
	}
	return r.emit(parent, &CExprStmt{Expression: call})
}

// emit appends node to the collection opened by parent. Only a program or
// a call opens one.
func (r *rewriter) emit(parent ast.Node, node CNode) error {
	dst, ok := r.contexts[parent]
	if !ok {
		return &ast.TraversalError{Err: ast.ErrUnsupportedNodeKind, Node: parent}
	}
	*dst = append(*dst, node)
	return nil
}
