package ast

import (
	"errors"
	"fmt"
)

// ErrUnsupportedNodeKind is returned when Walk meets a node whose children
// it does not know how to find.
var ErrUnsupportedNodeKind = errors.New("unsupported node kind")

// TraversalError wraps a walk failure with the node that caused it.
type TraversalError struct {
	Err  error
	Node Node
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("walk: %v: %s", e.Err, describe(e.Node))
}

func (e *TraversalError) Unwrap() error { return e.Err }

// HookFunc receives a node and its immediate parent. The parent of the
// root is nil.
type HookFunc func(n, parent Node) error

// Hook pairs the optional enter and exit callbacks for one node kind.
type Hook struct {
	Enter HookFunc
	Exit  HookFunc
}

// Hooks maps node kinds to callbacks. Kinds without an entry are walked
// without any callback.
type Hooks map[Kind]Hook

// Walk traverses root depth-first. For every node it calls the Enter hook
// registered for the node's kind, walks the children in order, then calls
// the Exit hook. The first error returned by a hook stops the walk and is
// returned unchanged. Walk keeps no state between calls.
//
// Recursion depth follows the nesting depth of the tree.
func Walk(root Node, hooks Hooks) error {
	return walkNode(root, nil, hooks)
}

func walkNode(n, parent Node, hooks Hooks) error {
	if isNil(n) {
		return &TraversalError{Err: ErrUnsupportedNodeKind, Node: n}
	}
	h := hooks[n.Kind()]
	if h.Enter != nil {
		if err := h.Enter(n, parent); err != nil {
			return err
		}
	}

	children, err := childrenOf(n)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := walkNode(c, n, hooks); err != nil {
			return err
		}
	}

	if h.Exit != nil {
		return h.Exit(n, parent)
	}
	return nil
}

// childrenOf is the single place that knows each kind's child list.
func childrenOf(n Node) ([]Node, error) {
	switch nd := n.(type) {
	case *Program:
		return nd.Body, nil
	case *CallExpression:
		return nd.Params, nil
	case *NumberLiteral, *StringLiteral:
		return nil, nil
	default:
		return nil, &TraversalError{Err: ErrUnsupportedNodeKind, Node: n}
	}
}

// isNil catches both a nil interface and a nil pointer of a known kind.
func isNil(n Node) bool {
	switch nd := n.(type) {
	case nil:
		return true
	case *Program:
		return nd == nil
	case *CallExpression:
		return nd == nil
	case *NumberLiteral:
		return nd == nil
	case *StringLiteral:
		return nd == nil
	}
	return false
}

func describe(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%T)", n.Kind(), n)
}
