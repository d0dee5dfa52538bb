package ast

import (
	"errors"
	"fmt"
)

// Check validates an AST without modifying it.
type Check interface {
	Name() string
	Check(prog *Program) error
}

// CheckChain runs checks in order, stopping at the first error.
type CheckChain []Check

// Run executes each check in sequence. Returns nil if all pass.
func (cc CheckChain) Run(prog *Program) error {
	for _, c := range cc {
		if err := c.Check(prog); err != nil {
			return err
		}
	}
	return nil
}

// ErrTooDeep is returned by MaxDepth when calls nest past the limit.
var ErrTooDeep = errors.New("call nesting too deep")

// DepthError names the call at which the limit was crossed.
type DepthError struct {
	Limit int
	Call  string
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%v: %s exceeds %d levels", ErrTooDeep, e.Call, e.Limit)
}

func (e *DepthError) Unwrap() error { return ErrTooDeep }

// MaxDepth rejects programs whose calls nest deeper than Limit. A
// top-level call is depth 1. A Limit of zero or less disables the check.
type MaxDepth struct {
	Limit int
}

func (m MaxDepth) Name() string { return "max-depth" }

func (m MaxDepth) Check(prog *Program) error {
	if m.Limit <= 0 {
		return nil
	}
	depth := 0
	return Walk(prog, Hooks{
		KindCallExpression: {
			Enter: func(n, _ Node) error {
				depth++
				if depth > m.Limit {
					return &DepthError{Limit: m.Limit, Call: n.(*CallExpression).Name}
				}
				return nil
			},
			Exit: func(Node, Node) error {
				depth--
				return nil
			},
		},
	})
}
