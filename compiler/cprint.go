package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedNodeKind is returned when the printer meets a node it has
// no rule for. Rewrite never produces one.
var ErrUnsupportedNodeKind = errors.New("unsupported node kind")

// RenderError wraps a printer failure with the offending node.
type RenderError struct {
	Err  error
	Node CNode
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render: %v: %T", e.Err, e.Node)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Render serializes an output tree to C-style text. Top-level statements
// are joined by a single newline with none trailing. String literals are
// wrapped in double quotes without escaping, so content holding a quote
// does not round-trip.
func Render(n CNode) (string, error) {
	p := &cPrinter{}
	if err := p.print(n); err != nil {
		return "", err
	}
	return p.sb.String(), nil
}

type cPrinter struct {
	sb strings.Builder
}

func (p *cPrinter) print(n CNode) error {
	switch nd := n.(type) {
	case *CProgram:
		return p.list(nd.Body, "\n")
	case *CExprStmt:
		if err := p.print(nd.Expression); err != nil {
			return err
		}
		p.sb.WriteByte(';')
	case *CCallExpr:
		if nd.Callee == nil {
			return &RenderError{Err: ErrUnsupportedNodeKind, Node: nd.Callee}
		}
		if err := p.print(nd.Callee); err != nil {
			return err
		}
		p.sb.WriteByte('(')
		if err := p.list(nd.Arguments, ", "); err != nil {
			return err
		}
		p.sb.WriteByte(')')
	case *CIdent:
		p.sb.WriteString(nd.Name)
	case *CNumberLit:
		p.sb.WriteString(nd.Value)
	case *CStringLit:
		p.sb.WriteByte('"')
		p.sb.WriteString(nd.Value)
		p.sb.WriteByte('"')
	default:
		return &RenderError{Err: ErrUnsupportedNodeKind, Node: n}
	}
	return nil
}

func (p *cPrinter) list(nodes []CNode, sep string) error {
	for i, n := range nodes {
		if i > 0 {
			p.sb.WriteString(sep)
		}
		if err := p.print(n); err != nil {
			return err
		}
	}
	return nil
}
