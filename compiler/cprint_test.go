package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsupportedNode is an output node the printer has no rule for.
type unsupportedNode struct{}

func (*unsupportedNode) cNode() {}

func TestRenderNodes(t *testing.T) {
	tests := []struct {
		name   string
		node   CNode
		expect string
	}{
		{"identifier", &CIdent{Name: "add"}, "add"},
		{"number", &CNumberLit{Value: "123"}, "123"},
		{"number keeps leading zeros", &CNumberLit{Value: "007"}, "007"},
		{"string", &CStringLit{Value: "sample string"}, `"sample string"`},
		{"empty string", &CStringLit{}, `""`},
		{"string is not escaped", &CStringLit{Value: `a"b\n`}, `"a"b\n"`},
		{"call without arguments", ccall("now"), "now()"},
		{"call", ccall("add", &CNumberLit{Value: "2"}, &CNumberLit{Value: "3"}), "add(2, 3)"},
		{"statement", &CExprStmt{Expression: ccall("f", &CStringLit{Value: "x"})}, `f("x");`},
		{"empty program", &CProgram{}, ""},
		{
			"nested call",
			&CExprStmt{Expression: ccall("add",
				&CNumberLit{Value: "2"},
				ccall("subtract", &CNumberLit{Value: "4"}, &CNumberLit{Value: "2"}),
			)},
			"add(2, subtract(4, 2));",
		},
		{
			"program joins with newline",
			&CProgram{Body: []CNode{
				&CExprStmt{Expression: ccall("a")},
				&CExprStmt{Expression: ccall("b", &CNumberLit{Value: "1"})},
				&CNumberLit{Value: "9"},
			}},
			"a();\nb(1);\n9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestRenderUnsupportedKind(t *testing.T) {
	tests := []struct {
		name string
		node CNode
	}{
		{"top level", &unsupportedNode{}},
		{"nil", nil},
		{"inside program", &CProgram{Body: []CNode{&CExprStmt{Expression: ccall("f")}, &unsupportedNode{}}}},
		{"inside arguments", ccall("f", &CNumberLit{Value: "1"}, &unsupportedNode{})},
		{"statement wrapping nothing", &CExprStmt{}},
		{"call without callee", &CCallExpr{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node)
			assert.Empty(t, got, "no partial output")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedNodeKind))
			var renderErr *RenderError
			assert.True(t, errors.As(err, &renderErr))
		})
	}
}

func TestRenderErrorMessage(t *testing.T) {
	_, err := Render(&unsupportedNode{})
	assert.Equal(t, "render: unsupported node kind: *compiler.unsupportedNode", err.Error())
}
