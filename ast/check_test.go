package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nest builds (f (f (f ... 1))) with depth calls.
func nest(depth int) *Program {
	var inner Node = &NumberLiteral{Value: "1"}
	for range depth {
		inner = &CallExpression{Name: "f", Params: []Node{inner}}
	}
	return &Program{Body: []Node{inner}}
}

type checkFunc struct {
	name string
	fn   func(*Program) error
}

func (c checkFunc) Name() string              { return c.name }
func (c checkFunc) Check(prog *Program) error { return c.fn(prog) }

func TestMaxDepth(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		depth int
		fails bool
	}{
		{"disabled", 0, 50, false},
		{"negative disables", -1, 50, false},
		{"at limit", 3, 3, false},
		{"below limit", 3, 1, false},
		{"over limit", 3, 4, true},
		{"no calls", 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MaxDepth{Limit: tt.limit}.Check(nest(tt.depth))
			if !tt.fails {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTooDeep))
			var depthErr *DepthError
			require.True(t, errors.As(err, &depthErr))
			assert.Equal(t, tt.limit, depthErr.Limit)
			assert.Equal(t, "f", depthErr.Call)
		})
	}
}

func TestMaxDepthCountsSiblingsSeparately(t *testing.T) {
	// (a (b 1) (c 2)) is two levels deep even though it has three calls.
	prog := &Program{Body: []Node{
		&CallExpression{Name: "a", Params: []Node{
			&CallExpression{Name: "b", Params: []Node{&NumberLiteral{Value: "1"}}},
			&CallExpression{Name: "c", Params: []Node{&NumberLiteral{Value: "2"}}},
		}},
		&CallExpression{Name: "d"},
	}}
	assert.NoError(t, MaxDepth{Limit: 2}.Check(prog))
	assert.Error(t, MaxDepth{Limit: 1}.Check(prog))
}

func TestCheckChain(t *testing.T) {
	var order []string
	pass := func(name string) Check {
		return checkFunc{name, func(*Program) error {
			order = append(order, name)
			return nil
		}}
	}
	boom := errors.New("boom")
	fail := checkFunc{"fail", func(*Program) error {
		order = append(order, "fail")
		return boom
	}}

	assert.NoError(t, CheckChain{}.Run(&Program{}))

	err := CheckChain{pass("first"), fail, pass("never")}.Run(&Program{})
	assert.Same(t, boom, err)
	assert.Equal(t, []string{"first", "fail"}, order)
}

func TestMaxDepthName(t *testing.T) {
	assert.Equal(t, "max-depth", MaxDepth{}.Name())
}
