// Package parser builds the source AST from a token sequence using
// recursive descent. Nesting depth of the input bounds the recursion.
package parser

import (
	"errors"
	"fmt"

	"github.com/rubiojr/sexpc/ast"
	"github.com/rubiojr/sexpc/scanner"
)

var (
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
)

// ParseError reports the first token the parser could not accept. Token
// is nil when the input ran out.
type ParseError struct {
	Err   error
	Token *scanner.Token
}

func (e *ParseError) Error() string {
	if e.Token == nil {
		return e.Err.Error()
	}
	if e.Token.Pos.IsValid() {
		return fmt.Sprintf("%s: %v: %s", e.Token.Pos, e.Err, e.Token)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser walks a token slice with an index cursor. The slice itself is
// never modified.
type Parser struct {
	toks []scanner.Token
	pos  int
}

// New returns a Parser positioned at the first token.
func New(toks []scanner.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses toks into a Program.
func Parse(toks []scanner.Token) (*ast.Program, error) {
	return New(toks).Parse()
}

// Parse consumes every remaining token as a sequence of top-level forms.
// On error no partial program is returned.
func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.pos < len(p.toks) {
		form, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, form)
	}
	return prog, nil
}

func (p *Parser) parseForm() (ast.Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == scanner.Number:
		return &ast.NumberLiteral{Value: tok.Text}, nil
	case tok.Kind == scanner.String:
		return &ast.StringLiteral{Value: tok.Text}, nil
	case tok.IsOpen():
		return p.parseCall()
	}
	return nil, unexpected(tok)
}

// parseCall parses the rest of a call after its opening paren.
func (p *Parser) parseCall() (ast.Node, error) {
	name, err := p.next()
	if err != nil {
		return nil, err
	}
	if name.Kind != scanner.Name {
		return nil, unexpected(name)
	}

	call := &ast.CallExpression{Name: name.Text}
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, &ParseError{Err: ErrUnexpectedEndOfInput}
		}
		if tok.IsClose() {
			p.pos++
			return call, nil
		}
		param, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		call.Params = append(call.Params, param)
	}
}

func (p *Parser) peek() (scanner.Token, bool) {
	if p.pos >= len(p.toks) {
		return scanner.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *Parser) next() (scanner.Token, error) {
	tok, ok := p.peek()
	if !ok {
		return tok, &ParseError{Err: ErrUnexpectedEndOfInput}
	}
	p.pos++
	return tok, nil
}

func unexpected(tok scanner.Token) error {
	return &ParseError{Err: ErrUnexpectedToken, Token: &tok}
}
