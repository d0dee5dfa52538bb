// Package compiler lowers the s-expression source AST into a C-style
// output AST and prints it. It also wires the whole pipeline together:
// scanner, parser, rewriter, printer.
package compiler

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/rubiojr/sexpc/ast"
	"github.com/rubiojr/sexpc/parser"
	"github.com/rubiojr/sexpc/scanner"
)

// Compile translates s-expression text to C-style call syntax, e.g.
// "(add 2 3)" becomes "add(2, 3);". The first stage error is returned
// unchanged and no partial output is produced.
func Compile(src string) (string, error) {
	c := &Compiler{}
	return c.CompileSource(src, "")
}

// Compiler runs the pipeline with optional logging and checks. The zero
// value is ready to use and logs nothing.
type Compiler struct {
	// Log receives one debug event per stage.
	Log zerolog.Logger
	// MaxDepth, when positive, rejects programs whose calls nest deeper.
	MaxDepth int
}

// CompileResult holds every intermediate product of a compilation.
type CompileResult struct {
	Tokens []scanner.Token
	Source *ast.Program
	Target *CProgram
	Output string
}

// Run compiles src and keeps the intermediate results. The name is only
// used in error positions.
func (c *Compiler) Run(src, name string) (*CompileResult, error) {
	toks, err := scanner.New(name, src).Tokenize()
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("file", name).Int("tokens", len(toks)).Msg("tokenized")

	prog, err := parser.Parse(toks)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("file", name).Int("forms", len(prog.Body)).Msg("parsed")

	if err := c.checks().Run(prog); err != nil {
		return nil, err
	}

	target, err := Rewrite(prog)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("file", name).Int("statements", len(target.Body)).Msg("rewritten")

	out, err := Render(target)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("file", name).Int("bytes", len(out)).Msg("rendered")

	return &CompileResult{Tokens: toks, Source: prog, Target: target, Output: out}, nil
}

// CompileSource compiles src and returns only the rendered text.
func (c *Compiler) CompileSource(src, name string) (string, error) {
	res, err := c.Run(src, name)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// CompileFile reads and compiles a source file.
func (c *Compiler) CompileFile(filename string) (string, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	return c.CompileSource(string(src), filename)
}

func (c *Compiler) checks() ast.CheckChain {
	var cc ast.CheckChain
	if c.MaxDepth > 0 {
		cc = append(cc, ast.MaxDepth{Limit: c.MaxDepth})
	}
	return cc
}
