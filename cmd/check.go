package cmd

import (
	"context"
	"errors"
	"fmt"
	gotoken "go/token"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/urfave/cli/v3"
	"modernc.org/scanner"
	"modernc.org/token"

	"github.com/rubiojr/sexpc/parser"
	sexpscanner "github.com/rubiojr/sexpc/scanner"
)

const sourceExt = ".sexp"

// collectFiles expands directories into the .sexp files they contain.
func collectFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", target, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), sourceExt) {
				files = append(files, filepath.Join(target, e.Name()))
			}
		}
	}
	return files, nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	targets := cmd.Args().Slice()
	if len(targets) == 0 {
		targets = []string{"."}
	}
	files, err := collectFiles(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", sourceExt)
	}

	jobs := cmd.Int("jobs")
	if jobs < 1 {
		jobs = 1
	}

	results := make([]error, len(files))
	work := make(chan int, len(files))
	for i := range files {
		work <- i
	}
	close(work)
	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				_, results[i] = newCompiler(ctx, cmd).CompileFile(files[i])
			}
		}()
	}
	wg.Wait()

	w := cmd.Root().Writer
	var errs scanner.ErrList
	for i, f := range files {
		if results[i] == nil {
			fmt.Fprintf(w, "ok   %s\n", f)
			continue
		}
		fmt.Fprintf(w, "FAIL %s\n     %v\n", f, results[i])
		pos, err := splitPosition(f, results[i])
		errs = append(errs, scanner.ErrWithPosition{Pos: pos, Err: err})
	}
	fmt.Fprintf(w, "\n%d files, %d failed\n", len(files), len(errs))

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// splitPosition separates the source position carried by a stage error
// from its message, so ErrWithPosition does not print the location twice.
// Errors without a position fall back to the bare file name.
func splitPosition(file string, err error) (gotoken.Position, error) {
	var lexErr *sexpscanner.LexError
	if errors.As(err, &lexErr) {
		return gotoken.Position(lexErr.Pos), &sexpscanner.LexError{Err: lexErr.Err, Char: lexErr.Char}
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) && parseErr.Token != nil {
		tok := *parseErr.Token
		tok.Pos = token.Position{}
		return gotoken.Position(parseErr.Token.Pos), &parser.ParseError{Err: parseErr.Err, Token: &tok}
	}
	return gotoken.Position{Filename: file}, err
}
