package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rubiojr/sexpc/compiler"
	"github.com/rubiojr/sexpc/scanner"
)

// Execute runs the sexpc CLI with the given version string.
func Execute(version string) {
	cmd := New(version)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		red, reset := "\033[31m", "\033[0m"
		if !colorEnabled(cmd.Bool("no-color")) {
			red, reset = "", ""
		}
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", red, reset, err)
		os.Exit(1)
	}
}

// New builds the command tree. Output goes to the command's Writer and
// ErrWriter, which default to stdout and stderr.
func New(version string) *cli.Command {
	return &cli.Command{
		Name:                   "sexpc",
		Usage:                  "Translate s-expressions into C-style function calls",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log every compilation stage to stderr",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "Reject programs whose calls nest deeper than this (0 disables)",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Before: setupLogger,
		// Allow `sexpc prog.sexp` as shorthand for `sexpc emit prog.sexp`
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() > 0 && strings.HasSuffix(cmd.Args().First(), sourceExt) {
				return emitAction(ctx, cmd)
			}
			return cli.DefaultShowRootCommandHelp(cmd)
		},
		Commands: []*cli.Command{
			{
				Name:      "emit",
				Usage:     "Print the translation of a file (- reads stdin)",
				ArgsUsage: "<file.sexp>",
				Action:    emitAction,
			},
			{
				Name:      "eval",
				Usage:     "Translate an expression given on the command line",
				ArgsUsage: "<expr>...",
				Action:    evalAction,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a file",
				ArgsUsage: "<file.sexp>",
				Action:    tokensAction,
			},
			{
				Name:      "ast",
				Usage:     "Dump the syntax tree of a file",
				ArgsUsage: "<file.sexp>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "target",
						Aliases: []string{"t"},
						Usage:   "Dump the rewritten C-style tree instead of the source tree",
					},
				},
				Action: astAction,
			},
			{
				Name:      "check",
				Usage:     "Translate every .sexp file and report failures",
				ArgsUsage: "[file.sexp | directory]...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "jobs",
						Aliases: []string{"j"},
						Usage:   "Files compiled in parallel",
						Value:   1,
					},
				},
				Action: checkAction,
			},
		},
	}
}

// setupLogger stores a console logger in the context. Actions read it
// back with zerolog.Ctx.
func setupLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := zerolog.WarnLevel
	if cmd.Bool("debug") {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:     cmd.Root().ErrWriter,
		NoColor: !colorEnabled(cmd.Bool("no-color")) || cmd.Root().ErrWriter != os.Stderr,
	}
	logger := zerolog.New(zerolog.SyncWriter(out)).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx), nil
}

// colorEnabled reports whether diagnostics on stderr may use ANSI colors.
func colorEnabled(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func newCompiler(ctx context.Context, cmd *cli.Command) *compiler.Compiler {
	return &compiler.Compiler{
		Log:      *zerolog.Ctx(ctx),
		MaxDepth: int(cmd.Int("max-depth")),
	}
}

// readSource returns the named file's contents, or stdin for "-".
func readSource(cmd *cli.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.Root().Reader)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}

func fileArg(cmd *cli.Command, usage string) (string, error) {
	if cmd.NArg() < 1 {
		return "", fmt.Errorf("usage: sexpc %s", usage)
	}
	return cmd.Args().First(), nil
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	name, err := fileArg(cmd, "emit <file.sexp>")
	if err != nil {
		return err
	}
	src, err := readSource(cmd, name)
	if err != nil {
		return err
	}
	out, err := newCompiler(ctx, cmd).CompileSource(src, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, out)
	return nil
}

func evalAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: sexpc eval <expr>...")
	}
	src := strings.Join(cmd.Args().Slice(), " ")
	out, err := newCompiler(ctx, cmd).CompileSource(src, "")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, out)
	return nil
}

func tokensAction(_ context.Context, cmd *cli.Command) error {
	name, err := fileArg(cmd, "tokens <file.sexp>")
	if err != nil {
		return err
	}
	src, err := readSource(cmd, name)
	if err != nil {
		return err
	}
	toks, err := scanner.New(name, src).Tokenize()
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	for _, tok := range toks {
		fmt.Fprintf(w, "%d:%d\t%s\n", tok.Pos.Line, tok.Pos.Column, tok)
	}
	return nil
}

func astAction(ctx context.Context, cmd *cli.Command) error {
	name, err := fileArg(cmd, "ast [--target] <file.sexp>")
	if err != nil {
		return err
	}
	src, err := readSource(cmd, name)
	if err != nil {
		return err
	}
	res, err := newCompiler(ctx, cmd).Run(src, name)
	if err != nil {
		return err
	}
	var tree any = res.Source
	if cmd.Bool("target") {
		tree = res.Target
	}
	_, err = pretty.Fprintf(cmd.Root().Writer, "%# v\n", tree)
	return err
}
