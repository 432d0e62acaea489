package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/catlang/lang"
)

// Fmt parses a script and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native catlang syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as abstract syntax tree."`
}

// parseSource parses the script named name for the format subcommand named
// format.
func parseSource(ctx context.Context, std stdio, name, format string) (*lang.Tree, error) {
	src, closeAll, err := openSource(ctx, std, name)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	tree, err := lang.ParseReader(ctx, src, langOptions(ctx)...)
	if err != nil {
		return nil, lang.ErrParse.Wrap(err).
			With(slog.String("format", format), slog.String("source", src.name))
	}

	return tree, nil
}

// Native formats input as native catlang syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
	Indent int    `       default:"2" help:"Indent width for formatted output"            short:"i"`

	std stdio `kong:"-"`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tree, err := parseSource(ctx, f.std, f.Source, "native")
	if err != nil {
		return err
	}

	return tree.Format(ctx, f.std.stdout(), f.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
	Indent int    `       default:"2" help:"Indent width for JSON output"                 short:"i"`

	std stdio `kong:"-"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tree, err := parseSource(ctx, j.std, j.Source, "json")
	if err != nil {
		return err
	}

	return tree.FormatJSON(ctx, j.std.stdout(), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
	Indent int    `       default:"2" help:"Indent width for YAML output"                 short:"i"`

	std stdio `kong:"-"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tree, err := parseSource(ctx, y.std, y.Source, "yaml")
	if err != nil {
		return err
	}

	return tree.FormatYAML(ctx, y.std.stdout(), y.Indent)
}

// AST prints the abstract syntax tree of the input.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`

	std stdio `kong:"-"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tree, err := parseSource(ctx, a.std, a.Source, "ast")
	if err != nil {
		return err
	}

	return tree.Print(a.std.stdout())
}
