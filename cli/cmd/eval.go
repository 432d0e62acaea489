package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/catlang/lang"
)

// Eval evaluates statements given on the command line.
type Eval struct {
	Statements []string `arg:"" help:"Statements evaluated in order in one environment" name:"stmt"`

	std stdio `kong:"-"`
}

// Run executes the eval command. Each statement that yields a value other
// than Unit prints it on its own line. Surrounding whitespace is ignored and
// blank statements are skipped.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := langOptions(ctx)
	env := lang.NewEnv(opts...)

	for i, stmt := range e.Statements {
		// Arguments are read like REPL lines.
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		v, err := lang.Run(ctx, env, stmt, opts...)
		if err != nil {
			var le *lang.Error
			if errors.As(err, &le) {
				return le.With(slog.Int("argument", i+1))
			}

			return err
		}

		if v.IsUnit() {
			continue
		}

		if _, err := fmt.Fprintln(e.std.stdout(), v); err != nil {
			return err
		}
	}

	return nil
}
