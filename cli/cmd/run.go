package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/catlang/lang"
	"github.com/ardnew/catlang/log"
)

// Run evaluates script files in order against one environment.
type Run struct {
	Files []string `arg:"" help:"Script files resolved against the search path, or '-' for stdin" name:"file"`

	std stdio `kong:"-"`
}

// Run executes the run command. The value of the last statement is printed
// unless it is Unit.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts := langOptions(ctx)

	srcs, closeAll, err := openSources(ctx, r.std, r.Files)
	if err != nil {
		return err
	}
	defer closeAll()

	env := lang.NewEnv(opts...)
	result := lang.Unit

	for _, src := range srcs {
		tree, err := lang.ParseReader(ctx, src, opts...)
		if err != nil {
			return lang.ErrParse.Wrap(err).With(slog.String("source", src.name))
		}

		result, err = tree.Eval(ctx, env)
		if err != nil {
			return lang.ErrEvaluate.Wrap(err).With(slog.String("source", src.name))
		}

		log.DebugContext(ctx, "source complete",
			slog.String("source", src.name),
			slog.Int("statements", tree.Len()),
		)
	}

	if !result.IsUnit() {
		_, err = fmt.Fprintln(r.std.stdout(), result)
	}

	return err
}
