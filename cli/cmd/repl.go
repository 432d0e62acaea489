package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/catlang/cli/cmd/repl"
	"github.com/ardnew/catlang/log"
)

// Repl runs an interactive session.
type Repl struct {
	Preload []string `help:"Script files to run into the session first" name:"preload" placeholder:"FILE"`

	std stdio `kong:"-"`
}

// Run executes the repl command. The terminal interface is used when both
// stdin and stdout are terminals; otherwise lines are read from stdin.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session := repl.NewSession(log.Default(), optionsFrom(ctx)...)

	srcs, closeAll, err := openSources(ctx, r.std, r.Preload)
	if err != nil {
		return err
	}
	defer closeAll()

	for _, src := range srcs {
		if _, err := session.Load(ctx, src.name, src); err != nil {
			return err
		}

		log.DebugContext(ctx, "preloaded", slog.String("source", src.name))
	}

	if r.interactive() {
		return repl.Run(ctx, session, kongVar(ctx, CacheIdentifier))
	}

	return repl.RunLines(ctx, session, r.std.stdin(), r.std.stdout(), r.std.stderr())
}

func (r *Repl) interactive() bool {
	if r.std.in != nil || r.std.out != nil {
		return false
	}

	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
