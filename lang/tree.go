package lang

import (
	"context"
	"log/slog"
	"strings"
)

// Tree is a parsed program: one statement from [ParseString], or the
// statements of a script from [ParseScript] or [ParseReader].
//
// A Tree is immutable and may be evaluated any number of times, against any
// number of environments.
type Tree struct {
	opts       options
	Source     string
	Statements []Statement
	texts      []string // source text of each statement
}

// Eval evaluates the statements of t in order against env and returns the
// value of the last one, or Unit if t is empty. Evaluation stops at the first
// error.
func (t *Tree) Eval(ctx context.Context, env *Env) (Value, error) {
	result := Unit

	for i, stmt := range t.Statements {
		v, err := env.Eval(ctx, stmt)
		if err != nil {
			t.opts.logger.TraceContext(ctx, "eval failed",
				slog.Int("statement", i),
				slog.String("error", err.Error()),
			)

			return Unit, err
		}

		result = v
	}

	t.opts.logger.TraceContext(ctx, "eval complete",
		slog.Int("statement_count", len(t.Statements)),
		slog.Any("result", result),
	)

	return result, nil
}

// Len returns the number of top-level statements in t.
func (t *Tree) Len() int { return len(t.Statements) }

// Text returns the source text statement i was parsed from, without
// surrounding whitespace. Unlike the statement's String form it keeps the
// line breaks that separate statements inside blocks.
func (t *Tree) Text(i int) string {
	if i < len(t.texts) {
		return t.texts[i]
	}

	return t.Statements[i].String()
}

// String renders each statement of t on its own line.
func (t *Tree) String() string {
	lines := make([]string, len(t.Statements))
	for i, stmt := range t.Statements {
		lines[i] = stmt.String()
	}

	return strings.Join(lines, "\n")
}

// Run parses line as a single statement and evaluates it against env.
//
// Failures are reported as [ErrParse] or [ErrEvaluate] wrapping the
// underlying error, so their messages read "Parse error: ..." and
// "Evaluation error: ...".
func Run(ctx context.Context, env *Env, line string, opts ...Option) (Value, error) {
	tree, err := ParseString(ctx, line, opts...)
	if err != nil {
		return Unit, ErrParse.Wrap(err)
	}

	v, err := tree.Eval(ctx, env)
	if err != nil {
		return Unit, ErrEvaluate.Wrap(err)
	}

	return v, nil
}

// RunScript parses src as a script and evaluates it against env, reporting
// failures the same way as [Run].
func RunScript(ctx context.Context, env *Env, src string, opts ...Option) (Value, error) {
	tree, err := ParseScript(ctx, src, opts...)
	if err != nil {
		return Unit, ErrParse.Wrap(err)
	}

	v, err := tree.Eval(ctx, env)
	if err != nil {
		return Unit, ErrEvaluate.Wrap(err)
	}

	return v, nil
}
