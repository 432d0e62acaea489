package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/catlang/lang"
	"github.com/ardnew/catlang/log"
)

// Session is the state shared by every line evaluated in one REPL run: the
// top-level environment and the transcript of lines that evaluated without
// error.
//
// A Session is not safe for concurrent use.
type Session struct {
	env        *lang.Env
	opts       []lang.Option
	logger     log.Logger
	transcript []string
}

// NewSession returns a Session with an empty environment. The options are
// applied to the environment and to every parse.
func NewSession(logger log.Logger, opts ...lang.Option) *Session {
	opts = append(opts[:len(opts):len(opts)], lang.WithLogger(logger))

	return &Session{
		env:    lang.NewEnv(opts...),
		opts:   opts,
		logger: logger,
	}
}

// Env returns the top-level environment of s.
func (s *Session) Env() *lang.Env { return s.env }

// Transcript returns the lines evaluated successfully, in order.
func (s *Session) Transcript() []string {
	return append([]string(nil), s.transcript...)
}

// Eval parses and evaluates one line. Errors are wrapped as [lang.ErrParse]
// or [lang.ErrEvaluate]. A line that fails leaves the environment as it was.
func (s *Session) Eval(ctx context.Context, line string) (lang.Value, error) {
	v, err := lang.Run(ctx, s.env, line, s.opts...)

	s.logger.TraceContext(ctx, "repl eval",
		slog.String("input", line),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return lang.Unit, err
	}

	s.transcript = append(s.transcript, line)

	return v, nil
}

// Load evaluates the script read from r into the environment of s, one
// statement at a time. Each statement that evaluates is added to the
// transcript in its source form, so when a later statement fails the
// transcript still matches the environment.
func (s *Session) Load(ctx context.Context, name string, r io.Reader) (lang.Value, error) {
	tree, err := lang.ParseReader(ctx, r, s.opts...)
	if err != nil {
		return lang.Unit, lang.ErrParse.Wrap(err).With(slog.String("source", name))
	}

	v := lang.Unit

	for i, stmt := range tree.Statements {
		if v, err = s.env.Eval(ctx, stmt); err != nil {
			return lang.Unit, lang.ErrEvaluate.Wrap(err).With(
				slog.String("source", name),
				slog.Int("statement", i+1),
			)
		}

		s.transcript = append(s.transcript, tree.Text(i))
	}

	s.logger.DebugContext(ctx, "repl load",
		slog.String("source", name),
		slog.Int("statements", tree.Len()),
	)

	return v, nil
}

// Replace evaluates src as a script in a fresh environment and, if it
// succeeds, makes that environment and the statements of src the state of s.
// On error s is unchanged.
func (s *Session) Replace(ctx context.Context, src string) error {
	tree, err := lang.ParseScript(ctx, src, s.opts...)
	if err != nil {
		return lang.ErrParse.Wrap(err)
	}

	env := lang.NewEnv(s.opts...)

	if _, err := tree.Eval(ctx, env); err != nil {
		return lang.ErrEvaluate.Wrap(err)
	}

	transcript := make([]string, tree.Len())
	for i := range tree.Statements {
		transcript[i] = tree.Text(i)
	}

	s.env, s.transcript = env, transcript

	return nil
}

// Listing returns one line per top-level binding and function, bindings
// first, each in name order.
func (s *Session) Listing() []string {
	var lines []string

	for name, v := range s.env.Bindings() {
		lines = append(lines, fmt.Sprintf("let %s = %s", name, v))
	}

	for fd := range s.env.Funcs() {
		lines = append(lines, "fn "+fd.Signature())
	}

	return lines
}

// Source returns the transcript as a script, one statement per line.
func (s *Session) Source() string {
	if len(s.transcript) == 0 {
		return ""
	}

	return strings.Join(s.transcript, "\n") + "\n"
}
