package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/catlang/pkg"
)

const defaultEditor = "vi"

// ErrEditDeclined is returned when the user declines to re-edit a transcript
// that failed to evaluate.
var ErrEditDeclined = errors.New("decline edit")

// editCommand implements [tea.ExecCommand] for the edit-evaluate-retry loop.
// It writes the session transcript to a temp file, opens the user's editor,
// and replaces the session state with the edited script. On error the user
// is prompted to re-edit; declining returns [ErrEditDeclined].
type editCommand struct {
	session *Session
	ctxFunc func() context.Context
	edited  bool
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. An emptied file cancels the edit and leaves
// the session unchanged.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), pkg.Name+"-repl-*.cat")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Close(); err != nil {
		return err
	}

	content := c.session.Source()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		evalErr := c.session.Replace(ctx, content)

		c.session.logger.TraceContext(ctx, "editor evaluate attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", evalErr == nil),
		)

		if evalErr == nil {
			c.edited = true

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", evalErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor opens path in $EDITOR and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	// $EDITOR may carry arguments, e.g. "code --wait".
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
