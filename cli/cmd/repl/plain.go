package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// linePrompt is written before each line is read in plain mode.
const linePrompt = "-> "

// RunLines runs the plain read-eval-print loop used when input is not a
// terminal. Each line read from in is trimmed and evaluated. Values other than
// Unit are written to out and errors to errOut; an error never ends the loop.
//
// RunLines returns when in reaches end of file or ctx is done.
func RunLines(ctx context.Context, s *Session, in io.Reader, out, errOut io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		if _, err := io.WriteString(out, linePrompt); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if !scanner.Scan() {
			// Leave the shell prompt on its own line.
			_, _ = io.WriteString(out, "\n")

			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v, err := s.Eval(ctx, line)
		if err != nil {
			fmt.Fprintln(errOut, err)

			continue
		}

		if !v.IsUnit() {
			fmt.Fprintln(out, v)
		}
	}
}
