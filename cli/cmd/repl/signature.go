package repl

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/catlang/lang"
)

var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
)

// functionCall describes the call whose arguments are being typed at the
// cursor.
type functionCall struct {
	name     string
	argIndex int // 0-based index of the argument at the cursor
	inCall   bool
}

// blockToken stands in for a complete block argument.
const blockToken = "{}"

// detectFunctionCall reports whether the cursor is inside the argument list
// of a call to a function for which isFunc returns true.
//
// A call is a function name followed by blank-separated arguments, so the
// scan only considers the innermost open block and the text after the last
// operator, '=' or newline in it. Completed blocks count as one argument.
func detectFunctionCall(input string, cursor int, isFunc func(string) bool) functionCall {
	cursor = min(max(cursor, 0), len(input))

	var (
		frames = [][]string{nil} // completed words per open block
		word   strings.Builder
	)

	flush := func() {
		if word.Len() > 0 {
			top := len(frames) - 1
			frames[top] = append(frames[top], word.String())
			word.Reset()
		}
	}

	for _, r := range input[:cursor] {
		switch {
		case isWordRune(r):
			word.WriteRune(r)

		case r == ' ' || r == '\t':
			flush()

		case r == '{':
			flush()

			frames = append(frames, nil)

		case r == '}':
			flush()

			if len(frames) == 1 {
				frames[0] = nil

				continue
			}

			frames = frames[:len(frames)-1]
			top := len(frames) - 1
			frames[top] = append(frames[top], blockToken)

		default:
			flush()

			frames[len(frames)-1] = nil
		}
	}

	// The word under the cursor, if any, is the argument being typed and is
	// not counted.
	words := frames[len(frames)-1]
	if len(words) == 0 {
		return functionCall{}
	}

	name := words[0]
	if first, _ := utf8.DecodeRuneInString(name); name == blockToken ||
		unicode.IsDigit(first) || slices.Contains(keywords, name) || !isFunc(name) {
		return functionCall{}
	}

	return functionCall{name: name, argIndex: len(words) - 1, inCall: true}
}

// renderSignatureHint renders the call form of fd with the parameter at
// argIdx highlighted. Arguments beyond the parameter list are flagged.
func renderSignatureHint(fd *lang.FuncDef, argIdx int) string {
	if fd == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(fd.Name))

	for i, param := range fd.Params {
		b.WriteString(signatureStyle.Render(" "))

		if i == argIdx {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	if argIdx >= len(fd.Params) {
		b.WriteString(errorStyle.Render(
			fmt.Sprintf("  takes %d argument%s", len(fd.Params), plural(len(fd.Params))),
		))
	}

	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}

	return "s"
}
