package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/catlang/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "edit", "clear", "quit"}

// keywords begin definitions and are offered alongside visible names.
var keywords = []string{"let", "fn"}

// isWordRune reports whether r may appear in an identifier or number.
// Everything else, including operators and braces, delimits words.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordBounds returns the word under the cursor and its byte boundaries within
// input. The word is empty when the cursor sits between two delimiters.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if !isWordRune(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if !isWordRune(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the completion candidates visible from env: every
// binding and function name followed by the keywords.
func candidates(env *lang.Env) []string {
	names := env.Names()
	slices.Sort(names)

	return append(names, keywords...)
}

// computeMatches calculates the fuzzy matches for the word at the cursor,
// ranked best first, along with the word boundaries. Words starting with a
// digit are numbers and never complete.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, wordStart, wordEnd := wordBounds(m.input.Value(), m.input.Position())

	if word == "" {
		return nil, wordStart, wordEnd
	}

	if r, _ := utf8.DecodeRuneInString(word); unicode.IsDigit(r) {
		return nil, wordStart, wordEnd
	}

	list := ctrlCommands
	if m.mode == modeEval {
		list = candidates(m.session.Env())
	}

	return fuzzy.Find(word, list), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	isFunc func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := sepWidth + lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx, isFunc(match.Str))

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		last := i == len(matches)-1

		if i > 0 && used+entryWidth > width ||
			i > 0 && !last && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with its matched characters
// highlighted. Functions are marked with a trailing "/".
func renderCandidate(match fuzzy.Match, selected, function bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		style := baseStyle
		if slices.Contains(match.MatchedIndexes, i) {
			style = highlightStyle
		}

		b.WriteString(style.Render(string(r)))
	}

	if function {
		b.WriteString(baseStyle.Render("/"))
	}

	return b.String()
}
