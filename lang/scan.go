package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexical primitives.
//
// Every primitive is a pure function of the unconsumed input. On success it
// returns what it consumed and the remainder; on failure it returns a typed
// error and leaves the caller's input untouched.

// takeWhile splits s after the longest prefix whose runes satisfy accept.
func takeWhile(accept func(rune) bool, s string) (taken, rest string) {
	end := len(s)

	for i, r := range s {
		if !accept(r) {
			end = i

			break
		}
	}

	return s[:end], s[end:]
}

// takeWhile1 is takeWhile that fails with fail if nothing was taken.
func takeWhile1(
	accept func(rune) bool,
	s string,
	fail *Error,
) (taken, rest string, err error) {
	taken, rest = takeWhile(accept, s)
	if taken == "" {
		return "", s, fail.Wrap(near(s))
	}

	return taken, rest, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

func isIDStart(r rune) bool { return r < utf8.RuneSelf && unicode.IsLetter(r) }

func isIDContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// extractDigits consumes a maximal run of ASCII digits.
func extractDigits(s string) (digits, rest string, err error) {
	return takeWhile1(isDigit, s, ErrExpectedDigits)
}

// extractWhitespace consumes a possibly empty run of whitespace.
func extractWhitespace(s string) (ws, rest string) {
	return takeWhile(unicode.IsSpace, s)
}

// extractWhitespace1 consumes a non-empty run of whitespace.
func extractWhitespace1(s string) (ws, rest string, err error) {
	return takeWhile1(unicode.IsSpace, s, ErrExpectedSpace)
}

// extractSpaces1 consumes a non-empty run of blanks on the current line.
func extractSpaces1(s string) (ws, rest string, err error) {
	return takeWhile1(isBlank, s, ErrExpectedSpace)
}

// extractID consumes an identifier. The first rune must be an ASCII letter;
// the rest may be any letter, digit, or underscore.
func extractID(s string) (id, rest string, err error) {
	r, _ := utf8.DecodeRuneInString(s)
	if !isIDStart(r) {
		return "", s, ErrIdentifierExpected.Wrap(near(s))
	}

	id, rest = takeWhile(isIDContinue, s)

	return id, rest, nil
}

// tag consumes lit from the front of s.
func tag(lit, s string) (rest string, err error) {
	rest, ok := strings.CutPrefix(s, lit)
	if ok {
		return rest, nil
	}

	return s, ErrExpectedLiteral.Wrapf("`%s` %w", lit, near(s))
}

// parseFunc is a grammar rule producing a T from the front of its input.
type parseFunc[T any] func(s string) (T, string, error)

// sequence applies parse until it fails, skipping whitespace after each
// item. It succeeds with zero or more items unless parse fails after
// committing, in which case that failure is returned.
func sequence[T any](parse parseFunc[T], s string) ([]T, string, error) {
	var items []T

	for {
		item, rest, err := parse(s)
		if err != nil {
			if committed(err) {
				return nil, s, err
			}

			return items, s, nil
		}

		items = append(items, item)
		_, s = extractWhitespace(rest)
	}
}

// sequence1 applies parse one or more times with sep between items.
// The separator is only consumed when another item follows it.
func sequence1[T any](
	parse parseFunc[T],
	sep func(string) (string, string, error),
	s string,
) ([]T, string, error) {
	first, rest, err := parse(s)
	if err != nil {
		return nil, s, err
	}

	items := []T{first}
	s = rest

	for {
		_, next, err := sep(s)
		if err != nil {
			return items, s, nil
		}

		item, rest, err := parse(next)
		if err != nil {
			if committed(err) {
				return nil, s, err
			}

			return items, s, nil
		}

		items = append(items, item)
		s = rest
	}
}
