package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// Grammar rules.
//
// Each rule is a [parseFunc]: it either returns a node and the remaining
// input, or an error and its original input. Alternatives are composed with
// [alt]. A rule that has matched its distinguishing prefix ("let" or "fn"
// followed by whitespace) commits, and any later failure inside it is
// returned to the caller instead of falling through to the next alternative.

// alt returns the result of the first rule that succeeds on s. When every
// rule fails, or one fails after committing, that failure is returned.
func alt[T any](s string, rules ...parseFunc[T]) (T, string, error) {
	var (
		zero T
		err  error
	)

	for _, rule := range rules {
		var (
			v    T
			rest string
		)

		v, rest, err = rule(s)
		if err == nil {
			return v, rest, nil
		}

		if committed(err) {
			break
		}
	}

	return zero, s, err
}

// parseStatement parses: funcdef | bindingdef | expr.
func parseStatement(s string) (Statement, string, error) {
	return alt[Statement](s, parseFuncDef, parseBindingDef, parseExprStmt)
}

// parseFuncDef parses: "fn" WS id WS? (id WS?)* "=>" WS? stmt.
func parseFuncDef(s string) (Statement, string, error) {
	rest, err := keyword("fn", s)
	if err != nil {
		return nil, s, err
	}

	name, rest, err := extractID(rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	_, rest = extractWhitespace(rest)

	params, rest, err := sequence[string](extractID, rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	rest, err = tag("=>", rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	_, rest = extractWhitespace(rest)

	body, rest, err := parseStatement(rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	return &FuncDef{Name: name, Params: params, Body: body}, rest, nil
}

// parseBindingDef parses: "let" WS id WS? "=" WS? expr.
func parseBindingDef(s string) (Statement, string, error) {
	rest, err := keyword("let", s)
	if err != nil {
		return nil, s, err
	}

	name, rest, err := extractID(rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	_, rest = extractWhitespace(rest)

	rest, err = tag("=", rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	_, rest = extractWhitespace(rest)

	value, rest, err := parseExpr(rest)
	if err != nil {
		return nil, s, commitErr(err)
	}

	return &BindingDef{Name: name, Value: value}, rest, nil
}

// keyword consumes kw and the mandatory whitespace after it.
func keyword(kw, s string) (rest string, err error) {
	rest, err = tag(kw, s)
	if err != nil {
		return s, err
	}

	_, rest, err = extractWhitespace1(rest)
	if err != nil {
		return s, err
	}

	return rest, nil
}

func parseExprStmt(s string) (Statement, string, error) {
	expr, rest, err := parseExpr(s)
	if err != nil {
		return nil, s, err
	}

	return &ExprStmt{Expr: expr}, rest, nil
}

// parseExpr parses: operation | nonop.
//
// Both alternatives begin with the same nonop, so it is parsed once and the
// operator tail is attempted after it. The result is the same as trying the
// operation first and re-parsing the nonop on failure.
func parseExpr(s string) (Expr, string, error) {
	lhs, rest, err := parseNonOp(s)
	if err != nil {
		return nil, s, err
	}

	op, rhs, tail, err := parseOperationTail(rest)
	if err != nil {
		if committed(err) {
			return nil, s, err
		}

		return lhs, rest, nil
	}

	return &Operation{LHS: lhs, RHS: rhs, Op: op}, tail, nil
}

// parseOperationTail parses: WS? op WS? nonop.
func parseOperationTail(s string) (op Op, rhs Expr, rest string, err error) {
	_, rest = extractWhitespace(s)

	op, rest, err = parseOp(rest)
	if err != nil {
		return op, nil, s, err
	}

	_, rest = extractWhitespace(rest)

	rhs, rest, err = parseNonOp(rest)
	if err != nil {
		return op, nil, s, err
	}

	return op, rhs, rest, nil
}

// parseOp parses one operator, trying each in a fixed order.
func parseOp(s string) (Op, string, error) {
	var err error

	for _, op := range ops {
		var rest string

		rest, err = tag(op.String(), s)
		if err == nil {
			return op, rest, nil
		}
	}

	return 0, s, err
}

// parseNonOp parses: number | funccall | bindingusage | block.
func parseNonOp(s string) (Expr, string, error) {
	return alt[Expr](s, parseNumber, parseFuncCall, parseBindingUsage, parseBlock)
}

func parseNumber(s string) (Expr, string, error) {
	digits, rest, err := extractDigits(s)
	if err != nil {
		return nil, s, err
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, s, ErrNumberRange.Wrap(near(digits)).commit()
	}

	return &NumberLit{Value: n}, rest, nil
}

// parseFuncCall parses: id (BLANK+ expr)+.
func parseFuncCall(s string) (Expr, string, error) {
	callee, rest, err := extractID(s)
	if err != nil {
		return nil, s, err
	}

	_, rest, err = extractSpaces1(rest)
	if err != nil {
		return nil, s, err
	}

	params, rest, err := sequence1[Expr](parseExpr, extractSpaces1, rest)
	if err != nil {
		return nil, s, err
	}

	return &FuncCall{Callee: callee, Params: params}, rest, nil
}

func parseBindingUsage(s string) (Expr, string, error) {
	name, rest, err := extractID(s)
	if err != nil {
		return nil, s, err
	}

	return &BindingUsage{Name: name}, rest, nil
}

// parseBlock parses: "{" WS? (stmt WS?)* "}".
func parseBlock(s string) (Expr, string, error) {
	rest, err := tag("{", s)
	if err != nil {
		return nil, s, err
	}

	_, rest = extractWhitespace(rest)

	stmts, rest, err := sequence[Statement](parseStatement, rest)
	if err != nil {
		return nil, s, err
	}

	_, rest = extractWhitespace(rest)

	rest, err = tag("}", rest)
	if err != nil {
		return nil, s, err
	}

	return &Block{Statements: stmts}, rest, nil
}

// ParseString parses s as exactly one statement. Input remaining after the
// statement fails with [ErrInputNotFullyConsumed].
func ParseString(ctx context.Context, s string, opts ...Option) (*Tree, error) {
	o := makeOptions(opts...)

	o.logger.TraceContext(ctx, "parse start",
		slog.Int("source_bytes", len(s)))

	stmt, rest, err := parseStatement(s)
	if err != nil {
		o.logger.TraceContext(ctx, "parse failed",
			slog.String("error", err.Error()))

		return nil, err
	}

	if rest != "" {
		line, col := position(s, rest)

		return nil, ErrInputNotFullyConsumed.
			With(slog.Int("line", line), slog.Int("column", col)).
			Wrap(near(rest))
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("statement", stmt.String()))

	return &Tree{
		Source:     s,
		Statements: []Statement{stmt},
		texts:      []string{strings.TrimSpace(s)},
		opts:       o,
	}, nil
}

// parseScript parses s as a whitespace-separated sequence of statements and
// returns them with the source text each was parsed from.
func parseScript(s string) (stmts []Statement, texts []string, err error) {
	_, rest := extractWhitespace(s)

	record := func(in string) (Statement, string, error) {
		stmt, rest, err := parseStatement(in)
		if err == nil {
			texts = append(texts, strings.TrimSpace(in[:len(in)-len(rest)]))
		}

		return stmt, rest, err
	}

	stmts, rest, err = sequence[Statement](record, rest)
	if err != nil {
		return nil, nil, err
	}

	_, rest = extractWhitespace(rest)
	if rest != "" {
		line, col := position(s, rest)

		// The sequence stopped because the next statement failed to parse;
		// report why rather than only where.
		_, _, cause := parseStatement(rest)

		return nil, nil, ErrInputNotFullyConsumed.
			With(slog.Int("line", line), slog.Int("column", col)).
			Wrapf("line %d, column %d: %w", line, col, cause)
	}

	return stmts, texts, nil
}

// position returns the 1-based line and column at which rest begins in s.
func position(s, rest string) (line, col int) {
	consumed := s[:len(s)-len(rest)]
	line, col = 1, 1

	for _, r := range consumed {
		if r == '\n' {
			line++
			col = 1

			continue
		}

		col++
	}

	return line, col
}
