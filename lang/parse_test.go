package lang

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func num(n int64) *NumberLit { return &NumberLit{Value: n} }

func use(name string) *BindingUsage { return &BindingUsage{Name: name} }

func exprStmt(e Expr) *ExprStmt { return &ExprStmt{Expr: e} }

func TestParseString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Statement
	}{
		{
			name:  "number",
			input: "123",
			want:  exprStmt(num(123)),
		},
		{
			name:  "add",
			input: "1 + 2",
			want:  exprStmt(&Operation{LHS: num(1), RHS: num(2), Op: OpAdd}),
		},
		{
			name:  "no_whitespace",
			input: "2*2",
			want:  exprStmt(&Operation{LHS: num(2), RHS: num(2), Op: OpMul}),
		},
		{
			name:  "divisible_by",
			input: "12 | 4",
			want:  exprStmt(&Operation{LHS: num(12), RHS: num(4), Op: OpDivisibleBy}),
		},
		{
			name:  "binding_usage",
			input: "bar",
			want:  exprStmt(use("bar")),
		},
		{
			name:  "binding_def",
			input: "let a = 10 / 2",
			want: &BindingDef{
				Name:  "a",
				Value: &Operation{LHS: num(10), RHS: num(2), Op: OpDiv},
			},
		},
		{
			name:  "binding_def_unicode",
			input: "let id_愛 = 1",
			want:  &BindingDef{Name: "id_愛", Value: num(1)},
		},
		{
			name:  "func_def",
			input: "fn add x y => x + y",
			want: &FuncDef{
				Name:   "add",
				Params: []string{"x", "y"},
				Body:   exprStmt(&Operation{LHS: use("x"), RHS: use("y"), Op: OpAdd}),
			},
		},
		{
			name:  "func_def_no_params",
			input: "fn nothing => {}",
			want: &FuncDef{
				Name: "nothing",
				Body: exprStmt(&Block{}),
			},
		},
		{
			name:  "func_def_binding_body",
			input: "fn f x => let y = x",
			want: &FuncDef{
				Name:   "f",
				Params: []string{"x"},
				Body:   &BindingDef{Name: "y", Value: use("x")},
			},
		},
		{
			name:  "func_call",
			input: "add 1 2",
			want: exprStmt(&FuncCall{
				Callee: "add",
				Params: []Expr{num(1), num(2)},
			}),
		},
		{
			// Identifier arguments start calls of their own.
			name:  "func_call_nested",
			input: "add x y",
			want: exprStmt(&FuncCall{
				Callee: "add",
				Params: []Expr{&FuncCall{Callee: "x", Params: []Expr{use("y")}}},
			}),
		},
		{
			name:  "func_call_operation_arg",
			input: "f 1 + 2 3",
			want: exprStmt(&FuncCall{
				Callee: "f",
				Params: []Expr{
					&Operation{LHS: num(1), RHS: num(2), Op: OpAdd},
					num(3),
				},
			}),
		},
		{
			name:  "empty_block",
			input: "{}",
			want:  exprStmt(&Block{}),
		},
		{
			name:  "block",
			input: "{ let a = 1 a }",
			want: exprStmt(&Block{Statements: []Statement{
				&BindingDef{Name: "a", Value: num(1)},
				exprStmt(use("a")),
			}}),
		},
		{
			name:  "multiline_block",
			input: "{\n\tlet a = 10\n\tlet b = a\n\tb\n}",
			want: exprStmt(&Block{Statements: []Statement{
				&BindingDef{Name: "a", Value: num(10)},
				&BindingDef{Name: "b", Value: use("a")},
				exprStmt(use("b")),
			}}),
		},
		{
			name:  "block_operand",
			input: "{ 1 } + 2",
			want: exprStmt(&Operation{
				LHS: &Block{Statements: []Statement{exprStmt(num(1))}},
				RHS: num(2),
				Op:  OpAdd,
			}),
		},
		{
			name:  "keyword_without_space",
			input: "fn",
			want:  exprStmt(use("fn")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseString(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error: %v", tt.input, err)
			}

			if len(tree.Statements) != 1 {
				t.Fatalf("expected 1 statement, got %d", len(tree.Statements))
			}

			if got := tree.Statements[0]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseString(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "chained_operators", input: "1 + 2 + 3", err: ErrInputNotFullyConsumed},
		{name: "dangling_operator", input: "1 +", err: ErrInputNotFullyConsumed},
		{name: "trailing_input", input: "let a = 1 2", err: ErrInputNotFullyConsumed},
		{name: "let_without_space", input: "letx = 1", err: ErrInputNotFullyConsumed},
		{name: "fn_without_space", input: "fnx => 1", err: ErrInputNotFullyConsumed},
		{name: "let_missing_name", input: "let = 5", err: ErrIdentifierExpected},
		{name: "let_missing_equals", input: "let a 5", err: ErrExpectedLiteral},
		{name: "fn_missing_name", input: "fn => 1", err: ErrIdentifierExpected},
		{name: "fn_missing_arrow", input: "fn f x 1", err: ErrExpectedLiteral},
		{name: "unclosed_block", input: "{ 1", err: ErrExpectedLiteral},
		{name: "number_range", input: "99999999999999999999", err: ErrNumberRange},
		{name: "committed_in_block", input: "{ let = 1 }", err: ErrIdentifierExpected},
		{name: "empty", input: "", err: ErrExpectedLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := ParseString(t.Context(), tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) = %s, want error", tt.input, tree)
			}

			if !errors.Is(err, tt.err) {
				t.Errorf("ParseString(%q) error = %v, want %v", tt.input, err, tt.err)
			}
		})
	}
}

func TestParseBindingDefExpectedSpace(t *testing.T) {
	_, rest, err := parseBindingDef("letx=1")
	if !errors.Is(err, ErrExpectedSpace) {
		t.Errorf("error = %v, want ErrExpectedSpace", err)
	}

	if committed(err) {
		t.Error("failure before the keyword separator must not commit")
	}

	if rest != "letx=1" {
		t.Errorf("input consumed on failure: %q", rest)
	}
}

func TestParseCommitted(t *testing.T) {
	_, _, err := parseStatement("let a = ")
	if !committed(err) {
		t.Errorf("error after `let ` should be committed: %v", err)
	}

	_, _, err = parseStatement("fn f x => ")
	if !committed(err) {
		t.Errorf("error after `fn ` should be committed: %v", err)
	}

	_, _, err = parseStatement("}")
	if err == nil || committed(err) {
		t.Errorf("plain failure should not be committed: %v", err)
	}
}

func TestParseStringTrailingPosition(t *testing.T) {
	_, err := ParseString(t.Context(), "1 + 2 + 3")

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("error %v is not *Error", err)
	}

	attrs := map[string]int64{}
	for _, a := range e.Attrs() {
		attrs[a.Key] = a.Value.Int64()
	}

	if attrs["line"] != 1 || attrs["column"] != 6 {
		t.Errorf("position attrs = %v, want line 1 column 6", attrs)
	}

	if !strings.Contains(err.Error(), `" + 3"`) {
		t.Errorf("error %q does not quote the remaining input", err)
	}
}

func TestParseScript(t *testing.T) {
	src := `
fn add x y => x + y
let a = add 1 2
{
  let a = 10
  a
}
a
`

	tree, err := ParseScript(t.Context(), src)
	if err != nil {
		t.Fatalf("ParseScript error: %v", err)
	}

	if tree.Len() != 4 {
		t.Fatalf("expected 4 statements, got %d: %s", tree.Len(), tree)
	}

	if _, ok := tree.Statements[0].(*FuncDef); !ok {
		t.Errorf("statement 0 is %T, want *FuncDef", tree.Statements[0])
	}

	if _, ok := tree.Statements[1].(*BindingDef); !ok {
		t.Errorf("statement 1 is %T, want *BindingDef", tree.Statements[1])
	}
}

func TestTreeText(t *testing.T) {
	src := "  fn one => 1\nlet r = {\n  one\n  2\n}\n\n1 + 2  \n"

	tree, err := ParseScript(t.Context(), src)
	if err != nil {
		t.Fatalf("ParseScript error: %v", err)
	}

	want := []string{"fn one => 1", "let r = {\n  one\n  2\n}", "1 + 2"}
	if tree.Len() != len(want) {
		t.Fatalf("expected %d statements, got %d: %s", len(want), tree.Len(), tree)
	}

	for i, text := range want {
		if got := tree.Text(i); got != text {
			t.Errorf("Text(%d) = %q, want %q", i, got, text)
		}
	}

	// The text keeps the line break that separates the block's statements;
	// the one-line rendering reads them as a call.
	reparsed, err := ParseString(t.Context(), tree.Text(1))
	if err != nil {
		t.Fatalf("ParseString(Text(1)) error: %v", err)
	}

	if !reflect.DeepEqual(reparsed.Statements[0], tree.Statements[1]) {
		t.Errorf("Text(1) reparsed as %s, want %s", reparsed.Statements[0], tree.Statements[1])
	}
}

func TestParseScriptEmpty(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n\t"} {
		tree, err := ParseScript(t.Context(), src)
		if err != nil {
			t.Fatalf("ParseScript(%q) error: %v", src, err)
		}

		if tree.Len() != 0 {
			t.Errorf("ParseScript(%q) has %d statements", src, tree.Len())
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	_, err := ParseScript(t.Context(), "let a = 1\n}")
	if !errors.Is(err, ErrInputNotFullyConsumed) {
		t.Fatalf("error = %v, want ErrInputNotFullyConsumed", err)
	}

	if !strings.Contains(err.Error(), "line 2, column 1") {
		t.Errorf("error %q does not report the position", err)
	}

	// Committed failures report their own cause.
	_, err = ParseScript(t.Context(), "let a = 1\nlet = 2")
	if !errors.Is(err, ErrIdentifierExpected) {
		t.Errorf("error = %v, want ErrIdentifierExpected", err)
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		s, rest   string
		line, col int
	}{
		{s: "abc", rest: "abc", line: 1, col: 1},
		{s: "abc", rest: "c", line: 1, col: 3},
		{s: "a\nbc", rest: "c", line: 2, col: 2},
		{s: "愛\n\nx", rest: "x", line: 3, col: 1},
		{s: "愛x", rest: "x", line: 1, col: 2},
	}

	for _, tt := range tests {
		line, col := position(tt.s, tt.rest)
		if line != tt.line || col != tt.col {
			t.Errorf("position(%q, %q) = %d:%d, want %d:%d",
				tt.s, tt.rest, line, col, tt.line, tt.col)
		}
	}
}

func TestStatementString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "1+2", want: "1 + 2"},
		{input: "let  a=5", want: "let a = 5"},
		{input: "fn add x y=>x+y", want: "fn add x y => x + y"},
		{input: "{}", want: "{ }"},
		{input: "{\nlet a = 1\na\n}", want: "{ let a = 1 a }"},
		{input: "f 1\t2", want: "f 1 2"},
	}

	for _, tt := range tests {
		tree, err := ParseString(t.Context(), tt.input)
		if err != nil {
			t.Fatalf("ParseString(%q) error: %v", tt.input, err)
		}

		if got := tree.String(); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFuncDefSignature(t *testing.T) {
	d := &FuncDef{Name: "add", Params: []string{"x", "y"}}
	if got := d.Signature(); got != "add x y" {
		t.Errorf("Signature = %q", got)
	}

	d = &FuncDef{Name: "five"}
	if got := d.Signature(); got != "five" {
		t.Errorf("Signature = %q", got)
	}
}
