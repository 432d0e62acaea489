package repl

import (
	"strings"
	"testing"

	"github.com/ardnew/catlang/lang"
)

func TestDetectFunctionCall(t *testing.T) {
	isFunc := func(name string) bool { return name == "add" || name == "neg" }

	tests := []struct {
		name      string
		input     string
		cursor    int // -1 for end of input
		wantName  string
		wantIndex int
		wantCall  bool
	}{
		{"no_call", "total", -1, "", 0, false},
		{"callee_only", "add", -1, "", 0, false},
		{"first_arg", "add ", -1, "add", 0, true},
		{"typing_first_arg", "add 1", -1, "add", 0, true},
		{"second_arg", "add 1 ", -1, "add", 1, true},
		{"typing_second_arg", "add 1 x", -1, "add", 1, true},
		{"block_arg", "add { 1 } ", -1, "add", 1, true},
		{"inside_block", "{ neg ", -1, "neg", 0, true},
		{"after_closed_block", "{ neg 1 } ", -1, "", 0, false},
		{"after_let", "let y = add 2 ", -1, "add", 1, true},
		{"after_operator", "1 + neg ", -1, "neg", 0, true},
		{"operator_ends_call", "add 1 + ", -1, "", 0, false},
		{"unknown_function", "sub 1 ", -1, "", 0, false},
		{"keyword", "let ", -1, "", 0, false},
		{"number_first", "1 2 ", -1, "", 0, false},
		{"newline_ends_call", "add 1\n", -1, "", 0, false},
		{"cursor_inside", "add 1 2", 4, "add", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := tt.cursor
			if cursor < 0 {
				cursor = len(tt.input)
			}

			got := detectFunctionCall(tt.input, cursor, isFunc)

			if got.inCall != tt.wantCall || got.name != tt.wantName || got.argIndex != tt.wantIndex {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {name:%s argIndex:%d inCall:%v}",
					tt.input, cursor, got, tt.wantName, tt.wantIndex, tt.wantCall)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	fd := &lang.FuncDef{Name: "add", Params: []string{"x", "y"}}

	hint := renderSignatureHint(fd, 1)
	for _, s := range []string{"add", "x", "y"} {
		if !strings.Contains(hint, s) {
			t.Errorf("hint %q missing %q", hint, s)
		}
	}

	if strings.Contains(hint, "takes") {
		t.Errorf("hint %q flags a valid argument", hint)
	}

	if hint := renderSignatureHint(fd, 2); !strings.Contains(hint, "takes 2 arguments") {
		t.Errorf("hint %q does not flag the extra argument", hint)
	}

	one := &lang.FuncDef{Name: "neg", Params: []string{"n"}}
	if hint := renderSignatureHint(one, 1); !strings.Contains(hint, "takes 1 argument") ||
		strings.Contains(hint, "arguments") {
		t.Errorf("hint %q", hint)
	}

	if hint := renderSignatureHint(nil, 0); hint != "" {
		t.Errorf("nil hint = %q", hint)
	}
}
