package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/catlang/lang"
)

const fmtInput = "let x = {let y = 1 y}\nfn inc n => n + 1\n"

func TestNativeFmt(t *testing.T) {
	tests := []struct {
		name   string
		indent int
		want   string
	}{
		{
			name:   "indented",
			indent: 2,
			want:   "let x = {\n  let y = 1\n  y\n}\nfn inc n => n + 1\n",
		},
		{
			name:   "wide",
			indent: 4,
			want:   "let x = {\n    let y = 1\n    y\n}\nfn inc n => n + 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			f := &Native{
				Source: stdinSource,
				Indent: tt.indent,
				std:    stdio{in: strings.NewReader(fmtInput), out: &out},
			}

			if err := f.Run(t.Context()); err != nil {
				t.Fatal(err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}

			// The formatted output is itself a valid script with the same
			// structure.
			tree, err := lang.ParseScript(t.Context(), out.String())
			if err != nil {
				t.Fatalf("formatted output does not parse: %v", err)
			}

			if tree.Len() != 2 {
				t.Errorf("formatted output has %d statements, want 2", tree.Len())
			}
		})
	}
}

func TestJSONFmt(t *testing.T) {
	var out bytes.Buffer

	j := &JSON{
		Source: stdinSource,
		Indent: 2,
		std:    stdio{in: strings.NewReader(fmtInput), out: &out},
	}

	if err := j.Run(t.Context()); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Statements []map[string]any `json:"statements"`
	}

	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	if len(doc.Statements) != 2 || doc.Statements[0]["name"] != "x" {
		t.Errorf("unexpected document: %v", doc)
	}
}

func TestYAMLFmt(t *testing.T) {
	var out bytes.Buffer

	y := &YAML{
		Source: stdinSource,
		Indent: 2,
		std:    stdio{in: strings.NewReader(fmtInput), out: &out},
	}

	if err := y.Run(t.Context()); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out.String())
	}

	stmts, ok := doc["statements"].([]any)
	if !ok || len(stmts) != 2 {
		t.Errorf("unexpected document: %v", doc)
	}
}

func TestASTFmt(t *testing.T) {
	var out bytes.Buffer

	a := &AST{
		Source: stdinSource,
		std:    stdio{in: strings.NewReader("let x = {let y = 1 y}\n"), out: &out},
	}

	if err := a.Run(t.Context()); err != nil {
		t.Fatal(err)
	}

	want := "BindingDef x\n" +
		"  Block\n" +
		"    BindingDef y\n" +
		"      NumberLit 1\n" +
		"    ExprStmt\n" +
		"      BindingUsage y\n"

	if got := out.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestFmtErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "bad.cat"), "let = 1\n")

	f := &Native{Source: path, Indent: 2, std: stdio{out: new(bytes.Buffer)}}
	if err := f.Run(t.Context()); !errors.Is(err, lang.ErrParse) {
		t.Errorf("parse failure error = %v", err)
	}

	f = &Native{Source: "missing", std: stdio{out: new(bytes.Buffer)}}
	if err := f.Run(WithSearchPath(t.Context(), []string{dir})); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("missing source error = %v", err)
	}
}
