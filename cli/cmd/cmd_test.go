package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/catlang/lang"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestResolveSource(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	other := filepath.Join(dir, "other")

	prelude := writeFile(t, filepath.Join(lib, "prelude.cat"), "let one = 1\n")
	raw := writeFile(t, filepath.Join(lib, "raw"), "2\n")
	shadow := writeFile(t, filepath.Join(other, "prelude.cat"), "let one = 2\n")
	local := writeFile(t, filepath.Join(dir, "local.cat"), "3\n")

	if err := os.MkdirAll(filepath.Join(lib, "sub"), 0o700); err != nil {
		t.Fatal(err)
	}

	t.Chdir(dir)

	searchPath := []string{lib, other}

	tests := []struct {
		name    string
		want    string
		wantErr error
	}{
		{"prelude", prelude, nil},
		{"prelude.cat", prelude, nil},
		{"raw", raw, nil},
		{"local.cat", "local.cat", nil},
		{local, local, nil},
		{"sub", "", ErrSourceNotFound},
		{"missing", "", ErrSourceNotFound},
		{filepath.Join(dir, "missing.cat"), "", ErrSourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSource(tt.name, searchPath)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("resolveSource(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("resolveSource(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}

	if got, _ := resolveSource("prelude", []string{other, lib}); got != shadow {
		t.Errorf("search order not respected: got %q, want %q", got, shadow)
	}
}

func TestOpenSources(t *testing.T) {
	dir := t.TempDir()

	a := writeFile(t, filepath.Join(dir, "a.cat"), "A")
	b := writeFile(t, filepath.Join(dir, "b.cat"), "B")
	link := filepath.Join(dir, "link.cat")

	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	ctx := WithSearchPath(t.Context(), []string{dir})
	std := stdio{in: strings.NewReader("S")}

	srcs, closeAll, err := openSources(ctx, std, []string{"-", a, "link", "-", "b", a})
	if err != nil {
		t.Fatal(err)
	}
	defer closeAll()

	var names []string

	var content strings.Builder

	for _, src := range srcs {
		names = append(names, src.name)

		if _, err := io.Copy(&content, src); err != nil {
			t.Fatal(err)
		}
	}

	if want := []string{a, b, stdinSource}; !slices.Equal(names, want) {
		t.Errorf("names = %q, want %q", names, want)
	}

	if got := content.String(); got != "ABS" {
		t.Errorf("content = %q, want %q", got, "ABS")
	}
}

func TestOpenSourcesErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := WithSearchPath(t.Context(), []string{dir})

	if _, _, err := openSources(ctx, stdio{}, []string{"missing"}); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("missing source error = %v", err)
	}

	if _, _, err := openSources(ctx, stdio{}, []string{dir}); !errors.Is(err, ErrOpenSource) {
		t.Errorf("directory source error = %v", err)
	}

	srcs, closeAll, err := openSources(ctx, stdio{}, nil)
	if err != nil || len(srcs) != 0 {
		t.Errorf("no sources = %v, %v", srcs, err)
	}

	closeAll()

	if _, _, err := openSource(ctx, stdio{}, "missing"); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("openSource error = %v", err)
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	if kongContextFrom(ctx) != nil || searchPathFrom(ctx) != nil || optionsFrom(ctx) != nil {
		t.Fatal("empty context carries values")
	}

	if got := kongVar(ctx, ConfigIdentifier); got != "" {
		t.Errorf("kongVar outside kong = %q", got)
	}

	ctx = WithSearchPath(ctx, []string{"a", "b"})
	if got := searchPathFrom(ctx); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("searchPathFrom = %q", got)
	}

	stored := make([]lang.Option, 1, 4)
	stored[0] = lang.WithMaxDepth(3)
	ctx = WithOptions(ctx, stored...)

	first := langOptions(ctx)
	second := langOptions(ctx)

	if len(first) != 2 || len(second) != 2 || len(optionsFrom(ctx)) != 1 {
		t.Errorf("langOptions lengths = %d, %d", len(first), len(second))
	}

	if &first[0] == &second[0] {
		t.Error("langOptions shares its backing array")
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrWriteConfig.Wrap(ErrFileExists).With()

	if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, ErrFileExists) {
		t.Errorf("errors.Is failed for %v", err)
	}

	if errors.Is(err, ErrSourceNotFound) {
		t.Errorf("%v matched an unrelated sentinel", err)
	}

	if got := err.Error(); got != "write configuration file: file exists (use --force to overwrite)" {
		t.Errorf("Error() = %q", got)
	}
}
