package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() of missing file: %v", err)
	}

	adds := []HistoryEntry{
		{"let x = 1", modeEval},
		{"list", modeCtrl},
		{"let x = 1", modeEval}, // repeat of last eval entry, but not last overall
		{"x", modeEval},
		{"x", modeEval}, // repeat of last entry
		{"  ", modeEval},
	}

	for _, e := range adds {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) unexpected error: %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCtrl},
		{"let x = 1", modeEval},
		{"x", modeEval},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:list\nE:let x = 1\nE:x\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistoryUntaggedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := os.WriteFile(path, []byte("1 + 2\n\nC:quit\nE:{ }\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"1 + 2", modeEval}, {"quit", modeCtrl}, {"{ }", modeEval}}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistoryEntryBounds(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("1", modeEval); err != nil {
		t.Fatal(err)
	}

	if e, err := h.Entry(0); err != nil || e.Line != "1" {
		t.Errorf("Entry(0) = %v, %v", e, err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}
}
