package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initFlags mirrors the shape of the top-level flags that init records.
type initFlags struct {
	Level     string   `default:"info"`
	Include   []string `                 short:"I"`
	Caller    bool
	MaxDepth  int    `default:"100"`
	Secret    string `default:"hidden" hidden:""`
	PprofMode string `default:"cpu"`
	Empty     string
}

func TestInitRun(t *testing.T) {
	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var flags initFlags

			parser, err := kong.New(&flags, kong.Vars{ConfigIdentifier: confPath})
			if err != nil {
				t.Fatal(err)
			}

			ktx, err := parser.Parse([]string{"-I", "lib", "-I", "vendor", "--caller"})
			if err != nil {
				t.Fatal(err)
			}

			err = (&Init{Force: tt.force}).Run(WithContext(t.Context(), ktx))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("config is not YAML: %v\n%s", err, data)
			}

			if tt.wantErr != nil {
				if got["existing"] != "content" {
					t.Errorf("existing config was modified: %s", data)
				}

				return
			}

			if got["level"] != "info" || got["caller"] != true {
				t.Errorf("unexpected values: %v", got)
			}

			include, ok := got["include"].([]any)
			if !ok || len(include) != 2 || include[0] != "lib" || include[1] != "vendor" {
				t.Errorf("include = %v", got["include"])
			}

			if _, ok := got["max-depth"]; !ok {
				t.Errorf("max-depth missing: %v", got)
			}

			for _, key := range []string{"help", "secret", "pprof-mode", "empty"} {
				if _, ok := got[key]; ok {
					t.Errorf("%s should not be recorded: %v", key, got)
				}
			}
		})
	}
}
