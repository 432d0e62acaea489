//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version of the catlang module embedded at build
// time.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding
// whitespace. It is printed by the --version flag.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default paths, and environment
	// variable names.
	Name = "catlang"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Interpreter for a small expression and binding language"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
