package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/catlang/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// defaultDirMode is the default permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path of the configuration file with extension ext.
func configPath(ext string) string {
	return filepath.Join(pkg.ConfigDir(), baseConfig+ext)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// searchPath returns the directories scripts are resolved against: include
// directories first, in the order given, followed by those listed in env.
// Empty entries are dropped.
func searchPath(include []string, env string) []string {
	sep := string(os.PathListSeparator)

	// Prefix items are prepended one at a time, so the last item leads.
	prefix := slices.Clone(include)
	slices.Reverse(prefix)

	joined := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(sep),
		mung.WithPrefixItems(prefix...),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(joined, sep) {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}
