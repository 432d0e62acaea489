package cmd

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/catlang/lang"
	"github.com/ardnew/catlang/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or the empty string outside a
// kong run.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

type (
	searchPathKey struct{}
	optionsKey    struct{}
)

// WithSearchPath returns a new context.Context carrying the directories that
// source names are resolved against, in priority order.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// WithOptions returns a new context.Context carrying the options used to
// parse and evaluate sources.
func WithOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

func optionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(optionsKey{}).([]lang.Option)

	return opts
}

// langOptions returns the options stored in ctx followed by the default
// logger.
func langOptions(ctx context.Context) []lang.Option {
	return append(slices.Clone(optionsFrom(ctx)), lang.WithLogger(log.Default()))
}

// stdio holds the standard streams of a command. Nil streams select the
// process streams.
type stdio struct {
	in       io.Reader
	out, err io.Writer
}

func (s stdio) stdin() io.Reader {
	if s.in == nil {
		return os.Stdin
	}

	return s.in
}

func (s stdio) stdout() io.Writer {
	if s.out == nil {
		return os.Stdout
	}

	return s.out
}

func (s stdio) stderr() io.Writer {
	if s.err == nil {
		return os.Stderr
	}

	return s.err
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// sourceExt is appended to names that are not found as given.
const sourceExt = ".cat"

// source is an open script and the name it was resolved to.
type source struct {
	io.Reader

	name string
}

// resolveSource returns the path of the script named name.
//
// A name that exists relative to the working directory, or is absolute, is
// used as given. Otherwise each directory of the search path is tried in
// order, first with name and then with name plus ".cat".
func resolveSource(name string, searchPath []string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	if filepath.IsAbs(name) {
		searchPath = nil
	}

	for _, dir := range searchPath {
		for _, candidate := range []string{name, name + sourceExt} {
			path := filepath.Join(dir, candidate)

			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", ErrSourceNotFound.
		With(slog.String("name", name)).
		Wrap(fs.ErrNotExist)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources resolves and opens each of names in order.
//
// Sources are deduplicated by comparing device/inode pairs, so a script named
// twice, or through a symlink, runs once. All occurrences of "-" are replaced
// with a single stdin reader placed last. The returned function closes every
// opened file.
func openSources(ctx context.Context, std stdio, names []string) ([]source, func(), error) {
	var (
		srcs     = make([]source, 0, len(names))
		files    []*os.File
		seen     = make(map[fileKey]struct{})
		hasStdin bool
	)

	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	dirs := searchPathFrom(ctx)

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path, err := resolveSource(name, dirs)
		if err != nil {
			closeAll()

			return nil, nil, err
		}

		file, dup, err := openUnique(path, seen)
		if err != nil {
			closeAll()

			return nil, nil, ErrOpenSource.With(slog.String("path", path)).Wrap(err)
		}

		if dup {
			continue
		}

		files = append(files, file)
		srcs = append(srcs, source{Reader: file, name: path})
	}

	if hasStdin {
		srcs = append(srcs, source{Reader: std.stdin(), name: stdinSource})
	}

	return srcs, closeAll, nil
}

// openUnique opens the file at path unless a file with the same device and
// inode has been seen, in which case dup is true.
func openUnique(path string, seen map[fileKey]struct{}) (file *os.File, dup bool, err error) {
	file, err = os.Open(path)
	if err != nil {
		return nil, false, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, false, err
	}

	if info.IsDir() {
		file.Close()

		return nil, false, &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR}
	}

	key, ok := makeFileKey(info)
	if !ok {
		return file, false, nil
	}

	if _, exists := seen[key]; exists {
		file.Close()

		return nil, true, nil
	}

	seen[key] = struct{}{}

	return file, false, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// openSource opens the single source name, which may be "-" for stdin.
func openSource(ctx context.Context, std stdio, name string) (source, func(), error) {
	srcs, closeAll, err := openSources(ctx, std, []string{name})
	if err != nil {
		return source{}, nil, err
	}

	if len(srcs) == 0 {
		closeAll()

		return source{}, nil, ErrNoSource
	}

	return srcs[0], closeAll, nil
}
