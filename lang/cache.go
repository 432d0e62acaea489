package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed scripts keyed by the xxh3 hash of their source.
// Trees are immutable, so cached statements are shared between callers.
var globalCache sync.Map

// state tracks the one-time parse of a source.
type state struct {
	once  sync.Once
	stmts []Statement
	texts []string
	err   error
}

// sourceKey returns the cache key of a source text.
func sourceKey(source string) string {
	return strconv.FormatUint(xxh3.HashString(source), 36)
}

// ParseScript parses s as a sequence of whitespace-separated statements.
//
// Identical sources are parsed only once, even when requested concurrently
// from multiple goroutines; see [ClearCache].
func ParseScript(ctx context.Context, s string, opts ...Option) (*Tree, error) {
	o := makeOptions(opts...)

	key := sourceKey(s)
	value, cacheHit := globalCache.LoadOrStore(key, new(state))

	entry, ok := value.(*state)
	if !ok {
		panic("lang: invalid parse cache entry")
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("source_key", key),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.stmts, entry.texts, entry.err = parseScript(s)
		if entry.err != nil {
			entry.err = WrapError(entry.err).With(
				slog.Int("source_length", len(s)),
			)
		}
	})

	if entry.err != nil {
		return nil, entry.err
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(entry.stmts)))

	return &Tree{
		Source:     s,
		Statements: entry.stmts,
		texts:      entry.texts,
		opts:       o,
	}, nil
}

// ParseReader reads a script from r and parses it with [ParseScript].
func ParseReader(ctx context.Context, r io.Reader, opts ...Option) (*Tree, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	makeOptions(opts...).logger.TraceContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return ParseScript(ctx, string(data), opts...)
}

// ClearCache removes all cached parse results.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
