package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// The file is a flat mapping from flag name to value. Keys may use hyphens
// or underscores:
//
//	log-level: debug
//	log_pretty: false
//	include:
//	  - ~/lib/cat
//
// An empty file configures nothing. Command-line flags override config file
// values.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	conf := make(config, len(values))

	for key, value := range values {
		conf[key] = normalize(value)
	}

	return conf, nil
}

// normalize converts decoded YAML scalars to the forms kong parses: numbers
// become strings and sequences are normalized element-wise.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	default:
		return v
	}
}

// config implements [kong.Resolver] over a flat mapping of flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys commonly use
	// underscores. Try both forms.
	for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
