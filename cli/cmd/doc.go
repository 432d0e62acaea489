// Package cmd implements the catlang subcommands.
//
// Every command reads its sources through the search path stored in the
// context by [WithSearchPath] and evaluates with the options stored by
// [WithOptions].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
