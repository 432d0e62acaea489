// Package cli contains the command line interface for catlang.
//
// # Usage
//
//	catlang [flags] [repl] [--preload FILE...]
//	catlang [flags] run FILE...
//	catlang [flags] eval STMT...
//	catlang [flags] fmt {native,json,yaml,ast} [FILE]
//	catlang [flags] init [--force]
//
// Without a command, catlang starts an interactive session. Script names are
// resolved against the search path: the directories given with -I/--include,
// then those listed in $CATLANG_PATH. A name not found as given is also tried
// with the ".cat" extension.
//
// # Configuration
//
// Flag defaults are read from config.yaml (or config.json) in the user
// configuration directory, as a flat mapping of flag names:
//
//	log-level: debug
//	include:
//	  - ~/lib/cat
//
// The init command writes the current flag values to config.yaml.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output on terminals
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o catlang .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/catlang/pprof)
package cli
