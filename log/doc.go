// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time with functional options and are
// immutable afterward; [Logger.Wrap] and [Logger.With] derive new loggers.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
//	logger.Info("session started", slog.String("mode", "eval"))
//
// The zero [Logger] discards all messages, so packages such as lang accept
// one through an option and log unconditionally.
//
// # Levels
//
// In addition to the slog levels the package defines [LevelTrace], below
// [LevelDebug], which the interpreter uses to follow individual parse and
// evaluation steps.
//
// # Output
//
// Messages are written as [FormatText] (the default) or [FormatJSON]. With
// [WithPretty] enabled, text output drops quoting and JSON output is
// indented, and both are colored when the destination is a terminal.
//
// # Default Logger
//
// Package-level functions such as [Info] and [ErrorContext] write through a
// default logger on stderr that the command line reconfigures with [Config].
package log
