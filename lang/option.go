package lang

import "github.com/ardnew/catlang/log"

// DefaultMaxDepth is the default maximum depth of nested function calls.
// Users may modify this before parsing or creating an [Env] to change the
// default.
var DefaultMaxDepth = 100

// options holds parser and evaluator configuration.
type options struct {
	logger   log.Logger
	maxDepth int
}

// Option configures parsing or evaluation behavior.
type Option func(*options)

// WithMaxDepth sets the maximum depth of nested function calls. Evaluation
// fails with [ErrMaxDepthExceeded] instead of exhausting the stack.
// Values less than 1 select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// makeOptions applies opts over the defaults.
func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
