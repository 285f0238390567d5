package dtl

import (
	"github.com/itsatony/go-dtl/internal"
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	lexer      internal.LexerConfig
	maxDepth   int
	logger     *zap.Logger
	filters    []*internal.Filter
	randomIntn func(n int) int
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		lexer:    internal.DefaultLexerConfig(),
		maxDepth: DefaultMaxDepth,
		logger:   nil,
	}
}

// WithVariableDelimiters sets the delimiters around variable expressions.
// Default: "{{" and "}}"
func WithVariableDelimiters(open, close string) Option {
	return func(c *engineConfig) {
		c.lexer.VariableOpen = open
		c.lexer.VariableClose = close
	}
}

// WithBlockDelimiters sets the delimiters around block tags.
// Default: "{%" and "%}"
func WithBlockDelimiters(open, close string) Option {
	return func(c *engineConfig) {
		c.lexer.BlockOpen = open
		c.lexer.BlockClose = close
	}
}

// WithCommentDelimiters sets the delimiters around comments.
// Default: "{#" and "#}"
func WithCommentDelimiters(open, close string) Option {
	return func(c *engineConfig) {
		c.lexer.CommentOpen = open
		c.lexer.CommentClose = close
	}
}

// WithMaxDepth sets the maximum block nesting depth during a render.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithFilter adds a custom filter. Values whose kind is not in accepts
// render as "" without calling fn. A custom filter replaces a builtin of
// the same name, which is how the placeholder builtins (escape, title, ...)
// can be given a real implementation.
func WithFilter(name string, accepts ValueKind, fn FilterFunc) Option {
	return func(c *engineConfig) {
		c.filters = append(c.filters, &internal.Filter{Name: name, Accepts: accepts, Fn: fn})
	}
}

// WithRandomSource sets the function the random filter draws indices from.
// intn must return a value in [0, n).
// Default: math/rand.Intn
func WithRandomSource(intn func(n int) int) Option {
	return func(c *engineConfig) {
		c.randomIntn = intn
	}
}
