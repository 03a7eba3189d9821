package thymeleaf

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	dialect            *Dialect
	logger             *zap.Logger
	resolver           TemplateResolver
	registerer         prometheus.Registerer
	sanitizer          *bluemonday.Policy
	cleanup            CleanupFunc
	maxExpressionDepth int
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		maxExpressionDepth: DefaultMaxExpressionDepth,
	}
}

// WithDialect sets the dialect whose processors the engine runs.
// The dialect becomes read-only once the engine is created.
// Default: NewStandardDialect()
func WithDialect(dialect *Dialect) Option {
	return func(c *engineConfig) {
		c.dialect = dialect
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithResolver sets the resolver used by ProcessTemplate.
// Default: nil (ProcessTemplate fails)
func WithResolver(resolver TemplateResolver) Option {
	return func(c *engineConfig) {
		c.resolver = resolver
	}
}

// WithMetrics registers the engine's Prometheus collectors with registerer.
// Default: nil (no metrics)
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(c *engineConfig) {
		c.registerer = registerer
	}
}

// WithUnescapedTextPolicy sets the sanitizer for th:utext. It only applies
// when the engine builds the standard dialect itself; a dialect passed with
// WithDialect keeps its own policy.
// Default: bluemonday.UGCPolicy()
func WithUnescapedTextPolicy(policy *bluemonday.Policy) Option {
	return func(c *engineConfig) {
		c.sanitizer = policy
	}
}

// WithCleanup replaces the dialect's cleanup step for this engine.
// Default: the dialect's cleanup (strip xmlns:<prefix>)
func WithCleanup(fn CleanupFunc) Option {
	return func(c *engineConfig) {
		c.cleanup = fn
	}
}

// WithMaxExpressionDepth sets the maximum nesting depth of expression parsing.
// Values below 1 keep the default.
// Default: 64
func WithMaxExpressionDepth(depth int) Option {
	return func(c *engineConfig) {
		if depth > 0 {
			c.maxExpressionDepth = depth
		}
	}
}
