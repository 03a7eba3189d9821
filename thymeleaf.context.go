package thymeleaf

import (
	"strings"

	"github.com/itsatony/go-thymeleaf/internal"
	"go.uber.org/zap"
)

// standardGrammar is shared by every context; it holds no per-parse state.
var standardGrammar = internal.NewStandardGrammar()

// Context provides read-only access to template variables during one
// processing pass. It supports dot-notation path resolution
// (e.g., "user.profile.name") and hierarchical scoping through parent-child
// relationships.
type Context struct {
	data   map[string]any
	parent *Context

	parserConfig internal.ParserConfig
	logger       *zap.Logger
}

// NewContext creates a new context with the given data.
// If data is nil, an empty map is used. The map is not copied and must not be
// modified while a template is being processed with it.
func NewContext(data map[string]any) *Context {
	if data == nil {
		data = make(map[string]any)
	}
	return &Context{
		data:         data,
		parserConfig: internal.DefaultParserConfig(),
		logger:       zap.NewNop(),
	}
}

// Get retrieves a value by dot-notation path (e.g., "user.profile.name").
// Returns the value and true if found, or nil and false if not found.
func (c *Context) Get(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	parts := strings.Split(path, PathSeparator)
	var current any = c.data

	for _, part := range parts {
		if part == "" {
			continue
		}

		switch v := current.(type) {
		case map[string]any:
			val, ok := v[part]
			if !ok {
				return c.getFromParent(path)
			}
			current = val
		case map[string]string:
			val, ok := v[part]
			if !ok {
				return c.getFromParent(path)
			}
			current = val
		default:
			// Can't traverse further
			return c.getFromParent(path)
		}
	}

	return current, true
}

func (c *Context) getFromParent(path string) (any, bool) {
	if c.parent != nil {
		return c.parent.Get(path)
	}
	return nil, false
}

// GetString retrieves a string value by path.
// Returns empty string if not found or not a string.
func (c *Context) GetString(path string) string {
	val, ok := c.Get(path)
	if !ok {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// Has checks if a value exists at the given path.
func (c *Context) Has(path string) bool {
	_, ok := c.Get(path)
	return ok
}

// Child creates a child context with additional data.
// The child inherits from the parent and can shadow its values.
func (c *Context) Child(data map[string]any) *Context {
	if data == nil {
		data = make(map[string]any)
	}
	return &Context{
		data:         data,
		parent:       c,
		parserConfig: c.parserConfig,
		logger:       c.logger,
	}
}

// withParsing returns a shallow copy that parses expressions with the given settings.
func (c *Context) withParsing(config internal.ParserConfig, logger *zap.Logger) *Context {
	clone := *c
	clone.parserConfig = config
	clone.logger = logger
	return &clone
}

// Evaluate parses expression with the standard expression grammar and
// evaluates it against this context. An expression that matches no rule of
// the grammar is reported as an expression error.
func (c *Context) Evaluate(expression string) (any, error) {
	parser := internal.NewParser(c.parserConfig, c.logger)
	result, ok := parser.Parse(expression, standardGrammar)
	if !ok {
		return nil, NewExpressionError(expression)
	}

	value, err := internal.NewExprEvaluator(c).Evaluate(result)
	if err != nil {
		return nil, NewEvaluationError(expression, err)
	}
	return value, nil
}

// EvaluateBool evaluates expression and applies the truthiness rules:
// nil, false, zero, "", "false", "off" and "no" are false; anything else is true.
func (c *Context) EvaluateBool(expression string) (bool, error) {
	value, err := c.Evaluate(expression)
	if err != nil {
		return false, err
	}
	return internal.IsTruthy(value), nil
}

// EvaluateString evaluates expression and renders the value as text.
// A nil value renders as the empty string.
func (c *Context) EvaluateString(expression string) (string, error) {
	value, err := c.Evaluate(expression)
	if err != nil {
		return "", err
	}
	return internal.AnyToString(value), nil
}
