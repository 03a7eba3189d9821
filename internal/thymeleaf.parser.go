package internal

import (
	"go.uber.org/zap"
)

// Expression is a unit of grammar that can be matched against an InputBuffer.
// Implementations must leave the buffer where they found it when they report
// no match; wrapping the attempt in MarkAndClearOrReset guarantees that.
type Expression interface {
	Match(buffer *InputBuffer, parser *Parser) (*ParseResult, bool)
}

// ParseResult is a successful match: the rule that produced it, the full
// matched text and one entry per capture group. A group entry is a
// *ParseResult when the group had a sub-parser, a string when it was kept raw,
// and nil when the group did not participate in the match.
type ParseResult struct {
	Rule   string
	Text   string
	Groups []any
}

// Sub returns group i (0-based) as a nested result, if it is one.
func (r *ParseResult) Sub(i int) (*ParseResult, bool) {
	if r == nil || i < 0 || i >= len(r.Groups) {
		return nil, false
	}
	sub, ok := r.Groups[i].(*ParseResult)
	return sub, ok
}

// Raw returns group i (0-based) as raw text, if it was kept raw.
func (r *ParseResult) Raw(i int) (string, bool) {
	if r == nil || i < 0 || i >= len(r.Groups) {
		return StringValueEmpty, false
	}
	raw, ok := r.Groups[i].(string)
	return raw, ok
}

// ParserConfig holds parser configuration
type ParserConfig struct {
	MaxDepth int // Maximum nested sub-parse depth; 0 means DefaultMaxExpressionDepth
}

// DefaultParserConfig returns the default parser configuration
func DefaultParserConfig() ParserConfig {
	return ParserConfig{MaxDepth: DefaultMaxExpressionDepth}
}

// Parser drives expressions over input buffers and tracks nesting depth.
// A Parser is created per parse call and is not safe for concurrent use.
type Parser struct {
	config ParserConfig
	depth  int
	logger *zap.Logger
}

// NewParser creates a parser with the given configuration
func NewParser(config ParserConfig, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxExpressionDepth
	}
	return &Parser{
		config: config,
		logger: logger,
	}
}

// Parse parses the whole of text with expr.
func (p *Parser) Parse(text string, expr Expression) (*ParseResult, bool) {
	p.logger.Debug(LogMsgParseStart, zap.String(LogFieldExpression, text))
	result, ok := p.ParseWithExpression(NewInputBuffer(text), expr)
	p.logger.Debug(LogMsgParseEnd,
		zap.String(LogFieldExpression, text),
		zap.Bool(LogFieldMatched, ok),
	)
	return result, ok
}

// ParseWithExpression matches expr against buffer. The match only counts if
// it consumes the entire buffer; otherwise the buffer is rolled back and no
// match is reported.
func (p *Parser) ParseWithExpression(buffer *InputBuffer, expr Expression) (*ParseResult, bool) {
	if expr == nil {
		return nil, false
	}
	if p.depth >= p.config.MaxDepth {
		p.logger.Debug(LogMsgParseDepthExceeded, zap.Int(LogFieldDepth, p.depth))
		return nil, false
	}

	p.depth++
	defer func() { p.depth-- }()

	return MarkAndClearOrReset(buffer, func() (*ParseResult, bool) {
		result, ok := expr.Match(buffer, p)
		if !ok || !buffer.AtEnd() {
			return nil, false
		}
		return result, true
	})
}

// Choice is an ordered alternation of expressions. Each alternative is tried
// in its own transactional region; the first one that matches wins.
type Choice struct {
	name         string
	alternatives []Expression
}

// NewChoice creates an alternation. More alternatives can be added later with
// Add, which allows grammars to refer to themselves.
func NewChoice(name string, alternatives ...Expression) *Choice {
	return &Choice{name: name, alternatives: alternatives}
}

// Add appends alternatives
func (c *Choice) Add(alternatives ...Expression) *Choice {
	c.alternatives = append(c.alternatives, alternatives...)
	return c
}

// Name returns the choice name
func (c *Choice) Name() string {
	return c.name
}

// Match tries each alternative in order.
func (c *Choice) Match(buffer *InputBuffer, parser *Parser) (*ParseResult, bool) {
	for _, alternative := range c.alternatives {
		result, ok := MarkAndClearOrReset(buffer, func() (*ParseResult, bool) {
			return alternative.Match(buffer, parser)
		})
		if ok {
			return result, true
		}
	}
	return nil, false
}
