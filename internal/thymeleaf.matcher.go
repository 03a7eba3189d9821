package internal

import (
	"regexp"

	"go.uber.org/zap"
)

// ExpressionMatcher pairs a regular expression with one sub-parser per capture
// group. A match is valid only if the pattern matches and every participating
// group with a sub-parser parses in full; otherwise nothing is consumed.
type ExpressionMatcher struct {
	rule       string
	pattern    *regexp.Regexp
	subParsers []Expression
}

// NewExpressionMatcher creates a matcher. subParsers[i] handles capture group
// i+1 of pattern; a nil entry keeps that group as raw text.
func NewExpressionMatcher(rule string, pattern *regexp.Regexp, subParsers ...Expression) *ExpressionMatcher {
	return &ExpressionMatcher{
		rule:       rule,
		pattern:    pattern,
		subParsers: subParsers,
	}
}

// Rule returns the rule name attached to results of this matcher
func (m *ExpressionMatcher) Rule() string {
	return m.rule
}

// Match reads the pattern at the buffer position and parses each captured group.
func (m *ExpressionMatcher) Match(buffer *InputBuffer, parser *Parser) (*ParseResult, bool) {
	return MarkAndClearOrReset(buffer, func() (*ParseResult, bool) {
		match, ok := buffer.Read(m.pattern)
		if !ok {
			return nil, false
		}

		result := &ParseResult{
			Rule:   m.rule,
			Text:   match.Text,
			Groups: make([]any, len(match.Groups)),
		}
		for i, group := range match.Groups {
			if !group.Present {
				continue
			}
			var sub Expression
			if i < len(m.subParsers) {
				sub = m.subParsers[i]
			}
			if sub == nil {
				result.Groups[i] = group.Text
				continue
			}
			parsed, ok := parser.ParseWithExpression(NewInputBuffer(group.Text), sub)
			if !ok {
				parser.logger.Debug(LogMsgSubParseFailed,
					zap.String(LogFieldRule, m.rule),
					zap.Int(LogFieldGroup, i+1),
				)
				return nil, false
			}
			result.Groups[i] = parsed
		}
		return result, true
	})
}
