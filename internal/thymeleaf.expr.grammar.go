package internal

import (
	"regexp"
)

// Rule names of the standard expression grammar
const (
	RuleExpression    = "expression"
	RuleOperand       = "operand"
	RuleConcatenation = "concatenation"
	RuleNegation      = "negation"
	RuleVariable      = "variable"
	RuleString        = "string"
	RuleNumber        = "number"
	RuleBoolean       = "boolean"
	RuleNull          = "null"
	RuleToken         = "token"
)

// Every pattern spans the whole input, so an alternative either consumes the
// buffer or is rejected as a whole.
var (
	patternVariable      = regexp.MustCompile(`^\s*\$\{\s*([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\s*\}\s*$`)
	patternString        = regexp.MustCompile(`^\s*'((?:[^'\\]|\\.)*)'\s*$`)
	patternNumber        = regexp.MustCompile(`^\s*(-?[0-9]+(?:\.[0-9]+)?)\s*$`)
	patternBoolean       = regexp.MustCompile(`^\s*(true|false)\s*$`)
	patternNull          = regexp.MustCompile(`^\s*null\s*$`)
	patternToken         = regexp.MustCompile(`^\s*([A-Za-z0-9_\-]+)\s*$`)
	patternNegation      = regexp.MustCompile(`^\s*(?:!|not\s+)\s*(.+?)\s*$`)
	patternConcatenation = regexp.MustCompile(`^\s*((?:'(?:[^'\\]|\\.)*'|[^+'])+?)\s*\+\s*(.+?)\s*$`)
)

// NewStandardGrammar builds the standard expression grammar:
//
//	expression    := concatenation | operand
//	concatenation := operand '+' expression
//	operand       := negation | variable | string | number | boolean | null | token
//	negation      := ('!' | 'not') operand
//
// The returned expression holds no per-parse state and may be shared.
func NewStandardGrammar() Expression {
	operand := NewChoice(RuleOperand)
	expression := NewChoice(RuleExpression)

	operand.Add(
		NewExpressionMatcher(RuleNegation, patternNegation, operand),
		NewExpressionMatcher(RuleVariable, patternVariable, nil),
		NewExpressionMatcher(RuleString, patternString, nil),
		NewExpressionMatcher(RuleNumber, patternNumber, nil),
		NewExpressionMatcher(RuleBoolean, patternBoolean, nil),
		NewExpressionMatcher(RuleNull, patternNull),
		NewExpressionMatcher(RuleToken, patternToken, nil),
	)
	expression.Add(
		NewExpressionMatcher(RuleConcatenation, patternConcatenation, operand, expression),
		operand,
	)
	return expression
}
