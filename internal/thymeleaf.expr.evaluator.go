package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ContextAccessor is the read-only view of template data used by the evaluator.
type ContextAccessor interface {
	Get(path string) (any, bool)
}

// ExprEvaluator turns parse results of the standard grammar into values.
type ExprEvaluator struct {
	ctx ContextAccessor
}

// NewExprEvaluator creates a new expression evaluator
func NewExprEvaluator(ctx ContextAccessor) *ExprEvaluator {
	return &ExprEvaluator{ctx: ctx}
}

// Evaluate evaluates a parse result and returns its value
func (e *ExprEvaluator) Evaluate(result *ParseResult) (any, error) {
	if result == nil {
		return nil, NewExprEvalError(ErrMsgExprNilResult, StringValueEmpty)
	}

	switch result.Rule {
	case RuleVariable:
		return e.evaluateVariable(result)

	case RuleString:
		raw, _ := result.Raw(0)
		return unescapeStringLiteral(raw), nil

	case RuleNumber:
		raw, _ := result.Raw(0)
		return parseNumberLiteral(raw)

	case RuleBoolean:
		raw, _ := result.Raw(0)
		return raw == StringValueTrue, nil

	case RuleNull:
		return nil, nil

	case RuleToken:
		raw, _ := result.Raw(0)
		return raw, nil

	case RuleNegation:
		operand, ok := result.Sub(0)
		if !ok {
			return nil, NewExprEvalError(ErrMsgExprMissingOperand, result.Text)
		}
		value, err := e.Evaluate(operand)
		if err != nil {
			return nil, err
		}
		return !IsTruthy(value), nil

	case RuleConcatenation:
		return e.evaluateConcatenation(result)

	default:
		return nil, NewExprEvalError(ErrMsgExprUnknownRule, result.Rule)
	}
}

// EvaluateBool evaluates a parse result and coerces it to a boolean
func (e *ExprEvaluator) EvaluateBool(result *ParseResult) (bool, error) {
	value, err := e.Evaluate(result)
	if err != nil {
		return false, err
	}
	return IsTruthy(value), nil
}

// EvaluateString evaluates a parse result and renders it as text
func (e *ExprEvaluator) EvaluateString(result *ParseResult) (string, error) {
	value, err := e.Evaluate(result)
	if err != nil {
		return StringValueEmpty, err
	}
	return AnyToString(value), nil
}

func (e *ExprEvaluator) evaluateVariable(result *ParseResult) (any, error) {
	path, _ := result.Raw(0)
	if e.ctx == nil {
		return nil, NewExprEvalError(ErrMsgExprNoContext, path)
	}
	value, found := e.ctx.Get(path)
	if !found {
		return nil, nil // Missing variables evaluate to nil
	}
	return value, nil
}

func (e *ExprEvaluator) evaluateConcatenation(result *ParseResult) (any, error) {
	var sb strings.Builder
	for i := range result.Groups {
		part, ok := result.Sub(i)
		if !ok {
			return nil, NewExprEvalError(ErrMsgExprMissingOperand, result.Text)
		}
		value, err := e.Evaluate(part)
		if err != nil {
			return nil, err
		}
		sb.WriteString(AnyToString(value))
	}
	return sb.String(), nil
}

func unescapeStringLiteral(raw string) string {
	if !strings.ContainsRune(raw, CharBackslash) {
		return raw
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	escaped := false
	for _, r := range raw {
		if !escaped && r == CharBackslash {
			escaped = true
			continue
		}
		escaped = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func parseNumberLiteral(raw string) (any, error) {
	if !strings.Contains(raw, StrDecimalPoint) {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, nil
		}
	}
	f, err := strconv.ParseFloat(raw, FloatBitSize64)
	if err != nil {
		return nil, NewExprEvalError(ErrMsgExprInvalidNumber, raw)
	}
	return f, nil
}

// IsTruthy applies the dialect's truthiness rules:
//   - nil -> false
//   - bool -> value
//   - numbers of any kind -> non-zero
//   - strings -> false for "", "false", "off" and "no"
//   - slices, arrays and maps -> non-empty
//   - anything else -> true
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(val) {
		case StringValueEmpty, StringValueFalse, StringValueOff, StringValueNo:
			return false
		}
		return true
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int() != 0
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return rv.Uint() != 0
		case reflect.Float32, reflect.Float64:
			return rv.Float() != 0
		case reflect.Slice, reflect.Array, reflect.Map:
			return rv.Len() > 0
		case reflect.Ptr, reflect.Interface:
			return !rv.IsNil()
		default:
			return true
		}
	}
}

// AnyToString converts any value to its text form
func AnyToString(v any) string {
	if v == nil {
		return StringValueEmpty
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return StringValueTrue
		}
		return StringValueFalse
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, IntBase10)
	case float64:
		return strconv.FormatFloat(val, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// ExprEvalError represents an expression evaluation error
type ExprEvalError struct {
	Message string
	Detail  string
}

// NewExprEvalError creates a new expression evaluation error
func NewExprEvalError(message, detail string) *ExprEvalError {
	return &ExprEvalError{
		Message: message,
		Detail:  detail,
	}
}

// Error implements the error interface
func (e *ExprEvalError) Error() string {
	if e.Detail != StringValueEmpty {
		return fmt.Sprintf(ErrFmtMessageDetail, e.Message, e.Detail)
	}
	return e.Message
}

// Expression evaluator error messages
const (
	ErrMsgExprNilResult      = "nil parse result"
	ErrMsgExprUnknownRule    = "unknown expression rule"
	ErrMsgExprNoContext      = "no context available for variable lookup"
	ErrMsgExprMissingOperand = "missing operand"
	ErrMsgExprInvalidNumber  = "invalid number literal"
)
