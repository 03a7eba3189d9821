package internal

// Parser defaults
const (
	DefaultMaxExpressionDepth = 64
)

// String value constants
const (
	StringValueEmpty = ""
	StringValueTrue  = "true"
	StringValueFalse = "false"
	StringValueOff   = "off"
	StringValueNo    = "no"
)

// Character and string constants
const (
	CharBackslash         = '\\'
	StrDecimalPoint       = "."
	StrSpace              = " "
	StrNamespaceSeparator = ":"
)

// Attribute names
const (
	AttrClass = "class"
)

// Number formatting constants
const (
	IntBase10         = 10
	FloatFormatFlag   = 'f'
	FloatPrecisionAll = -1
	FloatBitSize64    = 64
)

// Error format constants
const (
	ErrFmtMessageDetail = "%s: %s"
)

// Log message constants
const (
	LogMsgParseStart         = "starting expression parse"
	LogMsgParseEnd           = "expression parse complete"
	LogMsgParseDepthExceeded = "expression nesting too deep"
	LogMsgSubParseFailed     = "capture group did not parse"
)

// Log field constants
const (
	LogFieldExpression = "expression"
	LogFieldMatched    = "matched"
	LogFieldDepth      = "depth"
	LogFieldRule       = "rule"
	LogFieldGroup      = "group"
)
