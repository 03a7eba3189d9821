package thymeleaf

import (
	"fmt"

	"github.com/itsatony/go-cuserr"
)

// Error message constants
const (
	// Expression errors
	ErrMsgExpressionUnparsable = "expression could not be parsed"
	ErrMsgExpressionEvalFailed = "expression evaluation failed"

	// Document errors
	ErrMsgDocumentParseFailed  = "document parsing failed"
	ErrMsgDocumentRenderFailed = "document serialization failed"
	ErrMsgNoDocumentElement    = "document has no root element"

	// I/O errors
	ErrMsgReadFailed       = "template could not be read"
	ErrMsgTemplateNotFound = "template not found"
	ErrMsgInvalidTemplate  = "invalid template name"
	ErrMsgResolverClosed   = "template resolver is closed"
	ErrMsgNoResolver       = "no template resolver configured"

	// Processor errors
	ErrMsgProcessorFailed = "attribute processor failed"
	ErrMsgInvalidRemove   = "invalid remove value"
	ErrMsgPanicked        = "template processing panicked"
	ErrFmtPanicValue      = "panic: %v"

	// Registry errors
	ErrMsgNilProcessor       = "processor cannot be nil"
	ErrMsgEmptyProcessorName = "processor name cannot be empty"
	ErrMsgProcessorExists    = "processor already registered"
	ErrMsgPrefixMismatch     = "processor prefix does not match dialect prefix"
	ErrMsgEmptyPrefix        = "dialect prefix cannot be empty"
	ErrMsgDialectFrozen      = "dialect is in use by an engine and cannot be modified"

	// Config errors
	ErrMsgConfigReadFailed    = "config file could not be read"
	ErrMsgConfigParseFailed   = "config file could not be parsed"
	ErrMsgConfigNegativeTTL   = "cache_ttl cannot be negative"
	ErrMsgConfigNegativeDepth = "max_expression_depth cannot be negative"
	ErrMsgSQLEmptyDSN         = "sql connection string cannot be empty"
	ErrMsgSQLUnknownDriver    = "unsupported sql driver"
	ErrMsgSQLOpenFailed       = "sql connection failed"
	ErrMsgSQLQueryFailed      = "sql query failed"
	ErrMsgSQLInvalidPrefix    = "sql table prefix must contain only letters, digits and underscores"
	ErrMsgWatcherFailed       = "template watcher could not be started"
)

// Error code constants for categorization
const (
	ErrCodeExpression = "THYMELEAF_EXPRESSION"
	ErrCodeDocument   = "THYMELEAF_DOCUMENT"
	ErrCodeIO         = "THYMELEAF_IO"
	ErrCodeProcessor  = "THYMELEAF_PROCESSOR"
	ErrCodeRegistry   = "THYMELEAF_REGISTRY"
	ErrCodeConfig     = "THYMELEAF_CONFIG"
)

// NewExpressionError creates an error for an expression that matched no grammar rule.
// Expressions that fail to parse are reported as no-match internally; this
// error is only raised by processors that require a value.
func NewExpressionError(expression string) error {
	return cuserr.NewValidationError(ErrCodeExpression, ErrMsgExpressionUnparsable).
		WithMetadata(MetaKeyExpression, expression)
}

// NewEvaluationError creates an error for an expression that parsed but could not be evaluated
func NewEvaluationError(expression string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeExpression, ErrMsgExpressionEvalFailed).
		WithMetadata(MetaKeyExpression, expression)
}

// NewDocumentError creates a document parse or serialization error
func NewDocumentError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeDocument, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeDocument, msg)
}

// NewIOError creates an error for a template that could not be read
func NewIOError(path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeIO, ErrMsgReadFailed)
	} else {
		err = cuserr.NewInternalError(ErrCodeIO, nil)
	}
	return err.WithMetadata(MetaKeyPath, path)
}

// NewTemplateNotFoundError creates a not found error for a named template
func NewTemplateNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyName, name)
}

// NewInvalidTemplateNameError creates an error for names that are empty or escape the template root
func NewInvalidTemplateNameError(name string) error {
	return cuserr.NewValidationError(ErrCodeIO, ErrMsgInvalidTemplate).
		WithMetadata(MetaKeyName, name)
}

// NewResolverClosedError creates an error for use of a closed resolver
func NewResolverClosedError() error {
	return cuserr.NewValidationError(ErrCodeIO, ErrMsgResolverClosed)
}

// NewProcessorError wraps a failure raised by an attribute processor
func NewProcessorError(processor, attribute, element string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeProcessor, ErrMsgProcessorFailed)
	} else {
		err = cuserr.NewInternalError(ErrCodeProcessor, nil)
	}
	return err.
		WithMetadata(MetaKeyProcessor, processor).
		WithMetadata(MetaKeyAttribute, attribute).
		WithMetadata(MetaKeyElement, element)
}

// NewPanicError converts a recovered panic value into an error. A value that
// is an error stays reachable through errors.Is.
func NewPanicError(value any) error {
	cause, ok := value.(error)
	if !ok {
		cause = fmt.Errorf(ErrFmtPanicValue, value)
	}
	return cuserr.WrapStdError(cause, ErrCodeProcessor, ErrMsgPanicked)
}

// NewInvalidRemoveError creates an error for an unknown th:remove value
func NewInvalidRemoveError(value string) error {
	return cuserr.NewValidationError(ErrCodeProcessor, ErrMsgInvalidRemove).
		WithMetadata(MetaKeyExpression, value)
}

// NewRegistryError creates a dialect registration error
func NewRegistryError(msg, name string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg).
		WithMetadata(MetaKeyName, name)
}

// NewPrefixMismatchError creates an error for a processor built for another dialect prefix
func NewPrefixMismatchError(name, prefix string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgPrefixMismatch).
		WithMetadata(MetaKeyName, name).
		WithMetadata(MetaKeyPrefix, prefix)
}

// sqlError creates a storage error tagged with the sql driver
func sqlError(msg, driver string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeIO, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.WithMetadata(MetaKeyDriver, driver)
}

// NewConfigError creates a configuration error
func NewConfigError(msg string, cause error) error {
	if cause == nil {
		return cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg)
}
