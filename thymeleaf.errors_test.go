package thymeleaf

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metadata(t *testing.T, err error, key string) string {
	t.Helper()
	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	value, ok := customErr.GetMetadata(key)
	require.True(t, ok, "metadata %q missing", key)
	return value
}

func TestNewExpressionError(t *testing.T) {
	err := NewExpressionError("${")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgExpressionUnparsable)
	assert.Equal(t, "${", metadata(t, err, MetaKeyExpression))
}

func TestNewEvaluationError(t *testing.T) {
	cause := errors.New("bad number")
	err := NewEvaluationError("1e999x", cause)
	assert.Contains(t, err.Error(), ErrMsgExpressionEvalFailed)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "1e999x", metadata(t, err, MetaKeyExpression))
}

func TestNewDocumentError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("eof")
		err := NewDocumentError(ErrMsgDocumentParseFailed, cause)
		assert.Contains(t, err.Error(), ErrMsgDocumentParseFailed)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewDocumentError(ErrMsgNoDocumentElement, nil)
		assert.Contains(t, err.Error(), ErrMsgNoDocumentElement)
	})
}

func TestNewIOError(t *testing.T) {
	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := NewIOError("/tmp/x.html", cause)
		assert.Contains(t, err.Error(), ErrMsgReadFailed)
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, "/tmp/x.html", metadata(t, err, MetaKeyPath))
	})

	t.Run("without cause", func(t *testing.T) {
		err := NewIOError("/tmp/x.html", nil)
		require.Error(t, err)
		assert.Equal(t, "/tmp/x.html", metadata(t, err, MetaKeyPath))
	})
}

func TestNewProcessorError(t *testing.T) {
	cause := NewInvalidRemoveError("bogus")
	err := NewProcessorError(ProcessorNameRemove, "th:remove", "div", cause)

	assert.Contains(t, err.Error(), ErrMsgProcessorFailed)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ProcessorNameRemove, metadata(t, err, MetaKeyProcessor))
	assert.Equal(t, "th:remove", metadata(t, err, MetaKeyAttribute))
	assert.Equal(t, "div", metadata(t, err, MetaKeyElement))

	assert.Equal(t, "bogus", metadata(t, cause, MetaKeyExpression))
}

func TestTemplateErrors(t *testing.T) {
	err := NewTemplateNotFoundError("home")
	assert.Contains(t, err.Error(), ErrMsgTemplateNotFound)
	assert.Equal(t, "home", metadata(t, err, MetaKeyName))

	err = NewInvalidTemplateNameError("../x")
	assert.Contains(t, err.Error(), ErrMsgInvalidTemplate)
	assert.Equal(t, "../x", metadata(t, err, MetaKeyName))

	assert.Contains(t, NewResolverClosedError().Error(), ErrMsgResolverClosed)
}

func TestRegistryErrors(t *testing.T) {
	err := NewRegistryError(ErrMsgProcessorExists, "text")
	assert.Contains(t, err.Error(), ErrMsgProcessorExists)
	assert.Equal(t, "text", metadata(t, err, MetaKeyName))

	err = NewPrefixMismatchError("text", "x")
	assert.Contains(t, err.Error(), ErrMsgPrefixMismatch)
	assert.Equal(t, "x", metadata(t, err, MetaKeyPrefix))
}

func TestConfigErrors(t *testing.T) {
	cause := errors.New("yaml: bad")
	err := NewConfigError(ErrMsgConfigParseFailed, cause)
	assert.Contains(t, err.Error(), ErrMsgConfigParseFailed)
	assert.True(t, errors.Is(err, cause))

	err = sqlError(ErrMsgSQLQueryFailed, SQLDriverSQLite, cause)
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, SQLDriverSQLite, metadata(t, err, MetaKeyDriver))
}

func TestNewPanicError(t *testing.T) {
	cause := errors.New("nil map write")
	err := NewPanicError(cause)
	assert.Contains(t, err.Error(), ErrMsgPanicked)
	assert.True(t, errors.Is(err, cause))

	err = NewPanicError(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPanicked)
}
