package thymeleaf

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteResolver(t *testing.T) *SQLResolver {
	t.Helper()
	r, err := NewSQLResolver(SQLConfig{
		Driver:      SQLDriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "templates.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewSQLResolver_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  SQLConfig
		wantMsg string
	}{
		{"empty dsn", SQLConfig{Driver: SQLDriverSQLite}, ErrMsgSQLEmptyDSN},
		{"unknown driver", SQLConfig{Driver: "oracle", DSN: "x"}, ErrMsgSQLUnknownDriver},
		{"bad prefix", SQLConfig{Driver: SQLDriverSQLite, DSN: "x", TablePrefix: "t; DROP"}, ErrMsgSQLInvalidPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSQLResolver(tt.config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSQLResolver_SQLite(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteResolver(t)

	t.Run("save and resolve", func(t *testing.T) {
		require.NoError(t, r.Save(ctx, "home", "<p>v1</p>"))

		source, err := r.Resolve(ctx, "home")
		require.NoError(t, err)
		assert.Equal(t, "<p>v1</p>", source)

		stored, err := r.Get(ctx, "home")
		require.NoError(t, err)
		assert.Equal(t, "home", stored.Name)
		assert.False(t, stored.UpdatedAt.IsZero())
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, r.Save(ctx, "home", "<p>v2</p>"))

		source, err := r.Resolve(ctx, "home")
		require.NoError(t, err)
		assert.Equal(t, "<p>v2</p>", source)
	})

	t.Run("names", func(t *testing.T) {
		require.NoError(t, r.Save(ctx, "about", "<p>about</p>"))

		names, err := r.Names(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"about", "home"}, names)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := r.Resolve(ctx, "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgTemplateNotFound)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		name, ok := customErr.GetMetadata(MetaKeyName)
		assert.True(t, ok)
		assert.Equal(t, "missing", name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, "about"))
		require.NoError(t, r.Delete(ctx, "about"))

		_, err := r.Resolve(ctx, "about")
		require.Error(t, err)
	})

	t.Run("invalid name", func(t *testing.T) {
		err := r.Save(ctx, "../x", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidTemplate)
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		require.NoError(t, r.Migrate(ctx))
	})

	t.Run("with engine", func(t *testing.T) {
		require.NoError(t, r.Save(ctx, "page", page(`<p th:text="${v}">x</p>`)))

		engine := MustNew(WithResolver(r))
		out, err := engine.ProcessTemplate(ctx, "page", map[string]any{"v": "from db"})
		require.NoError(t, err)
		assert.Equal(t, rendered(`<p>from db</p>`), out)
	})
}

func TestSQLResolver_CustomPrefix(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "shared.db")

	open := func(prefix string) *SQLResolver {
		r, err := NewSQLResolver(SQLConfig{
			Driver:       SQLDriverSQLite,
			DSN:          dsn,
			TablePrefix:  prefix,
			AutoMigrate:  true,
			QueryTimeout: 5 * time.Second,
		})
		require.NoError(t, err)
		return r
	}

	first := open("site_a_")
	require.NoError(t, first.Save(ctx, "home", "a"))
	require.NoError(t, first.Close())

	second := open("site_b_")
	defer second.Close()

	_, err := second.Resolve(ctx, "home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgTemplateNotFound)
}

func TestSQLResolver_Closed(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteResolver(t)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err := r.Resolve(ctx, "home")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgResolverClosed)

	err = r.Save(ctx, "home", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgResolverClosed)

	_, err = r.Names(ctx)
	require.Error(t, err)
}
