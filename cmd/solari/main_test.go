package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/service"
	"github.com/Veraticus/solari/internal/storage"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		rendered := renderError(fmt.Errorf("failed to open database"))
		assert.Contains(t, rendered, "✗")
		assert.Contains(t, rendered, "failed to open database")
	})

	t.Run("user error shows the message, not the cause", func(t *testing.T) {
		err := fmt.Errorf("wallet %q: %w", "Vacation",
			common.NewUserError("no wallet matching \"Vacation\"", common.ErrNotFound))
		rendered := renderError(err)
		assert.Contains(t, rendered, "✗")
		assert.Contains(t, rendered, "no wallet matching \"Vacation\"")
		assert.NotContains(t, rendered, "not found")
	})
}

func TestSetupLoggingRejectsBadConfig(t *testing.T) {
	restoreLevel := viper.GetString("logging.level")
	restoreFormat := viper.GetString("logging.format")
	defer func() {
		viper.Set("logging.level", restoreLevel)
		viper.Set("logging.format", restoreFormat)
	}()

	viper.Set("logging.level", "verbose")
	viper.Set("logging.format", "console")
	assert.True(t, errors.Is(setupLogging(), common.ErrInvalidConfig))

	viper.Set("logging.level", "info")
	viper.Set("logging.format", "yaml")
	assert.True(t, errors.Is(setupLogging(), common.ErrInvalidConfig))

	viper.Set("logging.format", "console")
	assert.NoError(t, setupLogging())
}

func newResolverStore(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestResolveWallet(t *testing.T) {
	ctx := context.Background()
	store := newResolverStore(t)

	wallet := &model.Wallet{Name: "Checking", Type: "checking"}
	require.NoError(t, store.CreateWallet(ctx, wallet))

	t.Run("by name", func(t *testing.T) {
		found, err := resolveWallet(ctx, store, "Checking")
		require.NoError(t, err)
		assert.Equal(t, wallet.ID, found.ID)
	})

	t.Run("by ID", func(t *testing.T) {
		found, err := resolveWallet(ctx, store, fmt.Sprintf("%d", wallet.ID))
		require.NoError(t, err)
		assert.Equal(t, "Checking", found.Name)
	})

	t.Run("missing wallet surfaces a user error", func(t *testing.T) {
		_, err := resolveWallet(ctx, store, "Vacation")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrNotFound))

		var userErr *common.UserError
		require.True(t, errors.As(err, &userErr))
		assert.Contains(t, userErr.UserMessage, "Vacation")
	})
}

func TestResolveCategoryAndCard(t *testing.T) {
	ctx := context.Background()
	store := newResolverStore(t)

	_, err := resolveCategory(ctx, store, "Groceries")
	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = resolveCard(ctx, store, "99")
	require.True(t, errors.As(err, &userErr))
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
