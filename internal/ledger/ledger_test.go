package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/service"
	"github.com/Veraticus/solari/internal/storage"
)

// newTestStore creates a migrated SQLite database under a temp dir.
func newTestStore(t *testing.T) service.Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err, "failed to create storage")
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()), "failed to migrate")
	return store
}

func newTestCategory(t *testing.T, store service.Storage, name string) *model.Category {
	t.Helper()
	category, err := NewCategoryService(store).AddCategory(context.Background(), name)
	require.NoError(t, err)
	return category
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
