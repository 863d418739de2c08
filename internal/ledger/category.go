package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
	"github.com/Veraticus/solari/internal/service"
)

// CategoryService manages the category namespace that transactions, debts,
// and recurring templates reference.
type CategoryService struct {
	store service.Storage
}

// NewCategoryService creates a category service backed by the given storage.
func NewCategoryService(store service.Storage) *CategoryService {
	return &CategoryService{store: store}
}

// AddCategory creates a category with a unique name.
func (s *CategoryService) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name: %w", common.ErrInvalidInput)
	}

	category := &model.Category{Name: name}
	err := runInTx(ctx, s.store, func(tx service.Tx) error {
		exists, err := tx.CategoryExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("category %q: %w", name, common.ErrDuplicateName)
		}
		return tx.CreateCategory(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("category created", "name", name)
	return category, nil
}

// RenameCategory changes a category's name.
func (s *CategoryService) RenameCategory(ctx context.Context, id int64, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("category name: %w", common.ErrInvalidInput)
	}

	return runInTx(ctx, s.store, func(tx service.Tx) error {
		category, err := tx.GetCategoryByID(ctx, id)
		if err != nil {
			return err
		}
		if category.Name == newName {
			return nil
		}
		exists, err := tx.CategoryExistsByName(ctx, newName)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("category %q: %w", newName, common.ErrDuplicateName)
		}
		category.Name = newName
		return tx.UpdateCategory(ctx, category)
	})
}

// ArchiveCategory hides a category from default listings.
func (s *CategoryService) ArchiveCategory(ctx context.Context, id int64) error {
	return s.setArchived(ctx, id, true)
}

// UnarchiveCategory restores an archived category.
func (s *CategoryService) UnarchiveCategory(ctx context.Context, id int64) error {
	return s.setArchived(ctx, id, false)
}

func (s *CategoryService) setArchived(ctx context.Context, id int64, archived bool) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		category, err := tx.GetCategoryByID(ctx, id)
		if err != nil {
			return err
		}
		category.Archived = archived
		return tx.UpdateCategory(ctx, category)
	})
}

// DeleteCategory removes a category that nothing references. Categories
// referenced by transactions, debts, or recurring templates can only be
// archived.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	return runInTx(ctx, s.store, func(tx service.Tx) error {
		txnCount, err := tx.CountTransactionsByCategory(ctx, id)
		if err != nil {
			return err
		}
		debtCount, err := tx.CountDebtsByCategory(ctx, id)
		if err != nil {
			return err
		}
		recurringCount, err := tx.CountRecurringByCategory(ctx, id)
		if err != nil {
			return err
		}
		if txnCount > 0 || debtCount > 0 || recurringCount > 0 {
			return fmt.Errorf("category is in use, archive it instead: %w", common.ErrInvalidInput)
		}
		return tx.DeleteCategory(ctx, id)
	})
}

// GetCategory returns a category by ID.
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return s.store.GetCategoryByID(ctx, id)
}

// GetCategoryByName returns a category by its unique name.
func (s *CategoryService) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	return s.store.GetCategoryByName(ctx, name)
}

// ListCategories returns categories, optionally including archived ones.
func (s *CategoryService) ListCategories(ctx context.Context, includeArchived bool) ([]model.Category, error) {
	return s.store.ListCategories(ctx, includeArchived)
}

// CountTransactions returns how many transactions reference a category.
func (s *CategoryService) CountTransactions(ctx context.Context, id int64) (int64, error) {
	return s.store.CountTransactionsByCategory(ctx, id)
}
