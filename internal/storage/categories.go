package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/solari/internal/common"
	"github.com/Veraticus/solari/internal/model"
)

// CreateCategory persists a new category and fills in its ID.
func (q *queries) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.Name, "name"); err != nil {
		return err
	}

	now := time.Now()
	result, err := q.q.ExecContext(ctx,
		`INSERT INTO categories (name, archived, created_at) VALUES (?, ?, ?)`,
		category.Name, category.Archived, now)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get category ID: %w", err)
	}

	category.ID = id
	category.CreatedAt = now

	slog.Debug("created category", "name", category.Name, "id", id)
	return nil
}

// GetCategoryByID returns a category by its ID.
func (q *queries) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT id, name, archived, created_at FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

// GetCategoryByName returns a category by its unique name.
func (q *queries) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := q.q.QueryRowContext(ctx,
		`SELECT id, name, archived, created_at FROM categories WHERE name = ?`, name)
	return scanCategory(row)
}

func scanCategory(row *sql.Row) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Archived, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

// CategoryExistsByName reports whether a category with the given name exists.
func (q *queries) CategoryExistsByName(ctx context.Context, name string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(name, "name"); err != nil {
		return false, err
	}

	var count int
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}

// UpdateCategory rewrites a category's mutable fields.
func (q *queries) UpdateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.Name, "name"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx,
		`UPDATE categories SET name = ?, archived = ? WHERE id = ?`,
		category.Name, category.Archived, category.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRowAffected(result, "category")
}

// DeleteCategory removes a category row. The services ensure nothing still
// references it.
func (q *queries) DeleteCategory(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := q.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRowAffected(result, "category")
}

// ListCategories returns categories ordered by name, optionally including
// archived ones.
func (q *queries) ListCategories(ctx context.Context, includeArchived bool) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, archived, created_at FROM categories`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := q.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Archived, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// CountTransactionsByCategory counts transactions referencing a category.
func (q *queries) CountTransactionsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return 0, err
	}

	var count int64
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions by category: %w", err)
	}
	return count, nil
}

// CountDebtsByCategory counts credit card debts referencing a category.
func (q *queries) CountDebtsByCategory(ctx context.Context, categoryID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return 0, err
	}

	var count int64
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credit_card_debts WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count debts by category: %w", err)
	}
	return count, nil
}

// CountRecurringByCategory counts recurring templates referencing a category.
func (q *queries) CountRecurringByCategory(ctx context.Context, categoryID int64) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(categoryID, "categoryID"); err != nil {
		return 0, err
	}

	var count int64
	err := q.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recurring_transactions WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recurring templates by category: %w", err)
	}
	return count, nil
}
