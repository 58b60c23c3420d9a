package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
	"storeboard/internal/domain/expense"
)

const (
	categoriesTable = "expense_categories"
	expensesTable   = "expenses"
)

// ExpenseRepo implements expense.Repository on PostgreSQL.
type ExpenseRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// NewExpenseRepo creates a new expense repository.
func NewExpenseRepo(txManager *TxManager) *ExpenseRepo {
	return &ExpenseRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type categoryRow struct {
	ID          id.ID  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Type        string `db:"type"`
}

type expenseRow struct {
	ID          id.ID       `db:"id"`
	CategoryID  id.ID       `db:"category_id"`
	Name        string      `db:"name"`
	Amount      types.Money `db:"amount"`
	Date        time.Time   `db:"date"`
	Description string      `db:"description"`
}

// ListCategories returns all categories in creation order.
func (r *ExpenseRepo) ListCategories(ctx context.Context) ([]expense.Category, error) {
	q := r.builder.Select("id", "name", "description", "type").
		From(categoriesTable).OrderBy("id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []categoryRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, wrapStoreErr("select categories", err)
	}

	categories := make([]expense.Category, len(rows))
	for i, row := range rows {
		categories[i] = expense.Category{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Type:        expense.CategoryType(row.Type),
		}
	}
	return categories, nil
}

// GetCategory returns one category by id.
func (r *ExpenseRepo) GetCategory(ctx context.Context, categoryID id.ID) (*expense.Category, error) {
	q := r.builder.Select("id", "name", "description", "type").
		From(categoriesTable).
		Where(squirrel.Eq{"id": categoryID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row categoryRow
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("category", categoryID.String())
		}
		return nil, wrapStoreErr("get category", err)
	}

	return &expense.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Type:        expense.CategoryType(row.Type),
	}, nil
}

// CreateCategory inserts a new category.
func (r *ExpenseRepo) CreateCategory(ctx context.Context, c *expense.Category) error {
	q := r.builder.Insert(categoriesTable).
		Columns("id", "name", "description", "type").
		Values(c.ID, c.Name, c.Description, string(c.Type))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return wrapStoreErr("insert category", err)
	}
	return nil
}

// UpdateCategory stores category changes.
func (r *ExpenseRepo) UpdateCategory(ctx context.Context, c *expense.Category) error {
	q := r.builder.Update(categoriesTable).
		Set("name", c.Name).
		Set("description", c.Description).
		Set("type", string(c.Type)).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return wrapStoreErr("update category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("category", c.ID.String())
	}
	return nil
}

// DeleteCategory removes a category.
func (r *ExpenseRepo) DeleteCategory(ctx context.Context, categoryID id.ID) error {
	q := r.builder.Delete(categoriesTable).Where(squirrel.Eq{"id": categoryID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return wrapStoreErr("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("category", categoryID.String())
	}
	return nil
}

// ListExpenses returns expenses with date in [from, to], oldest first.
func (r *ExpenseRepo) ListExpenses(ctx context.Context, from, to time.Time) ([]expense.Expense, error) {
	q := r.builder.Select("id", "category_id", "name", "amount", "date", "description").
		From(expensesTable).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []expenseRow
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, wrapStoreErr("select expenses", err)
	}

	expenses := make([]expense.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = expense.Expense{
			ID:          row.ID,
			CategoryID:  row.CategoryID,
			Name:        row.Name,
			Amount:      row.Amount,
			Date:        row.Date,
			Description: row.Description,
		}
	}
	return expenses, nil
}

// CreateExpense inserts a new expense.
func (r *ExpenseRepo) CreateExpense(ctx context.Context, e *expense.Expense) error {
	q := r.builder.Insert(expensesTable).
		Columns("id", "category_id", "name", "amount", "date", "description").
		Values(e.ID, e.CategoryID, e.Name, e.Amount, e.Date, e.Description)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return wrapStoreErr("insert expense", err)
	}
	return nil
}

// UpdateExpense stores expense changes.
func (r *ExpenseRepo) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	q := r.builder.Update(expensesTable).
		Set("category_id", e.CategoryID).
		Set("name", e.Name).
		Set("amount", e.Amount).
		Set("date", e.Date).
		Set("description", e.Description).
		Where(squirrel.Eq{"id": e.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return wrapStoreErr("update expense", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", e.ID.String())
	}
	return nil
}

// DeleteExpense removes an expense.
func (r *ExpenseRepo) DeleteExpense(ctx context.Context, expenseID id.ID) error {
	q := r.builder.Delete(expensesTable).Where(squirrel.Eq{"id": expenseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return wrapStoreErr("delete expense", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", expenseID.String())
	}
	return nil
}

var _ expense.Repository = (*ExpenseRepo)(nil)
