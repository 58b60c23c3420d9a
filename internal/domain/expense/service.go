package expense

import (
	"context"
	"fmt"
	"time"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
	"storeboard/internal/domain/finance"
	"storeboard/pkg/logger"
)

// Repository persists categories and expenses.
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, categoryID id.ID) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, categoryID id.ID) error

	ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error)
	CreateExpense(ctx context.Context, e *Expense) error
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, expenseID id.ID) error
}

// Service provides expense tracking operations.
type Service struct {
	repo Repository
}

// NewService creates a new expense service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory validates and stores a new category.
func (s *Service) CreateCategory(ctx context.Context, c Category) (*Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = id.New()

	if err := s.repo.CreateCategory(ctx, &c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	logger.Info(ctx, "expense category created", "category_id", c.ID, "name", c.Name)
	return &c, nil
}

// UpdateCategory validates and stores category changes.
func (s *Service) UpdateCategory(ctx context.Context, categoryID id.ID, c Category) (*Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	existing.Name = c.Name
	existing.Description = c.Description
	existing.Type = c.Type

	if err := s.repo.UpdateCategory(ctx, existing); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return existing, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, categoryID id.ID) error {
	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}
	logger.Info(ctx, "expense category deleted", "category_id", categoryID)
	return nil
}

// ListExpenses returns expenses within [from, to].
func (s *Service) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	return s.repo.ListExpenses(ctx, from, to)
}

// CreateExpense validates the expense, checks its category exists and
// stores it.
func (s *Service) CreateExpense(ctx context.Context, e Expense) (*Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCategory(ctx, e.CategoryID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("category does not exist").
				WithDetail("category_id", e.CategoryID.String())
		}
		return nil, err
	}
	e.ID = id.New()

	if err := s.repo.CreateExpense(ctx, &e); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	logger.Info(ctx, "expense recorded",
		"expense_id", e.ID,
		"category_id", e.CategoryID,
		"amount", e.Amount,
	)
	return &e, nil
}

// UpdateExpense validates and stores expense changes.
func (s *Service) UpdateExpense(ctx context.Context, expenseID id.ID, e Expense) (*Expense, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.ID = expenseID

	if err := s.repo.UpdateExpense(ctx, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, expenseID id.ID) error {
	return s.repo.DeleteExpense(ctx, expenseID)
}

// GroupTotals folds stored expenses in [from, to] into the four-group
// aggregator input, keyed by category name. Expenses whose category
// has been deleted are grouped as variable costs so they still count.
func (s *Service) GroupTotals(ctx context.Context, from, to time.Time) (finance.Expenses, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return finance.Expenses{}, fmt.Errorf("list categories: %w", err)
	}
	expenses, err := s.repo.ListExpenses(ctx, from, to)
	if err != nil {
		return finance.Expenses{}, fmt.Errorf("list expenses: %w", err)
	}

	byID := make(map[id.ID]Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	groups := finance.Expenses{
		Fixed:    make(map[string]types.Money),
		Variable: make(map[string]types.Money),
		Labor:    make(map[string]types.Money),
		Products: make(map[string]types.Money),
	}

	for _, e := range expenses {
		key := "uncategorized"
		group := groups.Variable
		if c, ok := byID[e.CategoryID]; ok {
			key = c.Name
			switch c.Type {
			case CategoryFixed:
				group = groups.Fixed
			case CategoryVariable:
				group = groups.Variable
			case CategoryLabor:
				group = groups.Labor
			case CategoryProduct:
				group = groups.Products
			}
		}
		total, ok := group[key]
		if !ok {
			total = types.Zero()
		}
		group[key] = total.Add(e.Amount)
	}

	return groups, nil
}
