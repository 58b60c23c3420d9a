package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
)

type mockRepo struct {
	categories []Category
	expenses   []Expense
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]Category, error) {
	return m.categories, nil
}

func (m *mockRepo) GetCategory(ctx context.Context, categoryID id.ID) (*Category, error) {
	for _, c := range m.categories {
		if c.ID == categoryID {
			return &c, nil
		}
	}
	return nil, apperror.NewNotFound("category", categoryID.String())
}

func (m *mockRepo) CreateCategory(ctx context.Context, c *Category) error {
	m.categories = append(m.categories, *c)
	return nil
}

func (m *mockRepo) UpdateCategory(ctx context.Context, c *Category) error { return nil }

func (m *mockRepo) DeleteCategory(ctx context.Context, categoryID id.ID) error { return nil }

func (m *mockRepo) ListExpenses(ctx context.Context, from, to time.Time) ([]Expense, error) {
	var out []Expense
	for _, e := range m.expenses {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateExpense(ctx context.Context, e *Expense) error {
	m.expenses = append(m.expenses, *e)
	return nil
}

func (m *mockRepo) UpdateExpense(ctx context.Context, e *Expense) error { return nil }

func (m *mockRepo) DeleteExpense(ctx context.Context, expenseID id.ID) error { return nil }

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateExpense(t *testing.T) {
	rent := Category{ID: id.New(), Name: "rent", Type: CategoryFixed}
	repo := &mockRepo{categories: []Category{rent}}
	svc := NewService(repo)

	created, err := svc.CreateExpense(context.Background(), Expense{
		CategoryID: rent.ID,
		Name:       "august rent",
		Amount:     types.MustMoney("8000"),
		Date:       day(1),
	})
	require.NoError(t, err)
	assert.False(t, id.IsNil(created.ID))
	require.Len(t, repo.expenses, 1)
}

func TestCreateExpenseUnknownCategory(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.CreateExpense(context.Background(), Expense{
		CategoryID: id.New(),
		Name:       "august rent",
		Amount:     types.MustMoney("8000"),
		Date:       day(1),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := NewService(&mockRepo{})

	_, err := svc.CreateCategory(context.Background(), Category{Name: "rent", Type: "monthly"})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	_, err = svc.CreateCategory(context.Background(), Category{Type: CategoryFixed})
	require.Error(t, err)
}

func TestGroupTotals(t *testing.T) {
	rent := Category{ID: id.New(), Name: "rent", Type: CategoryFixed}
	packaging := Category{ID: id.New(), Name: "packaging", Type: CategoryVariable}
	wages := Category{ID: id.New(), Name: "wages", Type: CategoryLabor}
	restock := Category{ID: id.New(), Name: "restock", Type: CategoryProduct}

	repo := &mockRepo{
		categories: []Category{rent, packaging, wages, restock},
		expenses: []Expense{
			{ID: id.New(), CategoryID: rent.ID, Name: "august rent", Amount: types.MustMoney("8000"), Date: day(1)},
			{ID: id.New(), CategoryID: packaging.ID, Name: "cups", Amount: types.MustMoney("300.50"), Date: day(5)},
			{ID: id.New(), CategoryID: packaging.ID, Name: "bags", Amount: types.MustMoney("99.50"), Date: day(6)},
			{ID: id.New(), CategoryID: wages.ID, Name: "payroll", Amount: types.MustMoney("12000"), Date: day(15)},
			{ID: id.New(), CategoryID: restock.ID, Name: "beans", Amount: types.MustMoney("6000"), Date: day(20)},
			// Outside the window, must not count.
			{ID: id.New(), CategoryID: rent.ID, Name: "july rent", Amount: types.MustMoney("8000"), Date: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
			// Category deleted, falls back to variable.
			{ID: id.New(), CategoryID: id.New(), Name: "misc", Amount: types.MustMoney("50"), Date: day(10)},
		},
	}
	svc := NewService(repo)

	groups, err := svc.GroupTotals(context.Background(), day(1), day(31))
	require.NoError(t, err)

	assert.Equal(t, "8000", groups.Fixed["rent"].String())
	assert.Equal(t, "400", groups.Variable["packaging"].String())
	assert.Equal(t, "50", groups.Variable["uncategorized"].String())
	assert.Equal(t, "12000", groups.Labor["wages"].String())
	assert.Equal(t, "6000", groups.Products["restock"].String())
}
