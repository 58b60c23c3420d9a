// Package expense tracks categorized operating expenses and folds
// them into the four-group input the finance aggregator consumes.
package expense

import (
	"strings"
	"time"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/core/types"
)

// CategoryType assigns a category to one of the aggregator's groups.
type CategoryType string

const (
	CategoryFixed    CategoryType = "fixed"
	CategoryVariable CategoryType = "variable"
	CategoryLabor    CategoryType = "labor"
	CategoryProduct  CategoryType = "product"
)

// ValidCategoryType reports whether t is one of the four groups.
func ValidCategoryType(t CategoryType) bool {
	switch t {
	case CategoryFixed, CategoryVariable, CategoryLabor, CategoryProduct:
		return true
	}
	return false
}

// Category groups expenses for aggregation.
type Category struct {
	ID          id.ID
	Name        string
	Description string
	Type        CategoryType
}

// Validate checks the category's caller-supplied fields.
func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	if !ValidCategoryType(c.Type) {
		return apperror.NewValidation("type must be one of fixed, variable, labor, product").
			WithDetail("type", string(c.Type))
	}
	return nil
}

// Expense is one recorded outlay assigned to a category.
type Expense struct {
	ID          id.ID
	CategoryID  id.ID
	Name        string
	Amount      types.Money
	Date        time.Time
	Description string
}

// Validate checks the expense's caller-supplied fields.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return apperror.NewValidation("name is required")
	}
	if id.IsNil(e.CategoryID) {
		return apperror.NewValidation("category_id is required")
	}
	if e.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative")
	}
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required")
	}
	return nil
}
