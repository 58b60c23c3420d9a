package dto

import (
	"time"

	"storeboard/internal/core/types"
	"storeboard/internal/domain/expense"
)

// CategoryResponse is the external expense category schema.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// FromCategory converts a domain category.
func FromCategory(c expense.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Type:        string(c.Type),
	}
}

// FromCategories converts a list of domain categories.
func FromCategories(categories []expense.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = FromCategory(c)
	}
	return out
}

// CategoryRequest for creating or updating categories.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
}

// ToCategory converts to the domain type.
func (r CategoryRequest) ToCategory() expense.Category {
	return expense.Category{
		Name:        r.Name,
		Description: r.Description,
		Type:        expense.CategoryType(r.Type),
	}
}

// ExpenseResponse is the external expense schema.
type ExpenseResponse struct {
	ID          string      `json:"id"`
	CategoryID  string      `json:"categoryId"`
	Name        string      `json:"name"`
	Amount      types.Money `json:"amount"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description,omitempty"`
}

// FromExpense converts a domain expense.
func FromExpense(e expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		CategoryID:  e.CategoryID.String(),
		Name:        e.Name,
		Amount:      e.Amount,
		Date:        e.Date,
		Description: e.Description,
	}
}

// FromExpenses converts a list of domain expenses.
func FromExpenses(expenses []expense.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = FromExpense(e)
	}
	return out
}

// ExpenseRequest for creating or updating expenses.
type ExpenseRequest struct {
	CategoryID  string      `json:"categoryId" binding:"required"`
	Name        string      `json:"name" binding:"required"`
	Amount      types.Money `json:"amount"`
	Date        time.Time   `json:"date" binding:"required"`
	Description string      `json:"description"`
}
