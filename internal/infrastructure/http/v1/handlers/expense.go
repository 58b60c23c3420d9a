package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/id"
	"storeboard/internal/domain/expense"
	"storeboard/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler serves expense and category endpoints.
type ExpenseHandler struct {
	*BaseHandler
	service *expense.Service
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, service *expense.Service) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, service: service}
}

// ListCategories returns all categories.
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategories(categories))
}

// CreateCategory adds a new category.
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.service.CreateCategory(c.Request.Context(), req.ToCategory())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromCategory(*created))
}

// UpdateCategory changes a category.
func (h *ExpenseHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateCategory(c.Request.Context(), categoryID, req.ToCategory())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCategory(*updated))
}

// DeleteCategory removes a category.
func (h *ExpenseHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// List returns expenses within an optional date range. Defaults to
// the current month.
func (h *ExpenseHandler) List(c *gin.Context) {
	from, to, ok := h.parseRange(c)
	if !ok {
		return
	}

	expenses, err := h.service.ListExpenses(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromExpenses(expenses))
}

// Create records a new expense.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, ok := h.toExpense(c, req)
	if !ok {
		return
	}

	created, err := h.service.CreateExpense(c.Request.Context(), e)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromExpense(*created))
}

// Update changes an expense.
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, ok := h.toExpense(c, req)
	if !ok {
		return
	}

	updated, err := h.service.UpdateExpense(c.Request.Context(), expenseID, e)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromExpense(*updated))
}

// Delete removes an expense.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ExpenseHandler) toExpense(c *gin.Context, req dto.ExpenseRequest) (expense.Expense, bool) {
	categoryID, err := id.Parse(req.CategoryID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid category id").WithDetail("categoryId", req.CategoryID))
		return expense.Expense{}, false
	}
	return expense.Expense{
		CategoryID:  categoryID,
		Name:        req.Name,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}, true
}

func (h *ExpenseHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("from must be YYYY-MM-DD").WithDetail("from", raw))
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("to must be YYYY-MM-DD").WithDetail("to", raw))
			return time.Time{}, time.Time{}, false
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, true
}
