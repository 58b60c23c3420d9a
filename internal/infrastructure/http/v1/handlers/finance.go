package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"storeboard/internal/core/apperror"
	"storeboard/internal/domain/expense"
	"storeboard/internal/domain/finance"
	"storeboard/internal/infrastructure/http/v1/dto"
	"storeboard/internal/infrastructure/integrator/youzan"
)

// RevenueSource pulls one platform's daily revenue summary.
type RevenueSource interface {
	GetDailyRevenue(ctx context.Context, date time.Time) (*youzan.RevenueSummary, error)
}

// FinanceHandler serves metric snapshots and the dashboard view.
type FinanceHandler struct {
	*BaseHandler
	expenses *expense.Service
	revenue  RevenueSource
}

// NewFinanceHandler creates a new finance handler. revenue may be nil
// when no platform integration is configured.
func NewFinanceHandler(base *BaseHandler, expenses *expense.Service, revenue RevenueSource) *FinanceHandler {
	return &FinanceHandler{BaseHandler: base, expenses: expenses, revenue: revenue}
}

// Metrics computes a snapshot from caller-supplied revenue and
// expenses.
func (h *FinanceHandler) Metrics(c *gin.Context) {
	var req dto.MetricsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	metrics, err := finance.ComputeMetrics(req.Revenue, req.Expenses.ToExpenses())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, metrics)
}

// Dashboard computes a snapshot for one day from the platform revenue
// source and stored expenses.
func (h *FinanceHandler) Dashboard(c *gin.Context) {
	date, ok := h.parseDate(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	revenue := finance.Revenue{}
	if h.revenue != nil {
		summary, err := h.revenue.GetDailyRevenue(ctx, date)
		if err != nil {
			h.Error(c, err)
			return
		}
		revenue[finance.PlatformYouzan] = summary.TotalRevenue
	}

	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)
	groups, err := h.expenses.GroupTotals(ctx, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	metrics, err := finance.ComputeMetrics(revenue, groups)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, metrics)
}

// DailyRevenue returns one platform's revenue summary for one day.
func (h *FinanceHandler) DailyRevenue(c *gin.Context) {
	platform := c.DefaultQuery("platform", finance.PlatformYouzan)
	if platform != finance.PlatformYouzan {
		h.Error(c, apperror.NewValidation("no revenue source configured for platform").
			WithDetail("platform", platform))
		return
	}
	if h.revenue == nil {
		h.Error(c, apperror.NewValidation("platform integration is not configured"))
		return
	}

	date, ok := h.parseDate(c)
	if !ok {
		return
	}

	summary, err := h.revenue.GetDailyRevenue(c.Request.Context(), date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.DailyRevenueResponse{
		Platform:     platform,
		Date:         date.Format("2006-01-02"),
		TotalRevenue: summary.TotalRevenue,
		OrderCount:   summary.OrderCount,
		Commission:   summary.Commission,
	})
}

func (h *FinanceHandler) parseDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("date must be YYYY-MM-DD").WithDetail("date", raw))
		return time.Time{}, false
	}
	return date, true
}
