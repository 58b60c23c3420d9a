package dto

import (
	"storeboard/internal/core/types"
	"storeboard/internal/domain/finance"
)

// MetricsRequest carries revenue and expense inputs for one snapshot.
type MetricsRequest struct {
	Revenue  map[string]types.Money `json:"revenue"`
	Expenses ExpenseGroups          `json:"expenses"`
}

// ExpenseGroups mirrors the aggregator's four groups.
type ExpenseGroups struct {
	Fixed    map[string]types.Money `json:"fixed"`
	Variable map[string]types.Money `json:"variable"`
	Labor    map[string]types.Money `json:"labor"`
	Products map[string]types.Money `json:"products"`
}

// ToExpenses converts to the domain input.
func (g ExpenseGroups) ToExpenses() finance.Expenses {
	return finance.Expenses{
		Fixed:    g.Fixed,
		Variable: g.Variable,
		Labor:    g.Labor,
		Products: g.Products,
	}
}

// MetricsResponse is the snapshot returned to callers. The domain
// type already carries the external field names.
type MetricsResponse = finance.Metrics

// DailyRevenueResponse is one platform's revenue for one day.
type DailyRevenueResponse struct {
	Platform     string      `json:"platform"`
	Date         string      `json:"date"`
	TotalRevenue types.Money `json:"totalRevenue"`
	OrderCount   int         `json:"orderCount"`
	Commission   types.Money `json:"commission"`
}
