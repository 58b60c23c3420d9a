package finance

import (
	"fmt"
	"sort"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/types"
)

// Revenue maps platform identifier to that platform's revenue for the period.
// Supplied per computation; platforms absent from the map are treated as zero.
type Revenue map[string]types.Money

// Expenses groups categorized expenses into the four fixed groups.
// Each group maps an arbitrary key (category, employee, product) to an amount.
type Expenses struct {
	Fixed    map[string]types.Money `json:"fixed"`
	Variable map[string]types.Money `json:"variable"`
	Labor    map[string]types.Money `json:"labor"`
	Products map[string]types.Money `json:"products"`
}

// PlatformMetric is the per-platform slice of a metrics snapshot.
type PlatformMetric struct {
	Revenue        types.Money `json:"revenue"`
	Commission     types.Money `json:"commission"`
	CommissionRate types.Rate  `json:"commissionRate"`
}

// Metrics is an immutable snapshot derived from one aggregator call.
// Invariants: TotalRevenue = Σ platform revenues;
// TotalExpenses = Σ group totals + Σ commissions;
// NetProfit = TotalRevenue − TotalExpenses.
type Metrics struct {
	TotalRevenue    types.Money               `json:"totalRevenue"`
	TotalExpenses   types.Money               `json:"totalExpenses"`
	NetProfit       types.Money               `json:"netProfit"`
	PlatformMetrics map[string]PlatformMetric `json:"platformMetrics"`
}

// ComputeMetrics derives a metrics snapshot from revenue and expenses.
// Pure function: no state, no side effects; identical inputs produce
// identical snapshots (all summation runs in sorted key order).
func ComputeMetrics(revenue Revenue, expenses Expenses) (*Metrics, error) {
	if err := validateRevenue(revenue); err != nil {
		return nil, err
	}
	if err := validateExpenses(expenses); err != nil {
		return nil, err
	}

	// Per-platform breakdown covers the union of the rate table and the
	// revenue input: configured platforms always appear (zero when absent
	// from revenue), unconfigured platforms appear zero-rated.
	platforms := make(map[string]struct{}, len(CommissionRates)+len(revenue))
	for p := range CommissionRates {
		platforms[p] = struct{}{}
	}
	for p := range revenue {
		platforms[p] = struct{}{}
	}

	names := make([]string, 0, len(platforms))
	for p := range platforms {
		names = append(names, p)
	}
	sort.Strings(names)

	totalRevenue := types.Zero()
	totalCommission := types.Zero()
	breakdown := make(map[string]PlatformMetric, len(names))

	for _, p := range names {
		rev := types.Zero()
		if r, ok := revenue[p]; ok {
			rev = r
		}
		rate := RateFor(p)
		commission := rev.Mul(rate)

		breakdown[p] = PlatformMetric{
			Revenue:        rev,
			Commission:     commission,
			CommissionRate: rate,
		}

		totalRevenue = totalRevenue.Add(rev)
		totalCommission = totalCommission.Add(commission)
	}

	totalExpenses := sumGroup(expenses.Fixed).
		Add(sumGroup(expenses.Variable)).
		Add(sumGroup(expenses.Labor)).
		Add(sumGroup(expenses.Products)).
		Add(totalCommission)

	return &Metrics{
		TotalRevenue:    totalRevenue,
		TotalExpenses:   totalExpenses,
		NetProfit:       totalRevenue.Sub(totalExpenses),
		PlatformMetrics: breakdown,
	}, nil
}

// sumGroup totals one expense group in sorted key order.
func sumGroup(group map[string]types.Money) types.Money {
	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := types.Zero()
	for _, k := range keys {
		total = total.Add(group[k])
	}
	return total
}

func validateRevenue(revenue Revenue) error {
	for platform, amount := range revenue {
		if amount.IsNegative() {
			return apperror.NewValidation("revenue must be non-negative").
				WithDetail("platform", platform).
				WithDetail("amount", amount.String())
		}
	}
	return nil
}

func validateExpenses(expenses Expenses) error {
	groups := []struct {
		name  string
		items map[string]types.Money
	}{
		{"fixed", expenses.Fixed},
		{"variable", expenses.Variable},
		{"labor", expenses.Labor},
		{"products", expenses.Products},
	}

	for _, g := range groups {
		for key, amount := range g.items {
			if amount.IsNegative() {
				return apperror.NewValidation("expense must be non-negative").
					WithDetail("group", g.name).
					WithDetail("key", key).
					WithDetail("amount", amount.String())
			}
		}
	}
	return nil
}

// String renders a compact summary, useful in logs.
func (m *Metrics) String() string {
	return fmt.Sprintf("revenue=%s expenses=%s profit=%s",
		m.TotalRevenue, m.TotalExpenses, m.NetProfit)
}
