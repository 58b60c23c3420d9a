package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeboard/internal/core/apperror"
	"storeboard/internal/core/types"
)

func money(s string) types.Money {
	return types.MustMoney(s)
}

func TestComputeMetrics(t *testing.T) {
	revenue := Revenue{
		PlatformMeituan: money("60720"),
		PlatformYouzan:  money("15520"),
	}
	expenses := Expenses{
		Fixed: map[string]types.Money{
			"rent":      money("8000"),
			"utilities": money("1200"),
		},
		Variable: map[string]types.Money{
			"packaging": money("2495.63"),
		},
		Labor: map[string]types.Money{
			"wages": money("12000"),
		},
		Products: map[string]types.Money{
			"restock": money("6000"),
		},
	}

	m, err := ComputeMetrics(revenue, expenses)
	require.NoError(t, err)

	assert.Equal(t, "76240", m.TotalRevenue.String())
	assert.Equal(t, "31913.95", m.TotalExpenses.String())
	assert.Equal(t, "44326.05", m.NetProfit.String())

	meituan := m.PlatformMetrics[PlatformMeituan]
	assert.Equal(t, "60720", meituan.Revenue.String())
	assert.Equal(t, "2125.2", meituan.Commission.String())
	assert.Equal(t, "0.035", meituan.CommissionRate.String())

	youzan := m.PlatformMetrics[PlatformYouzan]
	assert.Equal(t, "93.12", youzan.Commission.String())

	// Configured platforms appear even with no revenue.
	douyin, ok := m.PlatformMetrics[PlatformDouyin]
	require.True(t, ok)
	assert.True(t, douyin.Revenue.IsZero())
	assert.True(t, douyin.Commission.IsZero())
}

func TestComputeMetricsProfitIdentity(t *testing.T) {
	revenue := Revenue{
		PlatformMeituan: money("1234.56"),
		PlatformDouyin:  money("789.01"),
	}
	expenses := Expenses{
		Fixed: map[string]types.Money{"rent": money("500")},
		Labor: map[string]types.Money{"wages": money("300.50")},
	}

	m, err := ComputeMetrics(revenue, expenses)
	require.NoError(t, err)

	assert.True(t, m.NetProfit.Equal(m.TotalRevenue.Sub(m.TotalExpenses)),
		"net profit must equal revenue minus expenses")

	sum := types.Zero()
	for _, pm := range m.PlatformMetrics {
		sum = sum.Add(pm.Revenue)
	}
	assert.True(t, sum.Equal(m.TotalRevenue),
		"total revenue must equal the sum of platform revenues")
}

func TestComputeMetricsDeterministic(t *testing.T) {
	revenue := Revenue{
		PlatformMeituan: money("100.10"),
		PlatformYouzan:  money("200.20"),
		PlatformDouyin:  money("300.30"),
		"walkin":        money("50"),
	}
	expenses := Expenses{
		Variable: map[string]types.Money{
			"a": money("1.11"),
			"b": money("2.22"),
			"c": money("3.33"),
		},
	}

	first, err := ComputeMetrics(revenue, expenses)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := ComputeMetrics(revenue, expenses)
		require.NoError(t, err)
		assert.True(t, first.TotalExpenses.Equal(again.TotalExpenses))
		assert.True(t, first.NetProfit.Equal(again.NetProfit))
	}
}

func TestComputeMetricsUnknownPlatformZeroRated(t *testing.T) {
	revenue := Revenue{"walkin": money("1000")}

	m, err := ComputeMetrics(revenue, Expenses{})
	require.NoError(t, err)

	pm, ok := m.PlatformMetrics["walkin"]
	require.True(t, ok)
	assert.Equal(t, "1000", pm.Revenue.String())
	assert.True(t, pm.Commission.IsZero())
	assert.True(t, pm.CommissionRate.IsZero())

	assert.Equal(t, "1000", m.TotalRevenue.String())
	assert.True(t, m.TotalExpenses.IsZero())
	assert.Equal(t, "1000", m.NetProfit.String())
}

func TestComputeMetricsEmptyInputs(t *testing.T) {
	m, err := ComputeMetrics(Revenue{}, Expenses{})
	require.NoError(t, err)

	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.TotalExpenses.IsZero())
	assert.True(t, m.NetProfit.IsZero())
	assert.Len(t, m.PlatformMetrics, len(CommissionRates))
}

func TestComputeMetricsRejectsNegativeAmounts(t *testing.T) {
	tests := []struct {
		name     string
		revenue  Revenue
		expenses Expenses
	}{
		{
			name:    "negative revenue",
			revenue: Revenue{PlatformMeituan: money("-1")},
		},
		{
			name: "negative fixed expense",
			expenses: Expenses{
				Fixed: map[string]types.Money{"rent": money("-100")},
			},
		},
		{
			name: "negative product expense",
			expenses: Expenses{
				Products: map[string]types.Money{"restock": money("-0.01")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeMetrics(tt.revenue, tt.expenses)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}

func TestRateFor(t *testing.T) {
	assert.Equal(t, "0.035", RateFor(PlatformMeituan).String())
	assert.Equal(t, "0.006", RateFor(PlatformYouzan).String())
	assert.Equal(t, "0.15", RateFor(PlatformDouyin).String())
	assert.True(t, RateFor("walkin").IsZero())
}
