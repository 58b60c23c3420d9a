// Package finance provides the financial metrics aggregator.
package finance

import (
	"storeboard/internal/core/types"
)

// Platform identifiers for the sales channels the business operates on.
// The set is extensible; unknown platforms contribute revenue at zero commission.
const (
	PlatformMeituan = "meituan"
	PlatformYouzan  = "youzan"
	PlatformDouyin  = "douyin"
)

// CommissionRates is the process-wide commission rate table, keyed by platform.
// Rates are fractions in [0,1] and are never mutated at runtime.
var CommissionRates = map[string]types.Rate{
	PlatformMeituan: types.MustRate("0.035"),
	PlatformYouzan:  types.MustRate("0.006"),
	PlatformDouyin:  types.MustRate("0.15"),
}

// RateFor returns the commission rate for a platform, zero when not configured.
// Revenue from unconfigured platforms is never dropped, only zero-rated.
func RateFor(platform string) types.Rate {
	if rate, ok := CommissionRates[platform]; ok {
		return rate
	}
	return types.Zero()
}
