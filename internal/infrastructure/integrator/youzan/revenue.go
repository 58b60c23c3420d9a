package youzan

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"storeboard/internal/core/types"
	"storeboard/internal/domain/finance"
)

const ordersPageSize = 50

// Order is one paid order as returned by the platform.
type Order struct {
	TID     string      `json:"tid"`
	Status  string      `json:"status"`
	Payment types.Money `json:"payment"`
	Created string      `json:"created"`
	PayTime string      `json:"pay_time"`
}

type ordersPage struct {
	Items        []Order `json:"items"`
	TotalResults int     `json:"total_results"`
}

// RevenueSummary is one day's aggregated platform revenue.
type RevenueSummary struct {
	TotalRevenue types.Money `json:"totalRevenue"`
	OrderCount   int         `json:"orderCount"`
	Commission   types.Money `json:"commission"`
}

// GetOrders returns one page of orders created within [start, end].
func (c *Client) GetOrders(ctx context.Context, start, end string, page, pageSize int) (*ordersPage, error) {
	params := url.Values{}
	params.Set("start_created", start)
	params.Set("end_created", end)
	params.Set("page_no", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	var result ordersPage
	if err := c.get(ctx, "youzan.trades.sold.get", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDailyRevenue sums the day's order payments and applies the
// platform commission rate.
func (c *Client) GetDailyRevenue(ctx context.Context, date time.Time) (*RevenueSummary, error) {
	day := date.Format("2006-01-02")
	start := day + " 00:00:00"
	end := day + " 23:59:59"

	total := types.Zero()
	count := 0

	for page := 1; ; page++ {
		result, err := c.GetOrders(ctx, start, end, page, ordersPageSize)
		if err != nil {
			return nil, fmt.Errorf("get orders for %s: %w", day, err)
		}
		for _, order := range result.Items {
			total = total.Add(order.Payment)
		}
		count += len(result.Items)

		if len(result.Items) < ordersPageSize {
			break
		}
	}

	return &RevenueSummary{
		TotalRevenue: total,
		OrderCount:   count,
		Commission:   total.Mul(finance.RateFor(finance.PlatformYouzan)),
	}, nil
}
