package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"clinic-admin/internal/domain"
)

// Revenue fetches the daily revenue breakdown for one month.
func (c *Client) Revenue(ctx context.Context, month, year int) ([]domain.RevenueRow, error) {
	return fetchReport[domain.RevenueRow](ctx, c, "/api/reports/revenue/", month, year)
}

// MedicationUsage fetches per-medicine consumption totals for one month.
func (c *Client) MedicationUsage(ctx context.Context, month, year int) ([]domain.MedicationUsageRow, error) {
	return fetchReport[domain.MedicationUsageRow](ctx, c, "/api/reports/medication-usage/", month, year)
}

func fetchReport[T any](ctx context.Context, c *Client, path string, month, year int) ([]T, error) {
	q := url.Values{}
	q.Set("month", fmt.Sprintf("%d", month))
	q.Set("year", fmt.Sprintf("%d", year))
	resp, err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return nil, err
	}
	return normalizeList[T](body)
}

// DashboardSummary fetches the aggregate counters behind the home page.
func (c *Client) DashboardSummary(ctx context.Context) (domain.DashboardSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/dashboard/summary/", nil)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	body, err := checkStatus(resp)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	var s domain.DashboardSummary
	if err := json.Unmarshal(body, &s); err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("parse summary: %w", err)
	}
	return s, nil
}
