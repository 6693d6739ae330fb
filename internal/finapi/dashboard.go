package finapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var resp struct {
		Accounts []Account `json:"accounts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/accounts", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

func (c *Client) Budgets(ctx context.Context) ([]Budget, error) {
	var resp struct {
		Budgets []Budget `json:"budgets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/budgets", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Budgets, nil
}

func (c *Client) Goals(ctx context.Context) ([]Goal, error) {
	var resp struct {
		Goals []Goal `json:"goals"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/goals", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Goals, nil
}

func (c *Client) Investments(ctx context.Context) ([]Investment, error) {
	var resp struct {
		Investments []Investment `json:"investments"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/investments", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Investments, nil
}

// SpendingAnalysis returns spending per category over the last days days.
func (c *Client) SpendingAnalysis(ctx context.Context, days int) (*SpendingAnalysis, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	var resp SpendingAnalysis
	if err := c.do(ctx, http.MethodGet, "/api/spending-analysis", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
