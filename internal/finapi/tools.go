package finapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) LoanCalculator(ctx context.Context, req LoanRequest) (*LoanResult, error) {
	var res LoanResult
	if err := c.do(ctx, http.MethodPost, "/api/loan-calculator", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) InterestCalculator(ctx context.Context, req InterestRequest) (*InterestResult, error) {
	var res InterestResult
	if err := c.do(ctx, http.MethodPost, "/api/interest-calculator", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ConvertCurrency converts amount between two ISO currency codes. It does not
// require a session upstream.
func (c *Client) ConvertCurrency(ctx context.Context, amount float64, from, to string) (*Conversion, error) {
	q := url.Values{
		"amount": {formatAmount(amount)},
		"from":   {from},
		"to":     {to},
	}
	var res Conversion
	if err := c.do(ctx, http.MethodGet, "/api/currency-convert", q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ExpenseTrends(ctx context.Context, months int) (*ExpenseTrends, error) {
	q := url.Values{"months": {strconv.Itoa(months)}}
	var res ExpenseTrends
	if err := c.do(ctx, http.MethodGet, "/api/expense-trends", q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Alerts(ctx context.Context, unreadOnly bool) ([]Alert, error) {
	q := url.Values{"unread_only": {strconv.FormatBool(unreadOnly)}}
	var resp struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/alerts", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// SearchTransactions matches query against transaction descriptions.
func (c *Client) SearchTransactions(ctx context.Context, query string, limit int) ([]Transaction, error) {
	q := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	}
	var resp struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/search-transactions", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *Client) AccountStatement(ctx context.Context, sq StatementQuery) (*Statement, error) {
	q := url.Values{}
	if sq.AccountNumber != "" {
		q.Set("account", sq.AccountNumber)
	}
	if sq.StartDate != "" {
		q.Set("start_date", sq.StartDate)
	}
	if sq.EndDate != "" {
		q.Set("end_date", sq.EndDate)
	}
	var res Statement
	if err := c.do(ctx, http.MethodGet, "/api/account-statement", q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) DebtPayoff(ctx context.Context, req DebtPayoffRequest) (*DebtPayoffResult, error) {
	var res DebtPayoffResult
	if err := c.do(ctx, http.MethodPost, "/api/debt-payoff", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FinancialCalendar lists bills, recurring transactions and goal dates for a
// month formatted YYYY-MM.
func (c *Client) FinancialCalendar(ctx context.Context, month string) (*FinancialCalendar, error) {
	q := url.Values{"month": {month}}
	var res FinancialCalendar
	if err := c.do(ctx, http.MethodGet, "/api/financial-calendar", q, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RecurringTransactions(ctx context.Context) ([]RecurringTransaction, error) {
	var resp struct {
		Recurring []RecurringTransaction `json:"recurring_transactions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/recurring-transactions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recurring, nil
}
