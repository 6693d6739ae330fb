package assistant

import (
	"context"

	"github.com/nfrund/finassist/internal/finapi"
)

// The helpers below each wrap a single upstream request. On any failure they
// log and return a sentinel: nil for object results, an empty slice for lists.

const (
	DefaultTrendMonths = 6
	DefaultSearchLimit = 50
)

func (c *Controller) CalculateLoan(ctx context.Context, principal, annualRate float64, termYears int) *finapi.LoanResult {
	res, err := c.api.LoanCalculator(ctx, finapi.LoanRequest{
		Principal:  principal,
		AnnualRate: annualRate,
		TermYears:  termYears,
	})
	if err != nil {
		c.logger.Error("Loan calculation failed", "error", err)
		return nil
	}
	return res
}

func (c *Controller) CalculateInterest(ctx context.Context, req finapi.InterestRequest) *finapi.InterestResult {
	res, err := c.api.InterestCalculator(ctx, req)
	if err != nil {
		c.logger.Error("Interest calculation failed", "error", err)
		return nil
	}
	return res
}

func (c *Controller) ConvertCurrency(ctx context.Context, amount float64, from, to string) *finapi.Conversion {
	res, err := c.api.ConvertCurrency(ctx, amount, from, to)
	if err != nil {
		c.logger.Error("Currency conversion failed", "error", err)
		return nil
	}
	return res
}

// GetExpenseTrends covers the last months months; zero or less means six.
func (c *Controller) GetExpenseTrends(ctx context.Context, months int) *finapi.ExpenseTrends {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	res, err := c.api.ExpenseTrends(ctx, months)
	if err != nil {
		c.logger.Error("Expense trends failed", "error", err)
		return nil
	}
	return res
}

func (c *Controller) GetAlerts(ctx context.Context, unreadOnly bool) []finapi.Alert {
	alerts, err := c.api.Alerts(ctx, unreadOnly)
	if err != nil {
		c.logger.Error("Alerts failed", "error", err)
		return []finapi.Alert{}
	}
	if alerts == nil {
		return []finapi.Alert{}
	}
	return alerts
}

// SearchTransactions returns at most limit matches; zero or less means 50.
func (c *Controller) SearchTransactions(ctx context.Context, query string, limit int) []finapi.Transaction {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	txs, err := c.api.SearchTransactions(ctx, query, limit)
	if err != nil {
		c.logger.Error("Transaction search failed", "error", err)
		return []finapi.Transaction{}
	}
	if txs == nil {
		return []finapi.Transaction{}
	}
	return txs
}

// GetAccountStatement sends only the filters that are set.
func (c *Controller) GetAccountStatement(ctx context.Context, q finapi.StatementQuery) *finapi.Statement {
	res, err := c.api.AccountStatement(ctx, q)
	if err != nil {
		c.logger.Error("Account statement failed", "error", err)
		return nil
	}
	return res
}

// CalculateDebtPayoff plans a payoff; an empty strategy means snowball.
func (c *Controller) CalculateDebtPayoff(ctx context.Context, debts []finapi.Debt, monthlyPayment float64, strategy string) *finapi.DebtPayoffResult {
	if strategy == "" {
		strategy = finapi.StrategySnowball
	}
	res, err := c.api.DebtPayoff(ctx, finapi.DebtPayoffRequest{
		Debts:          debts,
		MonthlyPayment: monthlyPayment,
		Strategy:       strategy,
	})
	if err != nil {
		c.logger.Error("Debt payoff failed", "error", err)
		return nil
	}
	return res
}

func (c *Controller) GetFinancialCalendar(ctx context.Context, month string) *finapi.FinancialCalendar {
	res, err := c.api.FinancialCalendar(ctx, month)
	if err != nil {
		c.logger.Error("Financial calendar failed", "error", err)
		return nil
	}
	return res
}

func (c *Controller) GetRecurringTransactions(ctx context.Context) []finapi.RecurringTransaction {
	recs, err := c.api.RecurringTransactions(ctx)
	if err != nil {
		c.logger.Error("Recurring transactions failed", "error", err)
		return []finapi.RecurringTransaction{}
	}
	if recs == nil {
		return []finapi.RecurringTransaction{}
	}
	return recs
}
