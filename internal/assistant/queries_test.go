package assistant_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/nfrund/finassist/internal/finapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryHelpersReturnData(t *testing.T) {
	c, _ := newController(t)
	loginAlice(t, c)
	ctx := context.Background()

	t.Run("loan", func(t *testing.T) {
		res := c.CalculateLoan(ctx, 12000, 0, 1)
		require.NotNil(t, res)
		assert.Equal(t, 1000.0, res.MonthlyPayment)
	})

	t.Run("currency", func(t *testing.T) {
		res := c.ConvertCurrency(ctx, 100, "USD", "GBP")
		require.NotNil(t, res)
		assert.InDelta(t, 79.0, res.ConvertedAmount, 0.001)
	})

	t.Run("expense trends default to six months", func(t *testing.T) {
		res := c.GetExpenseTrends(ctx, 0)
		require.NotNil(t, res)
		assert.Equal(t, 6, res.MonthsAnalyzed)
	})

	t.Run("search", func(t *testing.T) {
		txs := c.SearchTransactions(ctx, "salary", 0)
		require.Len(t, txs, 1)
		assert.Equal(t, 2500.0, txs[0].Amount)
	})

	t.Run("statement", func(t *testing.T) {
		st := c.GetAccountStatement(ctx, finapi.StatementQuery{StartDate: "2026-10-01"})
		require.NotNil(t, st)
		assert.Equal(t, "ACC001", st.Account.AccountNumber)
		assert.Equal(t, "2026-10-01", st.Period.StartDate)
	})

	t.Run("debt payoff defaults to snowball", func(t *testing.T) {
		res := c.CalculateDebtPayoff(ctx, []finapi.Debt{{Name: "Card", Balance: 900}}, 300, "")
		require.NotNil(t, res)
		assert.Equal(t, finapi.StrategySnowball, res.Strategy)
		assert.Equal(t, 3, res.TotalMonths)
	})

	t.Run("calendar", func(t *testing.T) {
		cal := c.GetFinancialCalendar(ctx, "2026-11")
		require.NotNil(t, cal)
		assert.Equal(t, "2026-11", cal.Month)
		assert.Len(t, cal.Calendar, 2)
	})

	t.Run("recurring", func(t *testing.T) {
		recs := c.GetRecurringTransactions(ctx)
		require.Len(t, recs, 1)
		assert.Equal(t, "monthly", recs[0].Frequency)
	})

	t.Run("interest", func(t *testing.T) {
		res := c.CalculateInterest(ctx, finapi.InterestRequest{Principal: 1000, AnnualRate: 5, Years: 1, Compounding: "annually"})
		require.NotNil(t, res)
		assert.Greater(t, res.FutureValue, 1000.0)
	})
}

func TestQueryHelpersReturnSentinels(t *testing.T) {
	ctx := context.Background()

	t.Run("without a session", func(t *testing.T) {
		c, _ := newController(t)

		assert.Nil(t, c.CalculateLoan(ctx, 1000, 5, 1))
		assert.Nil(t, c.GetExpenseTrends(ctx, 3))
		assert.Nil(t, c.GetAccountStatement(ctx, finapi.StatementQuery{}))
		assert.Nil(t, c.GetFinancialCalendar(ctx, "2026-10"))

		alerts := c.GetAlerts(ctx, false)
		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
		txs := c.SearchTransactions(ctx, "bill", 10)
		assert.NotNil(t, txs)
		assert.Empty(t, txs)
		recs := c.GetRecurringTransactions(ctx)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})

	t.Run("on upstream errors", func(t *testing.T) {
		c, api := newController(t)
		loginAlice(t, c)
		api.FailWith("/api/debt-payoff", http.StatusInternalServerError)

		assert.Nil(t, c.ConvertCurrency(ctx, 1, "USD", "XYZ"))
		assert.Nil(t, c.GetAccountStatement(ctx, finapi.StatementQuery{AccountNumber: "ACC999"}))
		assert.Nil(t, c.CalculateDebtPayoff(ctx, []finapi.Debt{{Name: "Card", Balance: 10}}, 5, finapi.StrategyAvalanche))
	})
}
