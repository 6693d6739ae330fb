package finapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nfrund/finassist/internal/finapi"
	"github.com/nfrund/finassist/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, api *testutils.FakeAPI) *finapi.Client {
	t.Helper()
	c, err := finapi.New(api.URL())
	require.NoError(t, err)
	return c
}

func login(t *testing.T, c *finapi.Client) {
	t.Helper()
	res, err := c.Login(context.Background(), finapi.Credentials{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.True(t, res.Success)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := finapi.New("/api")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	ctx := context.Background()

	t.Run("valid credentials return the user", func(t *testing.T) {
		c := newClient(t, api)
		res, err := c.Login(ctx, finapi.Credentials{Username: "alice", Password: "secret"})
		require.NoError(t, err)
		assert.True(t, res.Success)
		require.NotNil(t, res.User)
		assert.Equal(t, "Alice Doe", res.User.DisplayName())
		assert.NotEmpty(t, c.Cookies(), "login should leave a session cookie in the jar")
	})

	t.Run("rejected credentials are a body flag, not an error", func(t *testing.T) {
		c := newClient(t, api)
		res, err := c.Login(ctx, finapi.Credentials{Username: "alice", Password: "wrong"})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid credentials", res.Message)
	})
}

func TestAccountRequiresSession(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	c := newClient(t, api)
	ctx := context.Background()

	_, err := c.Account(ctx)
	assert.ErrorIs(t, err, finapi.ErrUnauthorized)
	assert.True(t, finapi.IsUnauthorized(err))

	login(t, c)
	info, err := c.Account(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.User.Username)
	assert.Len(t, info.Accounts, 2)
}

func TestLogoutClearsSession(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	c := newClient(t, api)
	ctx := context.Background()
	login(t, c)

	res, err := c.Logout(ctx)
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = c.Account(ctx)
	assert.ErrorIs(t, err, finapi.ErrUnauthorized)
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	c := newClient(t, api)
	login(t, c)

	_, err := c.ConvertCurrency(context.Background(), 10, "USD", "XYZ")
	var se *finapi.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "Currency not supported", se.Message)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	api.Drop("/api/currency-convert")
	c := newClient(t, api)

	_, err := c.ConvertCurrency(context.Background(), 10, "USD", "EUR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finapi:")
	assert.False(t, finapi.IsUnauthorized(err))
}

func TestQueryEndpoints(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	c := newClient(t, api)
	ctx := context.Background()
	login(t, c)

	t.Run("loan calculator", func(t *testing.T) {
		res, err := c.LoanCalculator(ctx, finapi.LoanRequest{Principal: 12000, AnnualRate: 0, TermYears: 1})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, res.MonthlyPayment)
		assert.Equal(t, 12, res.NumPayments)
	})

	t.Run("currency conversion", func(t *testing.T) {
		res, err := c.ConvertCurrency(ctx, 100, "USD", "EUR")
		require.NoError(t, err)
		assert.Equal(t, 92.0, res.ConvertedAmount)
		assert.Equal(t, "EUR", res.ToCurrency)
	})

	t.Run("search encodes the query", func(t *testing.T) {
		txs, err := c.SearchTransactions(ctx, "electric bill", 10)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, "Electric Bill", txs[0].Description)
	})

	t.Run("statement passes only the given filters", func(t *testing.T) {
		st, err := c.AccountStatement(ctx, finapi.StatementQuery{AccountNumber: "ACC002"})
		require.NoError(t, err)
		assert.Equal(t, "ACC002", st.Account.AccountNumber)
		assert.Equal(t, "2026-10-16", st.Period.EndDate)
	})

	t.Run("unread alerts only", func(t *testing.T) {
		api.SetAlerts([]finapi.Alert{
			{ID: 1, Message: "Low balance", IsRead: 0},
			{ID: 2, Message: "Old news", IsRead: 1},
		})
		alerts, err := c.Alerts(ctx, true)
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, "Low balance", alerts[0].Message)
	})

	t.Run("spending analysis forwards days", func(t *testing.T) {
		sa, err := c.SpendingAnalysis(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, 30, sa.PeriodDays)
		assert.InDelta(t, 320.40, sa.Analysis["Food"], 0.001)
	})
}

func TestCookiesCanSeedAnotherClient(t *testing.T) {
	api := testutils.NewFakeAPI(t)
	first := newClient(t, api)
	login(t, first)

	second := newClient(t, api)
	second.SetCookies(first.Cookies())

	info, err := second.Account(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", info.User.Username)
}
