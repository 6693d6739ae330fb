package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/nfrund/finassist/internal/finapi"
	"github.com/nfrund/finassist/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *testutils.FakeAPI {
	t.Helper()
	api := testutils.NewFakeAPI(t)
	t.Setenv("FINASSIST_API_URL", api.URL())
	t.Setenv("FINASSIST_STATE_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	return api
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "finassist v"+version+"\n", out)
}

func TestConvertNeedsNoLogin(t *testing.T) {
	setup(t)

	out, err := run(t, "", "query", "convert", "100", "usd", "eur")
	require.NoError(t, err)

	var conv finapi.Conversion
	require.NoError(t, json.Unmarshal([]byte(out), &conv))
	assert.Equal(t, "USD", conv.FromCurrency)
	assert.Equal(t, "EUR", conv.ToCurrency)
	assert.Equal(t, 100.0, conv.Amount)

	_, err = run(t, "", "query", "convert", "lots", "USD", "EUR")
	assert.ErrorContains(t, err, `amount "lots"`)
}

func TestSessionIsRememberedBetweenCommands(t *testing.T) {
	setup(t)

	_, err := run(t, "", "dashboard")
	require.ErrorIs(t, err, errNotLoggedIn)

	out, err := run(t, "secret\n", "login", "--username", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Alice Doe")

	out, err = run(t, "", "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "ACC001")
	assert.Contains(t, out, "12,500.50 USD")

	out, err = run(t, "", "query", "loan", "--principal", "10000", "--rate", "5", "--years", "2")
	require.NoError(t, err)
	var loan finapi.LoanResult
	require.NoError(t, json.Unmarshal([]byte(out), &loan))
	assert.Equal(t, 24, loan.NumPayments)

	out, err = run(t, "", "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)

	_, err = run(t, "", "dashboard")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestLoginRejected(t *testing.T) {
	setup(t)

	_, err := run(t, "wrong\n", "login", "--username", "alice")
	assert.ErrorContains(t, err, "Invalid credentials")
}

func TestQueryFailureIsAnError(t *testing.T) {
	setup(t)

	_, err := run(t, "", "query", "trends", "--months", "3")
	assert.ErrorContains(t, err, "expense trends failed")
}

func TestParseDebt(t *testing.T) {
	d, err := parseDebt("Card:5000:19.9:150")
	require.NoError(t, err)
	assert.Equal(t, finapi.Debt{Name: "Card", Balance: 5000, InterestRate: 19.9, MinimumPayment: 150}, d)

	d, err = parseDebt("Loan:1200")
	require.NoError(t, err)
	assert.Equal(t, finapi.Debt{Name: "Loan", Balance: 1200}, d)

	for _, bad := range []string{"Card", ":100", "Card:x", "a:1:2:3:4"} {
		_, err := parseDebt(bad)
		assert.Error(t, err, bad)
	}
}
