package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nfrund/finassist/internal/assistant"
	"github.com/nfrund/finassist/internal/finapi"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one of the financial tools",
	Long: `Call a single financial tool and print its result as JSON.

Examples:
  finassist query loan --principal 250000 --rate 6.5 --years 30
  finassist query convert 100 USD EUR
  finassist query search grocery --limit 10
  finassist query debt --debt "Card:5000:19.9:150" --debt "Car:12000:5.5:300" --payment 800`,
}

// queryRun wraps a tool call: it restores the session, runs fn and prints
// whatever fn returns.
func queryRun(fn func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		res, err := fn(cmd, args, sess.ctrl)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// orFailed turns a nil helper result into an error.
func orFailed[T any](name string, v *T) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%s failed, see the log for details", name)
	}
	return v, nil
}

var (
	loanPrincipal float64
	loanRate      float64
	loanYears     int
)

var queryLoanCmd = &cobra.Command{
	Use:   "loan",
	Short: "Monthly payment and total interest of a loan",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return orFailed("loan calculation", ctrl.CalculateLoan(cmd.Context(), loanPrincipal, loanRate, loanYears))
	}),
}

var (
	interestPrincipal    float64
	interestRate         float64
	interestYears        int
	interestCompounding  string
	interestContribution float64
)

var queryInterestCmd = &cobra.Command{
	Use:   "interest",
	Short: "Future value with compound interest and contributions",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return orFailed("interest calculation", ctrl.CalculateInterest(cmd.Context(), finapi.InterestRequest{
			Principal:           interestPrincipal,
			AnnualRate:          interestRate,
			Years:               interestYears,
			Compounding:         interestCompounding,
			MonthlyContribution: interestContribution,
		}))
	}),
}

var queryConvertCmd = &cobra.Command{
	Use:   "convert <amount> <from> <to>",
	Short: "Convert an amount between currencies",
	Args:  cobra.ExactArgs(3),
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("amount %q: %w", args[0], err)
		}
		from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])
		return orFailed("currency conversion", ctrl.ConvertCurrency(cmd.Context(), amount, from, to))
	}),
}

var trendsMonths int

var queryTrendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Monthly expense totals",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return orFailed("expense trends", ctrl.GetExpenseTrends(cmd.Context(), trendsMonths))
	}),
}

var alertsUnread bool

var queryAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List alerts",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return ctrl.GetAlerts(cmd.Context(), alertsUnread), nil
	}),
}

var searchLimit int

var querySearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search transactions by description or category",
	Args:  cobra.MinimumNArgs(1),
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return ctrl.SearchTransactions(cmd.Context(), strings.Join(args, " "), searchLimit), nil
	}),
}

var (
	statementFrom string
	statementTo   string
)

var queryStatementCmd = &cobra.Command{
	Use:   "statement [account-number]",
	Short: "Account statement for a period",
	Args:  cobra.MaximumNArgs(1),
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		q := finapi.StatementQuery{StartDate: statementFrom, EndDate: statementTo}
		if len(args) == 1 {
			q.AccountNumber = args[0]
		}
		return orFailed("account statement", ctrl.GetAccountStatement(cmd.Context(), q))
	}),
}

var (
	debtSpecs    []string
	debtPayment  float64
	debtStrategy string
)

var queryDebtCmd = &cobra.Command{
	Use:   "debt",
	Short: "Plan a debt payoff (snowball or avalanche)",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		debts := make([]finapi.Debt, 0, len(debtSpecs))
		for _, raw := range debtSpecs {
			d, err := parseDebt(raw)
			if err != nil {
				return nil, err
			}
			debts = append(debts, d)
		}
		return orFailed("debt payoff", ctrl.CalculateDebtPayoff(cmd.Context(), debts, debtPayment, debtStrategy))
	}),
}

// parseDebt reads "name:balance[:rate[:minimum]]".
func parseDebt(raw string) (finapi.Debt, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 4 || parts[0] == "" {
		return finapi.Debt{}, fmt.Errorf("debt %q: want name:balance[:rate[:minimum]]", raw)
	}
	nums := make([]float64, 3)
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return finapi.Debt{}, fmt.Errorf("debt %q: %w", raw, err)
		}
		nums[i] = v
	}
	return finapi.Debt{Name: parts[0], Balance: nums[0], InterestRate: nums[1], MinimumPayment: nums[2]}, nil
}

var calendarMonth string

var queryCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Bills, recurring transactions and goal dates for a month",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return orFailed("financial calendar", ctrl.GetFinancialCalendar(cmd.Context(), calendarMonth))
	}),
}

var queryRecurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "List recurring transactions",
	Args:  cobra.NoArgs,
	RunE: queryRun(func(cmd *cobra.Command, args []string, ctrl *assistant.Controller) (any, error) {
		return ctrl.GetRecurringTransactions(cmd.Context()), nil
	}),
}

func init() {
	queryLoanCmd.Flags().Float64Var(&loanPrincipal, "principal", 0, "loan amount")
	queryLoanCmd.Flags().Float64Var(&loanRate, "rate", 0, "annual interest rate in percent")
	queryLoanCmd.Flags().IntVar(&loanYears, "years", 0, "term in years")

	queryInterestCmd.Flags().Float64Var(&interestPrincipal, "principal", 0, "starting amount")
	queryInterestCmd.Flags().Float64Var(&interestRate, "rate", 0, "annual interest rate in percent")
	queryInterestCmd.Flags().IntVar(&interestYears, "years", 0, "number of years")
	queryInterestCmd.Flags().StringVar(&interestCompounding, "compounding", "monthly", "monthly, quarterly or annually")
	queryInterestCmd.Flags().Float64Var(&interestContribution, "contribution", 0, "monthly contribution")

	queryTrendsCmd.Flags().IntVar(&trendsMonths, "months", assistant.DefaultTrendMonths, "number of months")
	queryAlertsCmd.Flags().BoolVar(&alertsUnread, "unread", false, "only unread alerts")
	querySearchCmd.Flags().IntVar(&searchLimit, "limit", assistant.DefaultSearchLimit, "maximum number of results")

	queryStatementCmd.Flags().StringVar(&statementFrom, "from", "", "start date (YYYY-MM-DD)")
	queryStatementCmd.Flags().StringVar(&statementTo, "to", "", "end date (YYYY-MM-DD)")

	queryDebtCmd.Flags().StringArrayVar(&debtSpecs, "debt", nil, "debt as name:balance[:rate[:minimum]] (repeatable)")
	queryDebtCmd.Flags().Float64Var(&debtPayment, "payment", 0, "total monthly payment")
	queryDebtCmd.Flags().StringVar(&debtStrategy, "strategy", finapi.StrategySnowball, "snowball or avalanche")

	queryCalendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month as YYYY-MM (current month when empty)")

	queryCmd.AddCommand(
		queryLoanCmd,
		queryInterestCmd,
		queryConvertCmd,
		queryTrendsCmd,
		queryAlertsCmd,
		querySearchCmd,
		queryStatementCmd,
		queryDebtCmd,
		queryCalendarCmd,
		queryRecurringCmd,
	)
	rootCmd.AddCommand(queryCmd)
}
