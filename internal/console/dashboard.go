package console

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/nfrund/finassist/internal/assistant"
)

// Money formats an amount with en-US digit grouping and two decimals.
func (c *Console) Money(v float64) string {
	return c.printer.Sprintf("%.2f", v)
}

// WriteDashboard prints each dashboard part, or why it is missing.
func (c *Console) WriteDashboard(w io.Writer, snap assistant.DashboardSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ACCOUNTS")
	if snap.AccountsErr != nil {
		fmt.Fprintf(tw, "  unavailable: %v\n", snap.AccountsErr)
	}
	for _, a := range snap.Accounts {
		fmt.Fprintf(tw, "  %s\t%s\t%s %s\n", a.AccountNumber, a.AccountType, c.Money(a.Balance), a.Currency)
	}

	fmt.Fprintln(tw, "\nBUDGETS")
	if snap.BudgetsErr != nil {
		fmt.Fprintf(tw, "  unavailable: %v\n", snap.BudgetsErr)
	}
	for _, b := range snap.Budgets {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Category, b.Period, c.Money(b.BudgetAmount))
	}

	fmt.Fprintln(tw, "\nGOALS")
	if snap.GoalsErr != nil {
		fmt.Fprintf(tw, "  unavailable: %v\n", snap.GoalsErr)
	}
	for _, g := range snap.Goals {
		fmt.Fprintf(tw, "  %s\t%s / %s\t%s\n", g.GoalName, c.Money(g.CurrentAmount), c.Money(g.TargetAmount), g.TargetDate)
	}

	fmt.Fprintln(tw, "\nINVESTMENTS")
	if snap.InvestmentsErr != nil {
		fmt.Fprintf(tw, "  unavailable: %v\n", snap.InvestmentsErr)
	}
	for _, i := range snap.Investments {
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", i.InvestmentType, c.Money(i.Amount), c.Money(i.CurrentValue))
	}

	fmt.Fprintf(tw, "\nSPENDING (last %d days)\n", assistant.SpendingWindowDays)
	switch {
	case snap.AnalysisErr != nil:
		fmt.Fprintf(tw, "  unavailable: %v\n", snap.AnalysisErr)
	case snap.Analysis != nil:
		cats := make([]string, 0, len(snap.Analysis.Analysis))
		for cat := range snap.Analysis.Analysis {
			cats = append(cats, cat)
		}
		sort.Strings(cats)
		for _, cat := range cats {
			fmt.Fprintf(tw, "  %s\t%s\n", cat, c.Money(snap.Analysis.Analysis[cat]))
		}
		fmt.Fprintf(tw, "  Total\t%s\n", c.Money(snap.Analysis.TotalSpent))
	}

	return tw.Flush()
}
