package assistant

import "context"

var buttonCommands = map[string]string{
	"View All Accounts":   "Show all accounts",
	"Financial Report":    "Financial report",
	"View Budgets":        "Budget status",
	"Spending Analysis":   "Spending analysis",
	"View Goals":          "My goals",
	"View Portfolio":      "My investments",
	"Account Statement":   "Account statement",
	"Expense Trends":      "Expense trends",
	"Loan Calculator":     "Loan calculator",
	"Financial Calendar":  "Financial calendar",
	"Transaction History": "Transaction history",
	"Show Bills":          "Show my bills",
}

// CommandForButton returns the chat command behind a quick-action label, or
// "" when the label is unknown.
func CommandForButton(label string) string {
	return buttonCommands[label]
}

// PressActionButton sends the command behind label. Unknown labels do nothing.
func (c *Controller) PressActionButton(ctx context.Context, label string) {
	cmd := CommandForButton(label)
	if cmd == "" {
		return
	}
	c.SendMessage(ctx, cmd)
}
