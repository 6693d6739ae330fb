package pubsub

import (
	"context"
	"log/slog"

	"github.com/nfrund/finassist/internal/finapi"
)

// Dashboard topics, one per part.
var (
	DashboardAccounts    = NewEvent[[]finapi.Account]("dashboard.accounts")
	DashboardBudgets     = NewEvent[[]finapi.Budget]("dashboard.budgets")
	DashboardGoals       = NewEvent[[]finapi.Goal]("dashboard.goals")
	DashboardInvestments = NewEvent[[]finapi.Investment]("dashboard.investments")
	DashboardSpending    = NewEvent[*finapi.SpendingAnalysis]("dashboard.spending")
)

// DashboardTopics lists every dashboard topic name.
var DashboardTopics = []string{
	DashboardAccounts.Name(),
	DashboardBudgets.Name(),
	DashboardGoals.Name(),
	DashboardInvestments.Name(),
	DashboardSpending.Name(),
}

// DashboardSink publishes each loaded dashboard part for one browser.
type DashboardSink struct {
	Publisher Publisher
	BrowserID string
	Logger    *slog.Logger
}

func (s DashboardSink) UpdateAccounts(a []finapi.Account) {
	s.check(DashboardAccounts.Name(), Publish(context.Background(), s.Publisher, DashboardAccounts, s.BrowserID, a))
}

func (s DashboardSink) UpdateBudgets(b []finapi.Budget) {
	s.check(DashboardBudgets.Name(), Publish(context.Background(), s.Publisher, DashboardBudgets, s.BrowserID, b))
}

func (s DashboardSink) UpdateGoals(g []finapi.Goal) {
	s.check(DashboardGoals.Name(), Publish(context.Background(), s.Publisher, DashboardGoals, s.BrowserID, g))
}

func (s DashboardSink) UpdateInvestments(i []finapi.Investment) {
	s.check(DashboardInvestments.Name(), Publish(context.Background(), s.Publisher, DashboardInvestments, s.BrowserID, i))
}

func (s DashboardSink) UpdateSpending(a *finapi.SpendingAnalysis) {
	s.check(DashboardSpending.Name(), Publish(context.Background(), s.Publisher, DashboardSpending, s.BrowserID, a))
}

func (s DashboardSink) check(topic string, err error) {
	if err != nil && s.Logger != nil {
		s.Logger.Warn("Dashboard event not published", "topic", topic, "error", err)
	}
}
