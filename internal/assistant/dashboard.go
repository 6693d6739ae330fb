package assistant

import (
	"context"
	"log/slog"

	"github.com/nfrund/finassist/internal/finapi"
	"golang.org/x/sync/errgroup"
)

// SpendingWindowDays is the analysis window requested with the dashboard.
const SpendingWindowDays = 30

// DashboardSnapshot carries the five dashboard results. Each part has its own
// error and a failed part never affects the others.
type DashboardSnapshot struct {
	Accounts    []finapi.Account
	Budgets     []finapi.Budget
	Goals       []finapi.Goal
	Investments []finapi.Investment
	Analysis    *finapi.SpendingAnalysis

	AccountsErr    error
	BudgetsErr     error
	GoalsErr       error
	InvestmentsErr error
	AnalysisErr    error
}

// DashboardSink receives each dashboard part that loaded successfully.
type DashboardSink interface {
	UpdateAccounts([]finapi.Account)
	UpdateBudgets([]finapi.Budget)
	UpdateGoals([]finapi.Goal)
	UpdateInvestments([]finapi.Investment)
	UpdateSpending(*finapi.SpendingAnalysis)
}

// LogSink only logs what it receives.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) UpdateAccounts(a []finapi.Account) {
	s.Logger.Info("Accounts loaded", "count", len(a))
}

func (s LogSink) UpdateBudgets(b []finapi.Budget) {
	s.Logger.Info("Budgets loaded", "count", len(b))
}

func (s LogSink) UpdateGoals(g []finapi.Goal) {
	s.Logger.Info("Goals loaded", "count", len(g))
}

func (s LogSink) UpdateInvestments(i []finapi.Investment) {
	s.Logger.Info("Investments loaded", "count", len(i))
}

func (s LogSink) UpdateSpending(a *finapi.SpendingAnalysis) {
	s.Logger.Info("Spending analysis loaded", "total_spent", a.TotalSpent, "categories", len(a.Analysis))
}

// LoadDashboardData fetches accounts, budgets, goals, investments and the
// 30-day spending analysis concurrently, waits for all five, then hands each
// successful part to the sink.
func (c *Controller) LoadDashboardData(ctx context.Context) DashboardSnapshot {
	var (
		snap DashboardSnapshot
		g    errgroup.Group
	)
	g.Go(func() error {
		snap.Accounts, snap.AccountsErr = c.api.Accounts(ctx)
		return nil
	})
	g.Go(func() error {
		snap.Budgets, snap.BudgetsErr = c.api.Budgets(ctx)
		return nil
	})
	g.Go(func() error {
		snap.Goals, snap.GoalsErr = c.api.Goals(ctx)
		return nil
	})
	g.Go(func() error {
		snap.Investments, snap.InvestmentsErr = c.api.Investments(ctx)
		return nil
	})
	g.Go(func() error {
		snap.Analysis, snap.AnalysisErr = c.api.SpendingAnalysis(ctx, SpendingWindowDays)
		return nil
	})
	_ = g.Wait()

	if snap.AccountsErr == nil {
		c.sink.UpdateAccounts(snap.Accounts)
	} else {
		c.logger.Warn("Accounts unavailable", "error", snap.AccountsErr)
	}
	if snap.BudgetsErr == nil {
		c.sink.UpdateBudgets(snap.Budgets)
	} else {
		c.logger.Warn("Budgets unavailable", "error", snap.BudgetsErr)
	}
	if snap.GoalsErr == nil {
		c.sink.UpdateGoals(snap.Goals)
	} else {
		c.logger.Warn("Goals unavailable", "error", snap.GoalsErr)
	}
	if snap.InvestmentsErr == nil {
		c.sink.UpdateInvestments(snap.Investments)
	} else {
		c.logger.Warn("Investments unavailable", "error", snap.InvestmentsErr)
	}
	if snap.AnalysisErr == nil {
		c.sink.UpdateSpending(snap.Analysis)
	} else {
		c.logger.Warn("Spending analysis unavailable", "error", snap.AnalysisErr)
	}
	return snap
}
