package testutils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/finassist/internal/finapi"
)

const (
	fakeSessionName   = "fake-api"
	fakeSessionSecret = "fake-upstream-session-secret-key"
)

type fakeUser struct {
	finapi.User
	password string
}

// FakeAPI is an in-process stand-in for the financial assistant backend. It
// keeps a cookie session like the real service and serves canned data.
type FakeAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	users      map[string]fakeUser
	generation int
	failures   map[string]int
	drops      map[string]bool
	hits       map[string]int
	chatReply  func(string) string
	alerts     []finapi.Alert
}

// NewFakeAPI starts the fake backend and stops it when the test ends. A user
// "alice"/"secret" (full name "Alice Doe") exists from the start.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		users:    make(map[string]fakeUser),
		failures: make(map[string]int),
		drops:    make(map[string]bool),
		hits:     make(map[string]int),
		chatReply: func(msg string) string {
			return "You said: " + msg
		},
	}
	f.AddUser("alice", "secret", "Alice Doe")

	e := echo.New()
	e.HideBanner = true
	store := sessions.NewCookieStore([]byte(fakeSessionSecret))
	store.Options = &sessions.Options{Path: "/", HttpOnly: true}
	e.Use(session.Middleware(store))
	e.Use(f.faults)

	e.POST("/api/login", f.login)
	e.POST("/api/register", f.register)
	e.POST("/api/logout", f.logout)
	e.GET("/api/currency-convert", f.currencyConvert)

	api := e.Group("/api", f.requireLogin)
	api.GET("/account", f.account)
	api.POST("/chat", f.chat)
	api.GET("/accounts", f.accounts)
	api.GET("/budgets", f.budgets)
	api.GET("/goals", f.goals)
	api.GET("/investments", f.investments)
	api.GET("/spending-analysis", f.spendingAnalysis)
	api.POST("/loan-calculator", f.loanCalculator)
	api.POST("/interest-calculator", f.interestCalculator)
	api.GET("/expense-trends", f.expenseTrends)
	api.GET("/alerts", f.listAlerts)
	api.GET("/search-transactions", f.searchTransactions)
	api.GET("/account-statement", f.accountStatement)
	api.POST("/debt-payoff", f.debtPayoff)
	api.GET("/financial-calendar", f.financialCalendar)
	api.GET("/recurring-transactions", f.recurringTransactions)

	f.Server = httptest.NewServer(e)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL of the fake backend.
func (f *FakeAPI) URL() string { return f.Server.URL }

// AddUser registers a user that can log in.
func (f *FakeAPI) AddUser(username, password, fullName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = fakeUser{
		User: finapi.User{
			ID:       int64(len(f.users) + 1),
			Username: username,
			FullName: fullName,
			Email:    username + "@example.com",
		},
		password: password,
	}
}

// FailWith makes every request to path answer with status.
func (f *FakeAPI) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// Drop makes every request to path lose its connection before a response.
func (f *FakeAPI) Drop(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drops[path] = true
}

// ExpireSessions invalidates every session issued so far.
func (f *FakeAPI) ExpireSessions() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
}

// SetChatReply overrides the chat responder.
func (f *FakeAPI) SetChatReply(fn func(string) string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatReply = fn
}

// SetAlerts replaces the alerts served by /api/alerts.
func (f *FakeAPI) SetAlerts(alerts []finapi.Alert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = alerts
}

// Hits returns how many requests reached path.
func (f *FakeAPI) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *FakeAPI) faults(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		f.mu.Lock()
		f.hits[path]++
		status, fail := f.failures[path]
		drop := f.drops[path]
		f.mu.Unlock()

		if drop {
			if hj, ok := c.Response().Writer.(http.Hijacker); ok {
				conn, _, err := hj.Hijack()
				if err == nil {
					conn.Close()
					return nil
				}
			}
			return c.NoContent(http.StatusServiceUnavailable)
		}
		if fail {
			return c.JSON(status, map[string]string{"error": http.StatusText(status)})
		}
		return next(c)
	}
}

func (f *FakeAPI) requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := f.currentUser(c); !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
		}
		return next(c)
	}
}

func (f *FakeAPI) currentUser(c echo.Context) (fakeUser, bool) {
	sess, err := session.Get(fakeSessionName, c)
	if err != nil {
		return fakeUser{}, false
	}
	name, _ := sess.Values["username"].(string)
	gen, _ := sess.Values["generation"].(int)

	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[name]
	if !ok || gen != f.generation {
		return fakeUser{}, false
	}
	return u, true
}

func (f *FakeAPI) login(c echo.Context) error {
	var creds finapi.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid request"})
	}

	f.mu.Lock()
	u, ok := f.users[creds.Username]
	gen := f.generation
	f.mu.Unlock()
	if !ok || u.password != creds.Password {
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid credentials"})
	}

	sess, _ := session.Get(fakeSessionName, c)
	sess.Values["username"] = u.Username
	sess.Values["generation"] = gen
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"user":    map[string]any{"id": u.ID, "username": u.Username, "full_name": u.FullName},
	})
}

func (f *FakeAPI) register(c echo.Context) error {
	var reg finapi.Registration
	if err := c.Bind(&reg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Invalid request"})
	}
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Missing required fields"})
	}

	f.mu.Lock()
	_, exists := f.users[reg.Username]
	f.mu.Unlock()
	if exists {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "Username or email already exists"})
	}
	f.AddUser(reg.Username, reg.Password, reg.FullName)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Registration successful"})
}

func (f *FakeAPI) logout(c echo.Context) error {
	sess, _ := session.Get(fakeSessionName, c)
	sess.Options = &sessions.Options{Path: "/", MaxAge: -1}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Logged out successfully"})
}

func (f *FakeAPI) account(c echo.Context) error {
	u, _ := f.currentUser(c)
	return c.JSON(http.StatusOK, map[string]any{
		"user":     u.User,
		"accounts": fakeAccounts,
	})
}

func (f *FakeAPI) chat(c echo.Context) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	f.mu.Lock()
	reply := f.chatReply
	f.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"response": reply(body.Message)})
}

var fakeAccounts = []finapi.Account{
	{ID: 1, AccountNumber: "ACC001", AccountType: "Savings", Balance: 12500.50, Currency: "USD"},
	{ID: 2, AccountNumber: "ACC002", AccountType: "Checking", Balance: 3200.75, Currency: "USD"},
}

func (f *FakeAPI) accounts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"accounts": fakeAccounts})
}

func (f *FakeAPI) budgets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"budgets": []finapi.Budget{
		{ID: 1, Category: "Food", BudgetAmount: 500, Period: "monthly"},
		{ID: 2, Category: "Transport", BudgetAmount: 200, Period: "monthly"},
	}})
}

func (f *FakeAPI) goals(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"goals": []finapi.Goal{
		{ID: 1, GoalName: "Emergency Fund", TargetAmount: 10000, CurrentAmount: 4500, TargetDate: "2026-12-31"},
	}})
}

func (f *FakeAPI) investments(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"investments": []finapi.Investment{
		{ID: 1, InvestmentType: "Stocks", Amount: 5000, CurrentValue: 5600, PurchaseDate: "2025-01-15"},
	}})
}

func (f *FakeAPI) spendingAnalysis(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	return c.JSON(http.StatusOK, finapi.SpendingAnalysis{
		Analysis:   map[string]float64{"Food": 320.40, "Transport": 80},
		TotalSpent: 400.40,
		Budgets:    map[string]float64{"Food": 500, "Transport": 200},
		PeriodDays: days,
	})
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (f *FakeAPI) loanCalculator(c echo.Context) error {
	var req finapi.LoanRequest
	if err := c.Bind(&req); err != nil || req.Principal <= 0 || req.AnnualRate < 0 || req.TermYears <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid parameters"})
	}
	r := req.AnnualRate / 100 / 12
	n := req.TermYears * 12
	var monthly float64
	if r == 0 {
		monthly = req.Principal / float64(n)
	} else {
		p := math.Pow(1+r, float64(n))
		monthly = req.Principal * r * p / (p - 1)
	}
	total := monthly * float64(n)
	return c.JSON(http.StatusOK, finapi.LoanResult{
		Principal:      req.Principal,
		AnnualRate:     req.AnnualRate,
		TermYears:      req.TermYears,
		MonthlyPayment: round2(monthly),
		TotalPayment:   round2(total),
		TotalInterest:  round2(total - req.Principal),
		NumPayments:    n,
	})
}

func (f *FakeAPI) interestCalculator(c echo.Context) error {
	var req finapi.InterestRequest
	if err := c.Bind(&req); err != nil || req.Principal <= 0 || req.Years <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid parameters"})
	}
	fv := req.Principal * math.Pow(1+req.AnnualRate/100/12, float64(req.Years*12))
	return c.JSON(http.StatusOK, finapi.InterestResult{
		Principal:        req.Principal,
		AnnualRate:       req.AnnualRate,
		Years:            req.Years,
		Compounding:      req.Compounding,
		FutureValue:      round2(fv),
		TotalInterest:    round2(fv - req.Principal),
		TotalContributed: req.Principal,
		Gain:             round2(fv - req.Principal),
	})
}

var fakeRates = map[string]float64{"USD": 1.0, "EUR": 0.92, "GBP": 0.79, "JPY": 149.0, "INR": 83.0}

func (f *FakeAPI) currencyConvert(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil {
		amount = 1
	}
	from := strings.ToUpper(c.QueryParam("from"))
	to := strings.ToUpper(c.QueryParam("to"))
	fr, okFrom := fakeRates[from]
	tr, okTo := fakeRates[to]
	if !okFrom || !okTo {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Currency not supported"})
	}
	return c.JSON(http.StatusOK, finapi.Conversion{
		Amount:          amount,
		FromCurrency:    from,
		ToCurrency:      to,
		ConvertedAmount: round2(amount * tr / fr),
		Rate:            math.Round(tr/fr*10000) / 10000,
	})
}

func (f *FakeAPI) expenseTrends(c echo.Context) error {
	months, _ := strconv.Atoi(c.QueryParam("months"))
	return c.JSON(http.StatusOK, finapi.ExpenseTrends{
		Trends: []finapi.ExpenseTrend{
			{Month: "2026-09", MonthName: "September 2026", Total: 1200},
			{Month: "2026-10", MonthName: "October 2026", Total: 950},
		},
		MonthsAnalyzed: months,
	})
}

func (f *FakeAPI) listAlerts(c echo.Context) error {
	unreadOnly := c.QueryParam("unread_only") == "true"
	f.mu.Lock()
	out := make([]finapi.Alert, 0, len(f.alerts))
	for _, a := range f.alerts {
		if unreadOnly && a.Read() {
			continue
		}
		out = append(out, a)
	}
	f.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]any{"alerts": out})
}

var fakeTransactions = []finapi.Transaction{
	{ID: 1, AccountID: 1, AccountNumber: "ACC001", TransactionType: "payment", Amount: 45.20, Description: "Grocery Store", Category: "Food", BalanceAfter: 12455.30, CreatedAt: "2026-10-01 10:00:00"},
	{ID: 2, AccountID: 1, AccountNumber: "ACC001", TransactionType: "deposit", Amount: 2500, Description: "Salary", Category: "Income", BalanceAfter: 14955.30, CreatedAt: "2026-10-05 09:00:00"},
	{ID: 3, AccountID: 2, AccountNumber: "ACC002", TransactionType: "payment", Amount: 60, Description: "Electric Bill", Category: "Utilities", BalanceAfter: 3140.75, CreatedAt: "2026-10-07 12:30:00"},
}

func (f *FakeAPI) searchTransactions(c echo.Context) error {
	q := strings.ToLower(c.QueryParam("q"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	out := []finapi.Transaction{}
	for _, t := range fakeTransactions {
		if strings.Contains(strings.ToLower(t.Description), q) && len(out) < limit {
			out = append(out, t)
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": out})
}

func (f *FakeAPI) accountStatement(c echo.Context) error {
	number := c.QueryParam("account")
	acct := fakeAccounts[0]
	if number != "" {
		found := false
		for _, a := range fakeAccounts {
			if a.AccountNumber == number {
				acct, found = a, true
			}
		}
		if !found {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Account not found"})
		}
	}
	start := c.QueryParam("start_date")
	if start == "" {
		start = "2026-09-16"
	}
	end := c.QueryParam("end_date")
	if end == "" {
		end = "2026-10-16"
	}
	var txs []finapi.Transaction
	for _, t := range fakeTransactions {
		if t.AccountID == acct.ID {
			txs = append(txs, t)
		}
	}
	return c.JSON(http.StatusOK, finapi.Statement{
		Account:          acct,
		Period:           finapi.StatementPeriod{StartDate: start, EndDate: end},
		OpeningBalance:   10000,
		ClosingBalance:   acct.Balance,
		TotalDeposits:    2500,
		TotalWithdrawals: 45.20,
		Transactions:     txs,
		TransactionCount: len(txs),
	})
}

func (f *FakeAPI) debtPayoff(c echo.Context) error {
	var req finapi.DebtPayoffRequest
	if err := c.Bind(&req); err != nil || len(req.Debts) == 0 || req.MonthlyPayment <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid parameters"})
	}
	plan := make([]finapi.PayoffStep, 0, len(req.Debts))
	total := 0
	for _, d := range req.Debts {
		months := int(math.Ceil(d.Balance / req.MonthlyPayment))
		total += months
		plan = append(plan, finapi.PayoffStep{DebtName: d.Name, Months: months, TotalPaid: d.Balance})
	}
	return c.JSON(http.StatusOK, finapi.DebtPayoffResult{
		Strategy:       req.Strategy,
		MonthlyPayment: req.MonthlyPayment,
		TotalMonths:    total,
		TotalYears:     math.Round(float64(total)/12*10) / 10,
		PayoffPlan:     plan,
	})
}

func (f *FakeAPI) financialCalendar(c echo.Context) error {
	month := c.QueryParam("month")
	return c.JSON(http.StatusOK, finapi.FinancialCalendar{
		Month: month,
		Calendar: []finapi.CalendarEntry{
			{Date: month + "-05", Type: "bill", Title: "Electricity Bill", Amount: 60, Status: "pending"},
			{Date: month + "-15", Type: "recurring", Title: "Gym Membership", Amount: 40},
		},
		BillsCount:     1,
		RecurringCount: 1,
	})
}

func (f *FakeAPI) recurringTransactions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"recurring_transactions": []finapi.RecurringTransaction{
		{ID: 1, AccountID: 2, AccountNumber: "ACC002", Description: "Gym Membership", Amount: 40, TransactionType: "payment", Category: "Health", Frequency: "monthly", NextDate: "2026-10-15"},
	}})
}
