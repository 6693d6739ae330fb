package finapi

// User is the profile echoed back by the upstream on login and account lookups.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// DisplayName returns the full name when present, otherwise the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Credentials is the body of POST /api/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the body of POST /api/register.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// AuthResult is the success-flagged envelope returned by login, register and logout.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// AccountInfo is the response of GET /api/account.
type AccountInfo struct {
	User     User      `json:"user"`
	Accounts []Account `json:"accounts,omitempty"`
}

type Account struct {
	ID            int64   `json:"id"`
	AccountNumber string  `json:"account_number"`
	AccountType   string  `json:"account_type"`
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

type Budget struct {
	ID           int64   `json:"id"`
	Category     string  `json:"category"`
	BudgetAmount float64 `json:"budget_amount"`
	Period       string  `json:"period"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
}

type Goal struct {
	ID            int64   `json:"id"`
	GoalName      string  `json:"goal_name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date,omitempty"`
}

type Investment struct {
	ID             int64   `json:"id"`
	InvestmentType string  `json:"investment_type"`
	Amount         float64 `json:"amount"`
	PurchaseDate   string  `json:"purchase_date,omitempty"`
	CurrentValue   float64 `json:"current_value"`
	Description    string  `json:"description,omitempty"`
}

// SpendingAnalysis is the response of GET /api/spending-analysis. Analysis maps
// category to amount spent within the period.
type SpendingAnalysis struct {
	Analysis   map[string]float64 `json:"analysis"`
	TotalSpent float64            `json:"total_spent"`
	Budgets    map[string]float64 `json:"budgets,omitempty"`
	PeriodDays int                `json:"period_days,omitempty"`
}

type LoanRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
}

type LoanResult struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	TermYears      int     `json:"term_years"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
	NumPayments    int     `json:"num_payments"`
}

// InterestRequest is the body of POST /api/interest-calculator. Compounding is
// one of daily, monthly, quarterly or annually.
type InterestRequest struct {
	Principal           float64 `json:"principal"`
	AnnualRate          float64 `json:"annual_rate"`
	Years               int     `json:"years"`
	Compounding         string  `json:"compounding"`
	MonthlyContribution float64 `json:"monthly_contribution"`
}

type InterestResult struct {
	Principal           float64 `json:"principal"`
	AnnualRate          float64 `json:"annual_rate"`
	Years               int     `json:"years"`
	Compounding         string  `json:"compounding"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	FutureValue         float64 `json:"future_value"`
	TotalInterest       float64 `json:"total_interest"`
	TotalContributed    float64 `json:"total_contributed"`
	Gain                float64 `json:"gain"`
}

type Conversion struct {
	Amount          float64 `json:"amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	ConvertedAmount float64 `json:"converted_amount"`
	Rate            float64 `json:"rate"`
}

type ExpenseTrend struct {
	Month     string  `json:"month"`
	MonthName string  `json:"month_name"`
	Total     float64 `json:"total"`
}

type ExpenseTrends struct {
	Trends         []ExpenseTrend `json:"trends"`
	MonthsAnalyzed int            `json:"months_analyzed"`
}

// Alert is a notification raised by the upstream. IsRead is stored as 0/1.
type Alert struct {
	ID        int64  `json:"id"`
	AlertType string `json:"alert_type"`
	Message   string `json:"message"`
	IsRead    int    `json:"is_read"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Read reports whether the alert has been acknowledged.
func (a Alert) Read() bool { return a.IsRead != 0 }

type Transaction struct {
	ID              int64   `json:"id"`
	AccountID       int64   `json:"account_id"`
	AccountNumber   string  `json:"account_number,omitempty"`
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	BalanceAfter    float64 `json:"balance_after"`
	CreatedAt       string  `json:"created_at"`
}

// StatementQuery narrows GET /api/account-statement. Empty fields are omitted
// and the upstream falls back to the first account and the last 30 days.
type StatementQuery struct {
	AccountNumber string
	StartDate     string
	EndDate       string
}

type StatementPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Statement struct {
	Account          Account         `json:"account"`
	Period           StatementPeriod `json:"statement_period"`
	OpeningBalance   float64         `json:"opening_balance"`
	ClosingBalance   float64         `json:"closing_balance"`
	TotalDeposits    float64         `json:"total_deposits"`
	TotalWithdrawals float64         `json:"total_withdrawals"`
	Transactions     []Transaction   `json:"transactions"`
	TransactionCount int             `json:"transaction_count"`
}

type Debt struct {
	Name           string  `json:"name"`
	Balance        float64 `json:"balance"`
	InterestRate   float64 `json:"interest_rate,omitempty"`
	MinimumPayment float64 `json:"minimum_payment,omitempty"`
}

// Payoff strategies understood by the upstream.
const (
	StrategySnowball  = "snowball"
	StrategyAvalanche = "avalanche"
)

type DebtPayoffRequest struct {
	Debts          []Debt  `json:"debts"`
	MonthlyPayment float64 `json:"monthly_payment"`
	Strategy       string  `json:"strategy"`
}

type PayoffStep struct {
	DebtName     string  `json:"debt_name"`
	Months       int     `json:"months"`
	TotalPaid    float64 `json:"total_paid"`
	InterestPaid float64 `json:"interest_paid"`
}

type DebtPayoffResult struct {
	Strategy       string       `json:"strategy"`
	MonthlyPayment float64      `json:"monthly_payment"`
	TotalMonths    int          `json:"total_months"`
	TotalYears     float64      `json:"total_years"`
	TotalInterest  float64      `json:"total_interest"`
	PayoffPlan     []PayoffStep `json:"payoff_plan"`
}

type CalendarEntry struct {
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
	Status string  `json:"status,omitempty"`
}

type FinancialCalendar struct {
	Month          string          `json:"month"`
	Calendar       []CalendarEntry `json:"calendar"`
	BillsCount     int             `json:"bills_count"`
	RecurringCount int             `json:"recurring_count"`
	GoalsCount     int             `json:"goals_count"`
}

type RecurringTransaction struct {
	ID              int64   `json:"id"`
	AccountID       int64   `json:"account_id"`
	AccountNumber   string  `json:"account_number,omitempty"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type"`
	Category        string  `json:"category"`
	Frequency       string  `json:"frequency"`
	NextDate        string  `json:"next_date"`
}
