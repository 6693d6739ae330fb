package assistant

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/finassist/internal/finapi"
)

// User-facing texts.
const (
	GreetingText      = "Hello! I'm your Finance Assistant. How can I help you today?"
	LoginPromptText   = "Please login to use the chat feature."
	ChatErrorText     = "Sorry, I encountered an error. Please try again."
	FarewellText      = "You have been logged out. Thank you for using Finance Assistant Bot!"
	RegisteredText    = "Registration successful! Please login."
	MissingFieldsText = "Please fill in all required fields."
)

const (
	// DefaultReplyDelay is the pause before a bot reply is shown.
	DefaultReplyDelay = 500 * time.Millisecond
	// DefaultAlertDelay is how long after the chat appears alerts are checked.
	DefaultAlertDelay = 1500 * time.Millisecond
)

// API is the subset of the financial API the controller drives.
type API interface {
	Login(ctx context.Context, creds finapi.Credentials) (*finapi.AuthResult, error)
	Register(ctx context.Context, reg finapi.Registration) (*finapi.AuthResult, error)
	Logout(ctx context.Context) (*finapi.AuthResult, error)
	Account(ctx context.Context) (*finapi.AccountInfo, error)
	Chat(ctx context.Context, message string) (string, error)

	Accounts(ctx context.Context) ([]finapi.Account, error)
	Budgets(ctx context.Context) ([]finapi.Budget, error)
	Goals(ctx context.Context) ([]finapi.Goal, error)
	Investments(ctx context.Context) ([]finapi.Investment, error)
	SpendingAnalysis(ctx context.Context, days int) (*finapi.SpendingAnalysis, error)

	LoanCalculator(ctx context.Context, req finapi.LoanRequest) (*finapi.LoanResult, error)
	InterestCalculator(ctx context.Context, req finapi.InterestRequest) (*finapi.InterestResult, error)
	ConvertCurrency(ctx context.Context, amount float64, from, to string) (*finapi.Conversion, error)
	ExpenseTrends(ctx context.Context, months int) (*finapi.ExpenseTrends, error)
	Alerts(ctx context.Context, unreadOnly bool) ([]finapi.Alert, error)
	SearchTransactions(ctx context.Context, query string, limit int) ([]finapi.Transaction, error)
	AccountStatement(ctx context.Context, q finapi.StatementQuery) (*finapi.Statement, error)
	DebtPayoff(ctx context.Context, req finapi.DebtPayoffRequest) (*finapi.DebtPayoffResult, error)
	FinancialCalendar(ctx context.Context, month string) (*finapi.FinancialCalendar, error)
	RecurringTransactions(ctx context.Context) ([]finapi.RecurringTransaction, error)
}

// Controller is the chat and dashboard controller for a single visitor. It
// owns the visitor's Page and translates UI events into API calls.
//
// The page lock is never held across a network call, so concurrent sends
// interleave their transcript entries in arrival order.
type Controller struct {
	api        API
	logger     *slog.Logger
	validate   *validator.Validate
	sink       DashboardSink
	now        func() time.Time
	replyDelay time.Duration
	alertDelay time.Duration

	mu     sync.Mutex
	page   Page
	nextID int
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithReplyDelay sets the pause before bot replies; zero disables it.
func WithReplyDelay(d time.Duration) Option {
	return func(c *Controller) { c.replyDelay = d }
}

func WithAlertDelay(d time.Duration) Option {
	return func(c *Controller) { c.alertDelay = d }
}

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithDashboardSink replaces the receiver of dashboard data.
func WithDashboardSink(s DashboardSink) Option {
	return func(c *Controller) { c.sink = s }
}

// New creates a Controller showing the anonymous welcome screen.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:        api,
		logger:     slog.Default(),
		validate:   validator.New(),
		now:        time.Now,
		replyDelay: DefaultReplyDelay,
		alertDelay: DefaultAlertDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "assistant")
	if c.sink == nil {
		c.sink = LogSink{Logger: c.logger}
	}
	c.Reset()
	return c
}

// AlertDelay is the configured delay between showing the chat and checking alerts.
func (c *Controller) AlertDelay() time.Duration {
	return c.alertDelay
}

// Reset discards the whole page, as a browser reload would.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = Page{}
	c.showWelcomeLocked()
}

// Page returns a copy of the current view state.
func (c *Controller) Page() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page.clone()
}

// Take returns a copy of the view state for rendering and clears the one-shot
// parts: pending alerts and the dashboard and alert-check triggers.
func (c *Controller) Take() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.page.clone()
	c.page.Alerts = nil
	c.page.PendingDashboard = false
	c.page.PendingAlertCheck = false
	return p
}

// ShowModal opens one of the two overlays. Unknown IDs are ignored.
func (c *Controller) ShowModal(id ModalID) {
	if id != LoginModal && id != RegisterModal {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page.Modal = id
}

// CloseModal hides the overlay id if it is the one open.
func (c *Controller) CloseModal(id ModalID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeModalLocked(id)
}

// DismissOutside handles a click whose target element ID is target. The open
// overlay closes only when the click landed on its backdrop itself.
func (c *Controller) DismissOutside(target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page.Modal != ModalNone && target == string(c.page.Modal) {
		c.page.Modal = ModalNone
	}
}

func (c *Controller) closeModalLocked(id ModalID) {
	if c.page.Modal == id {
		c.page.Modal = ModalNone
	}
}

func (c *Controller) showWelcomeLocked() {
	c.page.Screen = ScreenWelcome
	c.page.User = nil
	c.page.Messages = nil
	c.appendLocked(SenderBot, GreetingText)
}

func (c *Controller) showChatLocked() {
	c.page.Screen = ScreenChat
	c.page.PendingDashboard = true
	c.page.PendingAlertCheck = true
}

func (c *Controller) updateUserInfoLocked(u finapi.User) {
	c.page.User = &u
}

func (c *Controller) alertLocked(msg string) {
	c.page.Alerts = append(c.page.Alerts, msg)
}

func (c *Controller) appendLocked(sender Sender, text string) {
	c.nextID++
	c.page.Messages = append(c.page.Messages, Message{
		ID:     c.nextID,
		Sender: sender,
		Text:   text,
		Time:   c.now(),
	})
}
