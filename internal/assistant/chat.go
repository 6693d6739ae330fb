package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/nfrund/finassist/internal/finapi"
)

// keywordActions maps reply keywords to the button row they attach. Matching
// is a plain substring test and the rules are applied in order; several rows
// may attach to one reply.
var keywordActions = []struct {
	keywords []string
	buttons  []string
}{
	{[]string{"accounts", "balance"}, []string{"View All Accounts", "Financial Report"}},
	{[]string{"budget", "Budget"}, []string{"View Budgets", "Spending Analysis"}},
	{[]string{"goal", "Goal"}, []string{"View Goals", "Financial Report"}},
	{[]string{"investment", "Investment"}, []string{"View Portfolio", "Financial Report"}},
}

// SendMessage sends text as if it had been typed into the input and posted.
// Whitespace-only input is ignored. The user's line is echoed before the
// request goes out.
func (c *Controller) SendMessage(ctx context.Context, text string) {
	c.mu.Lock()
	c.page.Input = text
	c.sendLocked(ctx)
}

// SendQuickMessage sends one of the canned prompts offered on the welcome screen.
func (c *Controller) SendQuickMessage(ctx context.Context, text string) {
	c.SendMessage(ctx, text)
}

// sendLocked is entered with the lock held and releases it before the
// request goes out.
func (c *Controller) sendLocked(ctx context.Context) {
	msg := strings.TrimSpace(c.page.Input)
	if msg == "" {
		c.mu.Unlock()
		return
	}
	c.appendLocked(SenderUser, msg)
	c.page.Input = ""
	c.mu.Unlock()

	reply, err := c.api.Chat(ctx, msg)
	switch {
	case err == nil:
		c.pause(ctx, c.replyDelay)
		c.AddBotMessage(reply)
	case finapi.IsUnauthorized(err):
		c.mu.Lock()
		c.showWelcomeLocked()
		c.addBotMessageLocked(LoginPromptText)
		c.mu.Unlock()
	default:
		c.logger.Error("Chat error", "error", err)
		c.AddBotMessage(ChatErrorText)
	}
}

// AddBotMessage appends a bot reply and attaches any keyword-derived buttons.
func (c *Controller) AddBotMessage(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addBotMessageLocked(text)
}

func (c *Controller) addBotMessageLocked(text string) {
	c.appendLocked(SenderBot, text)
	for _, rule := range keywordActions {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				c.addActionButtonsLocked(rule.buttons)
				break
			}
		}
	}
}

// addActionButtonsLocked attaches a row to the newest entry, provided it is
// bot-authored.
func (c *Controller) addActionButtonsLocked(buttons []string) {
	n := len(c.page.Messages)
	if n == 0 || c.page.Messages[n-1].Sender != SenderBot {
		return
	}
	last := &c.page.Messages[n-1]
	last.Actions = append(last.Actions, append([]string(nil), buttons...))
}

func (c *Controller) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
