package assistant

import (
	"context"
	"fmt"
)

// AlertSummaryText is the bot line announcing n unread alerts.
func AlertSummaryText(n int) string {
	return fmt.Sprintf("You have %d new alert(s). Type \"Show alerts\" to view them.", n)
}

// CheckAlerts fetches unread alerts once and, if any are still unread,
// announces their count in the transcript.
func (c *Controller) CheckAlerts(ctx context.Context) {
	unread := 0
	for _, a := range c.GetAlerts(ctx, true) {
		if !a.Read() {
			unread++
		}
	}
	if unread > 0 {
		c.AddBotMessage(AlertSummaryText(unread))
	}
}
