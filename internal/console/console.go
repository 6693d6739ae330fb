package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/nfrund/finassist/internal/assistant"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Console prints a controller's view state to a terminal. Each Flush writes
// the transcript entries and alerts that appeared since the previous one and
// starts any dashboard load or alert check the page asked for.
type Console struct {
	ctrl    *assistant.Controller
	out     io.Writer
	printer *message.Printer

	mu      sync.Mutex
	lastID  int
	wg      sync.WaitGroup
	timers  []*time.Timer
	closing bool
}

// New creates a Console writing to out.
func New(ctrl *assistant.Controller, out io.Writer) *Console {
	return &Console{
		ctrl:    ctrl,
		out:     out,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// Flush renders what changed since the last call.
func (c *Console) Flush(ctx context.Context) {
	p := c.ctrl.Take()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range p.Messages {
		if m.ID <= c.lastID {
			continue
		}
		c.lastID = m.ID
		fmt.Fprint(c.out, FormatMessage(m))
	}
	for _, a := range p.Alerts {
		fmt.Fprintf(c.out, "[!] %s\n", a)
	}

	if c.closing {
		return
	}
	if p.PendingDashboard {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.ctrl.LoadDashboardData(ctx)
		}()
	}
	if p.PendingAlertCheck {
		c.wg.Add(1)
		t := time.AfterFunc(c.ctrl.AlertDelay(), func() {
			defer c.wg.Done()
			c.ctrl.CheckAlerts(ctx)
			c.Flush(ctx)
		})
		c.timers = append(c.timers, t)
	}
}

// Close cancels alert checks that have not fired yet and waits for the rest
// of the background work.
func (c *Console) Close() {
	c.mu.Lock()
	c.closing = true
	for _, t := range c.timers {
		if t.Stop() {
			c.wg.Done()
		}
	}
	c.timers = nil
	c.mu.Unlock()

	c.wg.Wait()
}

// FormatMessage renders one transcript entry, its lines indented under a
// "[time] Sender:" heading, followed by any action button rows.
func FormatMessage(m assistant.Message) string {
	var b strings.Builder

	who := "Bot"
	if m.Sender == assistant.SenderUser {
		who = "You"
	}
	fmt.Fprintf(&b, "[%s] %s:", m.Timestamp(), who)
	lines := strings.Split(m.Text, "\n")
	if len(lines) == 1 {
		fmt.Fprintf(&b, " %s\n", lines[0])
	} else {
		b.WriteString("\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "    %s\n", l)
		}
	}
	for _, row := range m.Actions {
		b.WriteString("   ")
		for _, label := range row {
			fmt.Fprintf(&b, " [%s]", label)
		}
		b.WriteString("\n")
	}
	return b.String()
}
