package assistant

import (
	"time"

	"github.com/nfrund/finassist/internal/finapi"
)

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry. Actions holds the rows of quick-action
// button labels attached below a bot message, one row per matched keyword.
type Message struct {
	ID      int
	Sender  Sender
	Text    string
	Time    time.Time
	Actions [][]string
}

// Timestamp formats the message time the way the page shows it, e.g. "09:05 AM".
func (m Message) Timestamp() string {
	return m.Time.Format("03:04 PM")
}

// ModalID names one of the two overlays. The values double as element IDs.
type ModalID string

const (
	ModalNone     ModalID = ""
	LoginModal    ModalID = "loginModal"
	RegisterModal ModalID = "registerModal"
)

// Screen is the main area currently shown.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenChat
)

// Page is the complete view state of one visitor: what the browser DOM would
// hold. It is never persisted.
type Page struct {
	Screen   Screen
	Modal    ModalID
	User     *finapi.User
	Input    string
	Messages []Message

	// Alerts are blocking notices awaiting display. They are handed out once.
	Alerts []string

	// PendingDashboard and PendingAlertCheck are raised each time the chat
	// screen is shown and are handed out once, so each show triggers exactly
	// one dashboard load and one alert check.
	PendingDashboard  bool
	PendingAlertCheck bool
}

// LoggedIn reports whether user info is displayed.
func (p Page) LoggedIn() bool {
	return p.User != nil
}

// LastMessage returns the newest transcript entry.
func (p Page) LastMessage() (Message, bool) {
	if len(p.Messages) == 0 {
		return Message{}, false
	}
	return p.Messages[len(p.Messages)-1], true
}

func (p Page) clone() Page {
	out := p
	out.Messages = make([]Message, len(p.Messages))
	for i, m := range p.Messages {
		rows := make([][]string, len(m.Actions))
		for j, row := range m.Actions {
			rows[j] = append([]string(nil), row...)
		}
		m.Actions = rows
		out.Messages[i] = m
	}
	out.Alerts = append([]string(nil), p.Alerts...)
	if p.User != nil {
		u := *p.User
		out.User = &u
	}
	return out
}
