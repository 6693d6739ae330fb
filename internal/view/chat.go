package view

import (
	"strings"

	"github.com/nfrund/finassist/internal/assistant"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// QuickPrompts are the canned questions offered on both screens.
var QuickPrompts = []string{
	"Check my balance",
	"Transaction history",
	"Show my bills",
	"Budget status",
	"My goals",
	"Financial report",
}

func welcomeScreen(p assistant.Page) g.Node {
	return Div(
		ID("welcomeScreen"),
		Class("welcome-screen"),
		display(p.Screen == assistant.ScreenWelcome, "block"),
		H2(g.Text("Welcome to Finance Assistant Bot")),
		P(g.Text("Your personal assistant for account inquiries, transaction history, and financial advice. Please login or register to get started.")),
		Div(
			Class("welcome-actions"),
			Button(Class("btn btn-primary"), uiPost("/ui/modal/loginModal/open"), g.Text("Login")),
			Button(Class("btn btn-secondary"), uiPost("/ui/modal/registerModal/open"), g.Text("Create Account")),
		),
	)
}

func chatContainer(p assistant.Page) g.Node {
	return Div(
		ID("chatContainer"),
		Class("chat-container"),
		display(p.Screen == assistant.ScreenChat, "flex"),
		Div(
			ID(ChatMessagesID),
			Class("chat-messages"),
			g.Map(p.Messages, message),
		),
		Div(
			Class("quick-actions"),
			g.Map(QuickPrompts, func(prompt string) g.Node {
				return Button(
					Class("quick-btn"),
					Type("button"),
					chatPost("/ui/quick"),
					vals(map[string]string{"message": prompt}),
					g.Text(prompt),
				)
			}),
		),
		g.El("form",
			Class("chat-input"),
			chatPost("/ui/chat"),
			Input(
				ID("chatInput"),
				Type("text"),
				Name("message"),
				Placeholder("Ask me about your accounts, budgets, goals..."),
				g.Attr("autocomplete", "off"),
				Value(p.Input),
			),
			Button(Type("submit"), Class("btn btn-send"), I(Class("fas fa-paper-plane"))),
		),
	)
}

func message(m assistant.Message) g.Node {
	cls, icon := "message bot-message", "fas fa-robot"
	if m.Sender == assistant.SenderUser {
		cls, icon = "message user-message", "fas fa-user"
	}
	return Div(
		Class(cls),
		Div(Class("message-avatar"), I(Class(icon))),
		Div(
			Class("message-content"),
			P(lines(m.Text)),
			Span(Class("message-time"), g.Text(m.Timestamp())),
			g.Map(m.Actions, actionRow),
		),
	)
}

func actionRow(labels []string) g.Node {
	return Div(
		Class("action-buttons"),
		g.Attr("style", "margin-top: 10px; display: flex; gap: 10px; flex-wrap: wrap;"),
		g.Map(labels, func(label string) g.Node {
			return Button(
				Class("quick-btn"),
				Type("button"),
				chatPost("/ui/action"),
				vals(map[string]string{"label": label}),
				g.Text(label),
			)
		}),
	)
}

// lines escapes text and turns newlines into line breaks.
func lines(text string) g.Node {
	parts := strings.Split(text, "\n")
	nodes := make(g.Group, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			nodes = append(nodes, Br())
		}
		nodes = append(nodes, g.Text(part))
	}
	return nodes
}
