package view

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nfrund/finassist/internal/assistant"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

const (
	AppID          = "app"
	TriggersID     = "triggers"
	ChatMessagesID = "chatMessages"

	// swapToLatest replaces #app and keeps the newest message in view.
	swapToLatest = "outerHTML scroll:#" + ChatMessagesID + ":bottom"

	defaultHTMXSrc = "https://unpkg.com/htmx.org@2.0.4"
)

// Options tune rendering without touching the view model.
type Options struct {
	// AlertDelay is the wait between showing the chat and checking alerts.
	AlertDelay time.Duration
	// HTMXSrc overrides where the htmx script is loaded from.
	HTMXSrc string
}

func (o Options) htmxSrc() string {
	if o.HTMXSrc != "" {
		return o.HTMXSrc
	}
	return defaultHTMXSrc
}

// Document renders the full page for a first load.
func Document(p assistant.Page, opts Options) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(g.Attr("charset", "utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text("Finance Assistant Bot")),
				Link(Rel("stylesheet"), Href("/static/css/style.css")),
				Script(Src(opts.htmxSrc())),
			),
			Body(
				App(p),
				Div(ID(TriggersID), Triggers(p, opts)),
			),
		),
	)
}

// Fragment is the response to every UI request: the re-rendered #app region
// plus any one-shot triggers appended out of band.
func Fragment(p assistant.Page, opts Options) g.Node {
	return g.Group{
		App(p),
		g.If(p.PendingDashboard || p.PendingAlertCheck,
			Div(hx.SwapOOB("beforeend:#"+TriggersID), Triggers(p, opts)),
		),
	}
}

// App renders the #app region: header, both screens, both overlays and any
// pending alert dialog.
func App(p assistant.Page) g.Node {
	return Div(
		ID(AppID),
		Header(
			Class("header"),
			H1(I(Class("fas fa-robot")), g.Text(" Finance Assistant Bot")),
			authButtons(p),
			userInfo(p),
		),
		Main(
			Class("main"),
			welcomeScreen(p),
			chatContainer(p),
		),
		loginModal(p),
		registerModal(p),
		alertDialog(p.Alerts),
	)
}

// Triggers renders the invisible elements that fire the dashboard load and
// the delayed alert check once each.
func Triggers(p assistant.Page, opts Options) g.Node {
	return g.Group{
		g.If(p.PendingDashboard,
			Div(hx.Get("/ui/dashboard"), hx.Trigger("load"), hx.Swap("none")),
		),
		g.If(p.PendingAlertCheck,
			Div(
				hx.Get("/ui/alerts/check"),
				hx.Trigger(fmt.Sprintf("load delay:%dms", opts.AlertDelay.Milliseconds())),
				hx.Target("#"+AppID),
				hx.Swap(swapToLatest),
			),
		),
	}
}

func authButtons(p assistant.Page) g.Node {
	return Div(
		ID("authButtons"),
		Class("auth-buttons"),
		display(!p.LoggedIn(), "flex"),
		Button(Class("btn btn-login"), uiPost("/ui/modal/loginModal/open"), g.Text("Login")),
		Button(Class("btn btn-register"), uiPost("/ui/modal/registerModal/open"), g.Text("Register")),
	)
}

func userInfo(p assistant.Page) g.Node {
	name := ""
	if p.User != nil {
		name = p.User.DisplayName()
	}
	return Div(
		ID("userInfo"),
		Class("user-info"),
		display(p.LoggedIn(), "flex"),
		I(Class("fas fa-user-circle")),
		Span(ID("userName"), g.Text(name)),
		Button(Class("btn btn-logout"), uiPost("/ui/logout"), g.Text("Logout")),
	)
}

func alertDialog(alerts []string) g.Node {
	if len(alerts) == 0 {
		return nil
	}
	return Div(
		ID("alertDialog"),
		Class("alert-dialog"),
		g.Attr("role", "alertdialog"),
		g.Map(alerts, func(msg string) g.Node {
			return P(g.Text(msg))
		}),
		Button(Class("btn"), uiPost("/ui/alerts/dismiss"), g.Text("OK")),
	)
}

// uiPost wires an element to a UI endpoint that answers with a new #app.
func uiPost(url string) g.Node {
	return g.Group{
		hx.Post(url),
		hx.Target("#" + AppID),
		hx.Swap("outerHTML"),
	}
}

// chatPost is uiPost for endpoints that add to the transcript.
func chatPost(url string) g.Node {
	return g.Group{
		hx.Post(url),
		hx.Target("#" + AppID),
		hx.Swap(swapToLatest),
	}
}

// vals sets hx-vals from a flat map.
func vals(v map[string]string) g.Node {
	b, _ := json.Marshal(v)
	return g.Attr("hx-vals", string(b))
}

func display(visible bool, as string) g.Node {
	if visible {
		return g.Attr("style", "display: "+as)
	}
	return g.Attr("style", "display: none")
}
