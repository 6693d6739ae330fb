package view

import (
	"github.com/nfrund/finassist/internal/assistant"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// overlay renders a modal backdrop. A click that lands on the backdrop
// itself, not on the dialog inside, posts a dismiss for that overlay.
func overlay(id assistant.ModalID, open bool, title string, body ...g.Node) g.Node {
	sid := string(id)
	return Div(
		ID(sid),
		Class("modal"),
		display(open, "block"),
		hx.Post("/ui/modal/dismiss"),
		hx.Trigger("click target:#"+sid),
		hx.Target("#"+AppID),
		hx.Swap("outerHTML"),
		vals(map[string]string{"target": sid}),
		Div(
			Class("modal-content"),
			Span(Class("close"), uiPost("/ui/modal/"+sid+"/close"), g.Text("×")),
			H2(g.Text(title)),
			g.Group(body),
		),
	)
}

func loginModal(p assistant.Page) g.Node {
	return overlay(assistant.LoginModal, p.Modal == assistant.LoginModal, "Login",
		g.El("form",
			ID("loginForm"),
			uiPost("/ui/login"),
			field("loginUsername", "Username", "text", "username", true),
			field("loginPassword", "Password", "password", "password", true),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Login")),
		),
		P(
			Class("modal-switch"),
			g.Text("Don't have an account? "),
			Button(Type("button"), Class("link-btn"), uiPost("/ui/modal/registerModal/open"), g.Text("Register")),
		),
	)
}

func registerModal(p assistant.Page) g.Node {
	return overlay(assistant.RegisterModal, p.Modal == assistant.RegisterModal, "Register",
		g.El("form",
			ID("registerForm"),
			uiPost("/ui/register"),
			field("regUsername", "Username", "text", "username", true),
			field("regEmail", "Email", "email", "email", true),
			field("regPassword", "Password", "password", "password", true),
			field("regFullName", "Full Name", "text", "full_name", false),
			field("regPhone", "Phone", "tel", "phone", false),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Register")),
		),
	)
}

func field(id, label, typ, name string, required bool) g.Node {
	return Div(
		Class("form-group"),
		g.El("label", g.Attr("for", id), g.Text(label)),
		Input(ID(id), Type(typ), Name(name), g.If(required, Required())),
	)
}
