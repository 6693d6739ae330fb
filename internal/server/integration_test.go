package server

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/nfrund/finassist/internal/assistant"
	"github.com/nfrund/finassist/internal/finapi"
	"github.com/nfrund/finassist/internal/pubsub"
	"github.com/nfrund/finassist/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	welcomeVisible = `id="welcomeScreen" class="welcome-screen" style="display: block"`
	chatVisible    = `id="chatContainer" class="chat-container" style="display: flex"`
)

type harness struct {
	api *testutils.FakeAPI
	srv *Server
	url string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	api := testutils.NewFakeAPI(t)
	cfg := testutils.ConfigForTests(t, api, nil)

	s, err := New(Dependencies{Config: cfg})
	require.NoError(t, err)
	s.RegisterRoutes()

	ts := httptest.NewServer(s.E)
	t.Cleanup(func() {
		ts.Close()
		s.Sessions.Shutdown()
		_ = s.Bus.Close()
	})
	return &harness{api: api, srv: s, url: ts.URL}
}

// browser is one visitor with its own cookie jar.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (h *harness) browser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: h.url, client: &http.Client{Jar: jar}}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	return read(b.t, resp)
}

func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	return read(b.t, resp)
}

func (b *browser) login() string {
	b.t.Helper()
	code, body := b.post("/ui/login", url.Values{"username": {"alice"}, "password": {"secret"}})
	require.Equal(b.t, http.StatusOK, code)
	return body
}

func read(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	code, body := h.browser(t).get("/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body)
}

func TestHomeShowsWelcomeForAnonymousVisitor(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)

	code, body := b.get("/")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, welcomeVisible)
	assert.Contains(t, body, "How can I help you today?")
	assert.Equal(t, 1, h.api.Hits("/api/account"))
	assert.Equal(t, 1, h.srv.Sessions.Len())
}

func TestLoginChatAndLogout(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")

	body := b.login()
	assert.Contains(t, body, chatVisible)
	assert.Contains(t, body, `<span id="userName">Alice Doe</span>`)
	assert.Contains(t, body, "Welcome back, Alice Doe!")
	assert.Contains(t, body, `hx-swap-oob="beforeend:#triggers"`)
	assert.Contains(t, body, `hx-get="/ui/dashboard"`)

	h.api.SetChatReply(func(string) string { return "Your budget looks healthy." })
	_, body = b.post("/ui/chat", url.Values{"message": {"  How is my budget?  "}})
	assert.Contains(t, body, "How is my budget?")
	assert.Contains(t, body, "Your budget looks healthy.")
	assert.Contains(t, body, ">View Budgets</button>")
	assert.NotContains(t, body, "hx-swap-oob", "triggers fire once")

	_, body = b.post("/ui/logout", nil)
	assert.Contains(t, body, welcomeVisible)
	assert.Contains(t, body, "You have been logged out.")
	assert.NotContains(t, body, "How is my budget?")
}

func TestReloadRestoresSignedInView(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")
	b.login()
	b.post("/ui/chat", url.Values{"message": {"hello"}})

	_, body := b.get("/")
	assert.Contains(t, body, chatVisible)
	assert.Contains(t, body, "Welcome back, Alice Doe!")
	assert.NotContains(t, body, "You said: hello", "a reload starts a fresh transcript")
}

func TestFailedLoginRaisesAlert(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")

	_, body := b.post("/ui/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Contains(t, body, `id="alertDialog"`)
	assert.Contains(t, body, "Invalid credentials")
	assert.Contains(t, body, welcomeVisible)

	_, body = b.post("/ui/alerts/dismiss", nil)
	assert.NotContains(t, body, `id="alertDialog"`)
}

func TestMissingFieldsNeverReachUpstream(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")

	_, body := b.post("/ui/register", url.Values{"username": {"bob"}})
	assert.Contains(t, body, assistant.MissingFieldsText)
	assert.Equal(t, 0, h.api.Hits("/api/register"))
}

func TestRegisterSwitchesToLogin(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")
	b.post("/ui/modal/registerModal/open", nil)

	_, body := b.post("/ui/register", url.Values{
		"username": {"bob"}, "email": {"bob@example.com"}, "password": {"pw"},
	})
	assert.Contains(t, body, assistant.RegisteredText)
	assert.Contains(t, body, `id="loginModal" class="modal" style="display: block"`)
	assert.Contains(t, body, `id="registerModal" class="modal" style="display: none"`)
}

func TestModalRoutes(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")

	_, body := b.post("/ui/modal/loginModal/open", nil)
	assert.Contains(t, body, `id="loginModal" class="modal" style="display: block"`)

	_, body = b.post("/ui/modal/dismiss", url.Values{"target": {"loginModal"}})
	assert.Contains(t, body, `id="loginModal" class="modal" style="display: none"`)

	b.post("/ui/modal/registerModal/open", nil)
	_, body = b.post("/ui/modal/registerModal/close", nil)
	assert.Contains(t, body, `id="registerModal" class="modal" style="display: none"`)
}

func TestDashboardAndAlertCheck(t *testing.T) {
	h := newHarness(t)
	h.api.SetAlerts([]finapi.Alert{
		{ID: 1, AlertType: "budget", Message: "Over budget"},
		{ID: 2, AlertType: "bill", Message: "Bill due"},
	})
	published := make(chan pubsub.Message, 1)
	require.NoError(t, h.srv.Bus.Subscribe(context.Background(), pubsub.DashboardBudgets.Name(), func(ctx context.Context, msg pubsub.Message) error {
		published <- msg
		return nil
	}))

	b := h.browser(t)
	b.get("/")
	b.login()

	code, _ := b.get("/ui/dashboard")
	assert.Equal(t, http.StatusNoContent, code)
	for _, path := range []string{"/api/accounts", "/api/budgets", "/api/goals", "/api/investments", "/api/spending-analysis"} {
		assert.Equal(t, 1, h.api.Hits(path), path)
	}

	select {
	case msg := <-published:
		assert.NotEmpty(t, msg.BrowserID)
		budgets, err := pubsub.Decode(pubsub.DashboardBudgets, msg)
		require.NoError(t, err)
		assert.NotEmpty(t, budgets)
	case <-time.After(2 * time.Second):
		t.Fatal("budgets were not published")
	}

	_, body := b.get("/ui/alerts/check")
	assert.Contains(t, body, "You have 2 new alert(s).")
}

func TestActionButtonSendsItsCommand(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")
	b.login()

	_, body := b.post("/ui/action", url.Values{"label": {"View Goals"}})
	assert.Contains(t, body, "You said: My goals")
	assert.Equal(t, 1, h.api.Hits("/api/chat"))

	b.post("/ui/action", url.Values{"label": {"Nope"}})
	assert.Equal(t, 1, h.api.Hits("/api/chat"))
}

func TestExpiredUpstreamSessionAsksForLogin(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")
	b.login()

	h.api.ExpireSessions()
	_, body := b.post("/ui/quick", url.Values{"message": {"Check my balance"}})
	assert.Contains(t, body, welcomeVisible)
	assert.Contains(t, body, assistant.LoginPromptText)
	assert.NotContains(t, body, "Check my balance</p>")
}

func TestActiveBrowserKeepsItsCookieAlive(t *testing.T) {
	h := newHarness(t)
	b := h.browser(t)
	b.get("/")
	b.login()

	resp, err := b.client.PostForm(b.base+"/ui/chat", url.Values{"message": {"still here"}})
	require.NoError(t, err)
	_, body := read(t, resp)
	assert.Contains(t, body, "You said: still here")

	var refreshed *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == "finassist" {
			refreshed = ck
		}
	}
	require.NotNil(t, refreshed, "an active request refreshes the session cookie")
	assert.Equal(t, int((30 * time.Minute).Seconds()), refreshed.MaxAge)

	_, body = b.get("/")
	assert.Contains(t, body, chatVisible)
	assert.Equal(t, 1, h.srv.Sessions.Len())
}

func TestBrowsersAreIsolated(t *testing.T) {
	h := newHarness(t)
	alice := h.browser(t)
	other := h.browser(t)

	alice.get("/")
	alice.login()

	_, body := other.get("/")
	assert.Contains(t, body, welcomeVisible)
	assert.NotContains(t, body, "Alice Doe")
	assert.Equal(t, 2, h.srv.Sessions.Len())
}
