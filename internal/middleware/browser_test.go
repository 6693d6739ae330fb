package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/finassist/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource struct {
	controllers map[string]*assistant.Controller
}

func (m *mapSource) Get(id string) (*assistant.Controller, error) {
	if c, ok := m.controllers[id]; ok {
		return c, nil
	}
	c := assistant.New(nil)
	m.controllers[id] = c
	return c, nil
}

func TestBrowser(t *testing.T) {
	src := &mapSource{controllers: map[string]*assistant.Controller{}}
	e := echo.New()
	store := sessions.NewCookieStore([]byte("test-secret-test-secret-test-secret"))
	store.Options = &sessions.Options{Path: "/", MaxAge: 600}
	e.Use(session.Middleware(store))
	e.Use(Browser(src))

	var seen []*assistant.Controller
	e.GET("/", func(c echo.Context) error {
		seen = append(seen, ControllerFrom(c))
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "first visit should issue a session cookie")
	require.Equal(t, 600, cookies[0].MaxAge)

	t.Run("the same cookie gets the same controller", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Len(t, seen, 2)
		assert.Same(t, seen[0], seen[1])
		refreshed := rec.Result().Cookies()
		require.Len(t, refreshed, 1, "every visit refreshes the cookie")
		assert.Equal(t, SessionName, refreshed[0].Name)
		assert.Equal(t, cookies[0].MaxAge, refreshed[0].MaxAge)
	})

	t.Run("a new browser gets its own controller", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, seen, 3)
		assert.NotSame(t, seen[0], seen[2])
		assert.Len(t, src.controllers, 2)
	})
}
