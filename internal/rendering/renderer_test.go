package rendering

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderComponent(Div(ID("app"), g.Text("hi & bye")))
	require.NoError(t, err)
	assert.Equal(t, `<div id="app">hi &amp; bye</div>`, string(out))

	_, err = r.RenderComponent("not a component")
	assert.Error(t, err)
}

func TestRenderThroughEcho(t *testing.T) {
	e := echo.New()
	e.Renderer = NewRenderer()
	e.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusCreated, "", P(g.Text("ok")))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "<p>ok</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}
