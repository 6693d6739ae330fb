package rendering

import (
	"bytes"
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
)

// Node is anything that renders itself as HTML, such as a gomponents.Node.
type Node interface {
	Render(w io.Writer) error
}

// Renderer implements echo.Renderer for component trees. Handlers pass the
// component as the data argument of c.Render; the template name is ignored.
type Renderer struct{}

// NewRenderer creates a new Renderer instance.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderComponent renders a component to a slice of bytes.
func (r *Renderer) RenderComponent(component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.render(component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// Render implements the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.render(data, w)
}

func (r *Renderer) render(component any, w io.Writer) error {
	n, ok := component.(Node)
	if !ok {
		return fmt.Errorf("unsupported component type: %T, it must implement Render(io.Writer) error", component)
	}
	return n.Render(w)
}
