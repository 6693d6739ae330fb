package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/finassist/internal/assistant"
)

const (
	// SessionName is the cookie session holding the browser ID.
	SessionName = "finassist"

	// ControllerContextKey is where Browser stores the visitor's controller.
	ControllerContextKey = "controller"

	browserIDKey = "browser_id"
)

// ControllerSource hands out the controller for a browser ID.
type ControllerSource interface {
	Get(id string) (*assistant.Controller, error)
}

// Browser attaches the visitor's controller to the request, issuing a new
// browser ID on first contact and refreshing the cookie on every request. It
// must run after session.Middleware.
func Browser(src ControllerSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get(SessionName, c)
			if sess == nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session store missing").SetInternal(err)
			}
			if err != nil {
				// Undecodable cookie, e.g. after a secret change. Start over.
				FromContext(c.Request().Context()).Warn("Discarding unreadable session", "error", err)
			}

			id, _ := sess.Values[browserIDKey].(string)
			if id == "" {
				id = uuid.NewString()
				sess.Values[browserIDKey] = id
			}
			// Re-issued on every request so the cookie expires on idle time,
			// like the registry entry behind it.
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not save session").SetInternal(err)
			}

			ctrl, err := src.Get(id)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "could not load session").SetInternal(err)
			}
			c.Set(ControllerContextKey, ctrl)
			return next(c)
		}
	}
}

// ControllerFrom returns the controller attached by Browser.
func ControllerFrom(c echo.Context) *assistant.Controller {
	ctrl, _ := c.Get(ControllerContextKey).(*assistant.Controller)
	return ctrl
}
