package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	appmiddleware "github.com/nfrund/finassist/internal/middleware"
	"github.com/nfrund/finassist/web"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := appmiddleware.RateLimiter()

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
	s.E.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	browser := s.E.Group("", appmiddleware.Browser(s.Sessions))
	browser.GET("/", s.home)

	ui := browser.Group("/ui")
	ui.POST("/modal/dismiss", s.dismissModal)
	ui.POST("/modal/:id/open", s.openModal)
	ui.POST("/modal/:id/close", s.closeModal)

	ui.POST("/login", s.login, rateLimiter)
	ui.POST("/register", s.register, rateLimiter)
	ui.POST("/logout", s.logout)

	ui.POST("/chat", s.chat)
	ui.POST("/quick", s.quick)
	ui.POST("/action", s.action)

	ui.GET("/dashboard", s.dashboard)
	ui.GET("/alerts/check", s.checkAlerts)
	ui.POST("/alerts/dismiss", s.dismissAlerts)
}
