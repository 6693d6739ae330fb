package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/finassist/internal/assistant"
	appmiddleware "github.com/nfrund/finassist/internal/middleware"
	"github.com/nfrund/finassist/internal/view"
)

// home serves a full page load: the visitor's view starts over and the
// upstream session is checked once.
func (s *Server) home(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.Reset()
	ctrl.CheckAuthStatus(c.Request().Context())
	return c.Render(http.StatusOK, "", view.Document(ctrl.Take(), s.viewOpts))
}

// fragment answers a UI request with the re-rendered #app region.
func (s *Server) fragment(c echo.Context, ctrl *assistant.Controller) error {
	return c.Render(http.StatusOK, "", view.Fragment(ctrl.Take(), s.viewOpts))
}

func (s *Server) openModal(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.ShowModal(assistant.ModalID(c.Param("id")))
	return s.fragment(c, ctrl)
}

func (s *Server) closeModal(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.CloseModal(assistant.ModalID(c.Param("id")))
	return s.fragment(c, ctrl)
}

func (s *Server) dismissModal(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.DismissOutside(c.FormValue("target"))
	return s.fragment(c, ctrl)
}

func (s *Server) login(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	var form assistant.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	ctrl.HandleLogin(c.Request().Context(), form)
	return s.fragment(c, ctrl)
}

func (s *Server) register(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	var form assistant.RegisterForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form").SetInternal(err)
	}
	ctrl.HandleRegister(c.Request().Context(), form)
	return s.fragment(c, ctrl)
}

func (s *Server) logout(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.Logout(c.Request().Context())
	return s.fragment(c, ctrl)
}

func (s *Server) chat(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.SendMessage(c.Request().Context(), c.FormValue("message"))
	return s.fragment(c, ctrl)
}

func (s *Server) quick(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.SendQuickMessage(c.Request().Context(), c.FormValue("message"))
	return s.fragment(c, ctrl)
}

func (s *Server) action(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.PressActionButton(c.Request().Context(), c.FormValue("label"))
	return s.fragment(c, ctrl)
}

// dashboard loads the dashboard data. Nothing is rendered from it yet.
func (s *Server) dashboard(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.LoadDashboardData(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) checkAlerts(c echo.Context) error {
	ctrl := appmiddleware.ControllerFrom(c)
	ctrl.CheckAlerts(c.Request().Context())
	return s.fragment(c, ctrl)
}

// dismissAlerts re-renders the region; pending alerts were already handed
// out with the previous response.
func (s *Server) dismissAlerts(c echo.Context) error {
	return s.fragment(c, appmiddleware.ControllerFrom(c))
}
