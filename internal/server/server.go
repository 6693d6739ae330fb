package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/finassist/internal/assistant"
	"github.com/nfrund/finassist/internal/config"
	"github.com/nfrund/finassist/internal/finapi"
	appmiddleware "github.com/nfrund/finassist/internal/middleware"
	"github.com/nfrund/finassist/internal/pubsub"
	"github.com/nfrund/finassist/internal/rendering"
	appsessions "github.com/nfrund/finassist/internal/sessions"
	"github.com/nfrund/finassist/internal/view"
)

// Dependencies holds everything New needs.
type Dependencies struct {
	Config *config.Config

	// HTTPClient, when set, is used for upstream calls instead of a fresh one.
	HTTPClient *http.Client

	// Echo, when set, is used instead of a new instance.
	Echo *echo.Echo
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      *config.Config
	Sessions *appsessions.Registry
	Bus      *pubsub.WatermillBridge

	httpClient *http.Client
	viewOpts   view.Options
}

// New creates a new Server instance. Routes are added by RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("server: config is required")
	}
	cfg := deps.Config

	secret := []byte(cfg.SessionSecret)
	if !cfg.HasSessionSecret() {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("server: generate session secret: %w", err)
		}
		slog.Warn("FINASSIST_SESSION_SECRET not set, sessions will not survive a restart")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = rendering.NewRenderer()
	setupErrorHandling(e)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	s := &Server{
		E:          e,
		Cfg:        cfg,
		httpClient: deps.HTTPClient,
		viewOpts:   view.Options{AlertDelay: cfg.AlertDelay},
	}
	s.Bus = pubsub.NewWatermillBridge(slog.Default())
	for _, topic := range pubsub.DashboardTopics {
		if err := s.Bus.Subscribe(context.Background(), topic, logDashboardEvent); err != nil {
			return nil, fmt.Errorf("server: subscribe %s: %w", topic, err)
		}
	}
	s.Sessions = appsessions.New(s.newController, appsessions.WithTTL(cfg.SessionTTL))
	return s, nil
}

// logDashboardEvent is the only consumer of dashboard parts; the page does
// not display them.
func logDashboardEvent(ctx context.Context, msg pubsub.Message) error {
	slog.Info("Dashboard part loaded", "topic", msg.Topic, "browser_id", msg.BrowserID, "bytes", len(msg.Payload))
	return nil
}

// newController builds the controller for a browser seen for the first time.
// Each browser gets its own upstream client and therefore its own upstream
// session cookie.
func (s *Server) newController(id string) (*assistant.Controller, error) {
	logger := slog.Default().With("browser_id", id)

	opts := []finapi.Option{
		finapi.WithTimeout(s.Cfg.HTTPTimeout),
		finapi.WithLogger(logger),
	}
	if s.httpClient != nil {
		opts = append([]finapi.Option{finapi.WithHTTPClient(s.httpClient)}, opts...)
	}
	client, err := finapi.New(s.Cfg.APIURL, opts...)
	if err != nil {
		return nil, err
	}

	return assistant.New(client,
		assistant.WithLogger(logger),
		assistant.WithReplyDelay(s.Cfg.ReplyDelay),
		assistant.WithAlertDelay(s.Cfg.AlertDelay),
		assistant.WithDashboardSink(pubsub.DashboardSink{Publisher: s.Bus, BrowserID: id, Logger: logger}),
	), nil
}
