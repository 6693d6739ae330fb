package cmd

import (
	"fmt"
	"log/slog"

	"github.com/nfrund/finassist/internal/assistant"
	"github.com/nfrund/finassist/internal/credstore"
	"github.com/nfrund/finassist/internal/finapi"
)

// session is one upstream session restored from, and saved back to, the
// credential store.
type session struct {
	client *finapi.Client
	ctrl   *assistant.Controller
	store  *credstore.Store
}

func openSession(opts ...assistant.Option) (*session, error) {
	client, err := finapi.New(cfg.APIURL, finapi.WithTimeout(cfg.HTTPTimeout))
	if err != nil {
		return nil, err
	}

	store := credstore.NewOS(cfg.StateDir)
	cookies, err := store.Load(client.BaseURL())
	if err != nil {
		slog.Warn("Ignoring unreadable session store", "path", store.Path(), "error", err)
	} else {
		client.SetCookies(cookies)
	}

	opts = append([]assistant.Option{
		assistant.WithReplyDelay(0),
		assistant.WithAlertDelay(cfg.AlertDelay),
	}, opts...)

	return &session{
		client: client,
		ctrl:   assistant.New(client, opts...),
		store:  store,
	}, nil
}

// save persists whatever cookies the upstream handed out.
func (s *session) save() error {
	if err := s.store.Save(s.client.BaseURL(), s.client.Cookies()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *session) forget() error {
	if err := s.store.Delete(s.client.BaseURL()); err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}
