package testutils

import (
	"testing"

	"github.com/nfrund/finassist/internal/config"
)

// TestSessionSecret is a session secret long enough to pass validation.
const TestSessionSecret = "finassist-test-session-secret-0123456789"

// ConfigForTests returns a config that points at api, keeps state under a
// temporary directory and disables the reply and alert delays. overrides
// are applied on top.
func ConfigForTests(t *testing.T, api *FakeAPI, overrides map[string]string) *config.Config {
	t.Helper()

	vars := map[string]string{
		"FINASSIST_API_URL":        api.URL(),
		"FINASSIST_SESSION_SECRET": TestSessionSecret,
		"FINASSIST_STATE_DIR":      t.TempDir(),
		"FINASSIST_REPLY_DELAY":    "0s",
		"FINASSIST_ALERT_DELAY":    "0s",
	}
	for k, v := range overrides {
		vars[k] = v
	}

	cfg, err := config.FromMap(vars)
	if err != nil {
		t.Fatalf("test config: %v", err)
	}
	return cfg
}
