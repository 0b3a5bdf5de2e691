package integration_test

import (
	"os"
	"sync"
	"testing"

	"aipromptweb_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer returns the shared test server, skipping the test when no
// database is configured.
func GetTestServer(t *testing.T) *helpers.TestServer {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL is not set; skipping integration test")
	}
	serverOnce.Do(func() {
		globalTestServer = helpers.NewTestServer(t)
	})
	globalTestServer.ClearCookies(t)
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()
	if globalTestServer != nil {
		globalTestServer.Close()
	}
	os.Exit(code)
}
