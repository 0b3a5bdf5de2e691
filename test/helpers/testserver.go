package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"aipromptweb_backend/internal/app"
	"aipromptweb_backend/internal/config"
	"aipromptweb_backend/internal/models"
)

// TestServer wraps a full HTTP stack over a real Postgres database. Its
// client carries a cookie jar so the session cookie flows like in a
// browser.
type TestServer struct {
	Server *httptest.Server
	Client *http.Client
	DB     *gorm.DB
}

// NewTestServer builds the application against the database in
// DATABASE_URL. Callers are expected to have skipped the test when that
// variable is unset.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", dsn, err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Description{},
		&models.ImageURL{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{}
	cfg.Database.DSN = dsn
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "integration-test-secret"
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.BaseURL = "/images"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	router, err := app.SetupRouter(cfg, db)
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}

	server := httptest.NewServer(router)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	client := server.Client()
	client.Jar = jar

	return &TestServer{
		Server: server,
		Client: client,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// ClearTables wipes everything between tests.
func (ts *TestServer) ClearTables(t *testing.T) {
	t.Helper()
	err := ts.DB.Exec("TRUNCATE TABLE users, descriptions, image_urls RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("failed to clear tables: %v", err)
	}
}

// ClearCookies drops the client's session between scenarios.
func (ts *TestServer) ClearCookies(t *testing.T) {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to reset cookie jar: %v", err)
	}
	ts.Client.Jar = jar
}

// SendRequest performs a JSON request through the cookie-carrying client
// and returns the response with its body drained to a string.
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", "http://localhost:5173")

	res, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBody)
}
