package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/forms"
	"github.com/ruthvic2255/cycle-companion/internal/server"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"github.com/ruthvic2255/cycle-companion/internal/testutil"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

const (
	aliceToken = "tok-alice"
	bobToken   = "tok-bob"
)

var (
	alice = &session.User{ID: "0b6f3c52-6a39-4f0e-9a43-7d1c1f0a0001", Email: "alice@example.com"}
	bob   = &session.User{ID: "0b6f3c52-6a39-4f0e-9a43-7d1c1f0a0002", Email: "bob@example.com"}
)

type testApp struct {
	app      *fiber.App
	db       *gorm.DB
	guard    *forms.Guard
	sessions *session.Manager
	auth     *testutil.StaticAuthenticator
}

// setupApp builds the full application over one in-memory database serving
// both pools
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewTestDB(t)
	sessions, auth := testutil.NewSessionManager(t, map[string]*session.User{
		aliceToken: alice,
		bobToken:   bob,
	})
	guard := forms.NewGuard()

	cfg := &config.Config{
		DBType:        "sqlite",
		SessionCookie: "cookie_session",
		SignInPath:    "/auth",
		CORSOrigins:   "*",
		AuthzURL:      "http://127.0.0.1:1",
	}
	app := server.New(server.Deps{
		Config:    cfg,
		Log:       zaptest.NewLogger(t),
		CatalogDB: db,
		UserDB:    db,
		Sessions:  sessions,
		Guard:     guard,
	})
	return &testApp{app: app, db: db, guard: guard, sessions: sessions, auth: auth}
}

// do sends a request authenticated with token; an empty token sends none
func (ta *testApp) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatalf("Failed to marshal body: %v", err)
			}
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "cookie_session", Value: token})
	}

	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

// envelope is the common shape of success and error bodies
type envelope struct {
	Status   int             `json:"status"`
	Message  string          `json:"message"`
	Ok       bool            `json:"ok"`
	Type     string          `json:"type"`
	Field    string          `json:"field"`
	Redirect string          `json:"redirect"`
	Data     json.RawMessage `json:"data"`
	Draft    json.RawMessage `json:"draft"`
}
