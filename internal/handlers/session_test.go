package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ruthvic2255/cycle-companion/internal/handlers"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"github.com/ruthvic2255/cycle-companion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/dashboard", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)

	var body handlers.DashboardResponse
	testutil.ParseJSON(t, resp, &body)
	require.NotNil(t, body.User)
	assert.Equal(t, alice.ID, body.User.ID)
	assert.Equal(t, alice.Email, body.User.Email)
	assert.Equal(t, handlers.DashboardMenu, body.Menu)
	assert.Len(t, body.Menu, 6)
}

func TestGateRejectsMissingSession(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/profile", "", nil)
	testutil.AssertStatus(t, resp, 401)

	var body envelope
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "session.required", body.Type)
	assert.Equal(t, "/auth", body.Redirect)
	assert.False(t, body.Ok)
}

func TestGateRejectsUnknownToken(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/cycles", "tok-nobody", nil)
	testutil.AssertStatus(t, resp, 401)
}

func TestGateRedirectsBrowsers(t *testing.T) {
	ta := setupApp(t)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth", resp.Header.Get("Location"))
}

func TestGateAcceptsBearerToken(t *testing.T) {
	ta := setupApp(t)

	req := httptest.NewRequest("GET", "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+bobToken)
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	testutil.AssertStatus(t, resp, 200)

	var body handlers.DashboardResponse
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, bob.ID, body.User.ID)
}

func TestSignOut(t *testing.T) {
	ta := setupApp(t)

	var (
		mu     sync.Mutex
		events []session.Event
	)
	unsubscribe := ta.sessions.Subscribe(func(ev session.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})
	defer unsubscribe()

	resp := ta.do(t, "POST", "/api/session/signout", aliceToken, nil)
	testutil.AssertStatus(t, resp, 200)

	var body handlers.SignOutResponse
	testutil.ParseJSON(t, resp, &body)
	assert.True(t, body.Ok)
	assert.Equal(t, "Logged out successfully", body.Message)
	assert.Equal(t, "/auth", body.Redirect)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "cookie_session" {
			cleared = c.Value == "" || c.MaxAge < 0
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")

	mu.Lock()
	require.Len(t, events, 1)
	assert.Equal(t, session.EventSignedOut, events[0].Kind)
	assert.Equal(t, alice.ID, events[0].UserID)
	mu.Unlock()

	assert.Equal(t, []string{aliceToken}, ta.auth.SignedOut)

	// The provider still knows the token, but it stays refused here
	resp = ta.do(t, "GET", "/api/dashboard", aliceToken, nil)
	testutil.AssertStatus(t, resp, 401)

	// Other sessions are untouched
	resp = ta.do(t, "GET", "/api/dashboard", bobToken, nil)
	testutil.AssertStatus(t, resp, 200)
}

func TestNotFoundEnvelope(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/nowhere", aliceToken, nil)
	testutil.AssertStatus(t, resp, 404)

	var body envelope
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "route.notfound", body.Type)
	assert.Equal(t, "[404] Resource Not Found", body.Message)
}

func TestHealthzReportsUnreachableAuthorizer(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/healthz", "", nil)
	testutil.AssertStatus(t, resp, 503)
}
