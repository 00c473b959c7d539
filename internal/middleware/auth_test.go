package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"github.com/ruthvic2255/cycle-companion/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableAuth map[string]*session.User

func (a tableAuth) CurrentUser(_ context.Context, token string) (*session.User, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return nil, errors.New("unknown token")
}

func (a tableAuth) SignOut(context.Context, string) error { return nil }

func newGatedApp() *fiber.App {
	manager := session.NewManager(tableAuth{"good": {ID: "u1"}}, time.Minute, nil)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var custom *types.CustomError
			if errors.As(err, &custom) {
				return c.Status(custom.Code).JSON(fiber.Map{"redirect": custom.Redirect, "type": custom.Type})
			}
			return fiber.DefaultErrorHandler(c, err)
		},
	})
	app.Use(SessionGate(manager, "sid", "/signin"))
	app.Get("/me", func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(fiber.Map{"id": user.ID, "token": SessionToken(c, "sid")})
	})
	return app
}

func TestSessionGate(t *testing.T) {
	app := newGatedApp()

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sid", Value: "good"}) }, 200},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "bearer good") }, 200},
		{"missing", func(r *http.Request) {}, 401},
		{"unknown", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sid", Value: "bad"}) }, 401},
		{"browser", func(r *http.Request) { r.Header.Set("Accept", "text/html") }, 303},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			tc.setup(req)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == 303 {
				assert.Equal(t, "/signin", resp.Header.Get("Location"))
			}
		})
	}
}

func TestSessionTokenPrefersCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(SessionToken(c, "sid"))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "from-cookie", string(body))
}

func TestWithUser(t *testing.T) {
	app := fiber.New()
	app.Use(WithUser(&session.User{ID: "u2"}))
	app.Get("/", func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(user.ID)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "u2", string(body))
}
