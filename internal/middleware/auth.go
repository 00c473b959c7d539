package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"github.com/ruthvic2255/cycle-companion/internal/types"
	"github.com/ruthvic2255/cycle-companion/internal/utils"
)

const (
	localUser  = "user"
	localToken = "session_token"
)

// SessionGate lets a request through only with a resolvable session. Without
// one, browsers are sent to signInPath and API clients get a 401 carrying the
// same redirect.
func SessionGate(manager *session.Manager, cookieName, signInPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := SessionToken(c, cookieName)

		user, err := manager.Resolve(c.UserContext(), token)
		if err != nil {
			if wantsHTML(c) {
				return c.Redirect(signInPath, fiber.StatusSeeOther)
			}
			return &types.CustomError{
				Code:     fiber.StatusUnauthorized,
				Message:  "Authentication required",
				Type:     utils.ErrTypeAuth,
				Redirect: signInPath,
			}
		}

		c.Locals(localUser, user)
		c.Locals(localToken, token)
		return c.Next()
	}
}

// SessionToken reads the session cookie, falling back to a bearer token
func SessionToken(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	if token, ok := c.Locals(localToken).(string); ok {
		return token
	}
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// CurrentUser returns the user the gate resolved for this request
func CurrentUser(c *fiber.Ctx) (*session.User, bool) {
	user, ok := c.Locals(localUser).(*session.User)
	return user, ok && user != nil
}

// WithUser marks the request as authenticated as user. Tests use it in place
// of the gate.
func WithUser(user *session.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localUser, user)
		return c.Next()
	}
}

func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
