package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/middleware"
	"github.com/ruthvic2255/cycle-companion/internal/session"
	"go.uber.org/zap"
)

// MenuItem is one dashboard tile
type MenuItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// DashboardMenu lists the pages reachable from the dashboard
var DashboardMenu = []MenuItem{
	{Title: "Cycle Calendar", Description: "Track your menstrual cycle", Path: "/calendar"},
	{Title: "Physical Data", Description: "Monitor your health metrics", Path: "/physical-data"},
	{Title: "Exercise", Description: "Recommended workouts", Path: "/exercise"},
	{Title: "Nutrition", Description: "Food guides and tips", Path: "/nutrition"},
	{Title: "Profile", Description: "Manage your account", Path: "/profile"},
	{Title: "Notifications", Description: "Set reminders", Path: "/notifications"},
}

// DashboardResponse is the dashboard page state
type DashboardResponse struct {
	User *session.User `json:"user"`
	Menu []MenuItem    `json:"menu"`
}

// SignOutResponse confirms a sign-out
type SignOutResponse struct {
	Message  string `json:"message"`
	Ok       bool   `json:"ok"`
	Redirect string `json:"redirect"`
}

// SessionHandler serves the dashboard and sign-out
type SessionHandler struct {
	Sessions   *session.Manager
	CookieName string
	SignInPath string
	Log        *zap.Logger
}

// GetDashboard handles GET /api/dashboard
// @Summary Dashboard
// @Description The signed-in user and the page menu
// @Tags Session
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /dashboard [get]
func (h *SessionHandler) GetDashboard(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(DashboardResponse{User: user, Menu: DashboardMenu})
}

// SignOut handles POST /api/session/signout
// @Summary Sign out
// @Description End the session, clear the cookie and point the client at the sign-in page
// @Tags Session
// @Produce json
// @Success 200 {object} SignOutResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /session/signout [post]
func (h *SessionHandler) SignOut(c *fiber.Ctx) error {
	user, err := getUser(c)
	if err != nil {
		return err
	}

	token := middleware.SessionToken(c, h.CookieName)
	if err := h.Sessions.SignOut(c.UserContext(), token); err != nil && !errors.Is(err, session.ErrNoSession) {
		h.Log.Error("Sign-out failed", zap.String("user_id", user.ID), zap.Error(err))
	}
	c.ClearCookie(h.CookieName)

	return c.Status(fiber.StatusOK).JSON(SignOutResponse{
		Message:  "Logged out successfully",
		Ok:       true,
		Redirect: h.SignInPath,
	})
}
