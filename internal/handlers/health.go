package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler reports dependency health
type HealthHandler struct {
	Config *config.Config
	Pools  map[string]*gorm.DB
	Log    *zap.Logger
}

// GetHealth handles GET /healthz
// @Summary Health check
// @Description Database pools and Authorizer reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /healthz [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.Log, h.Pools)
	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
