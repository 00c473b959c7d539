package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every dependency answered
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck pings every named pool and the Authorizer
func HealthCheck(ctx context.Context, cfg *config.Config, log *zap.Logger, pools map[string]*gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:   "healthy",
		Database: "ok",
		Details:  make(map[string]string),
	}
	var problems []string

	for name, db := range pools {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details[name+"_error"] = err.Error()
			problems = append(problems, fmt.Sprintf("%s database ping failed: %v", name, err))
			log.Error("Health check failed - database ping", zap.String("pool", name), zap.Error(err))
		}
	}
	if result.Database == "ok" {
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		result.Status = "unhealthy"
		result.Authorizer = "unreachable"
		result.Details["authorizer_error"] = err.Error()
		problems = append(problems, fmt.Sprintf("Authorizer ping failed: %v", err))
		log.Error("Health check failed - authorizer ping", zap.Error(err))
	} else {
		result.Authorizer = "ok"
		result.Details["authorizer_url"] = cfg.AuthzURL
	}

	result.ErrorMessage = strings.Join(problems, "; ")
	if result.Healthy() {
		log.Debug("Health check passed - all systems operational")
	}
	return result
}
