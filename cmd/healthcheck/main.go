// main.go
//
// Cycle Companion, a menstrual cycle tracking and wellness data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of cycle-companion.
// cycle-companion is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// cycle-companion is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with cycle-companion.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/database"
	"github.com/ruthvic2255/cycle-companion/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Production config logs JSON to stderr, stdout carries only the report
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(2)
	}

	healthy, err := run(logger)
	_ = logger.Sync()
	if err != nil || !healthy {
		os.Exit(1)
	}
}

// run prints the health report and returns whether every dependency answered.
// Returning instead of exiting lets the pool closes run.
func run(logger *zap.Logger) (bool, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		return false, err
	}

	// Connect to database (catalog pool)
	catalogDB, err := database.Connect(cfg, zap.NewNop())
	if err != nil {
		logger.Error("Failed to connect to database", zap.String("pool", "catalog"), zap.Error(err))
		return false, err
	}
	defer database.Close(catalogDB)

	// Connect to database (user pool)
	userDB, err := database.ConnectUser(cfg, zap.NewNop())
	if err != nil {
		logger.Error("Failed to connect to database", zap.String("pool", "user"), zap.Error(err))
		return false, err
	}
	defer database.Close(userDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Perform health check
	result := services.HealthCheck(ctx, cfg, logger, map[string]*gorm.DB{
		"catalog": catalogDB,
		"user":    userDB,
	})

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("Failed to marshal health check result", zap.Error(err))
		return false, err
	}

	fmt.Println(string(output))
	return result.Healthy(), nil
}
