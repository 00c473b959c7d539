// connection.go
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

package database

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ruthvic2255/cycle-companion/internal/config"
	"github.com/ruthvic2255/cycle-companion/internal/models"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the catalog pool (DB_APP_USER). Catalog rows are read-only
// to the application, so this user only needs SELECT grants.
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := open(cfg, cfg.DBAppUser, cfg.DBAppPassword, cfg.DBAppConnectionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}
	log.Info("Connected to catalog database",
		zap.String("type", cfg.DBType), zap.String("database", cfg.DBDatabase))
	return db, nil
}

// ConnectUser opens the personal data pool (DB_USER)
func ConnectUser(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := open(cfg, cfg.DBUser, cfg.DBPassword, cfg.DBConnectionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to user database: %w", err)
	}
	log.Info("Connected to user database",
		zap.String("type", cfg.DBType), zap.String("database", cfg.DBDatabase))
	return db, nil
}

// Dialector builds the GORM dialector for the configured DB_TYPE
func Dialector(cfg *config.Config, user, password string) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		mc := mysql.NewConfig()
		mc.User = user
		mc.Passwd = password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		mc.DBName = cfg.DBDatabase
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return gormmysql.Open(mc.FormatDSN()), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			user,
			password,
			cfg.DBDatabase,
			cfg.DBPort,
		)
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite, DBDatabase is the file path and both pools share it
		return sqlite.Open(cfg.DBDatabase), nil

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			user,
			password,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBDatabase,
		)
		return sqlserver.Open(dsn), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

func open(cfg *config.Config, user, password string, limit int) (*gorm.DB, error) {
	dialector, err := Dialector(cfg, user, password)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(cfg.DBLogLevel)),
	})
	if err != nil {
		return nil, err
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	if limit < 1 {
		limit = 1
	}
	sqlDB.SetMaxOpenConns(limit)
	sqlDB.SetMaxIdleConns(max(limit/2, 1))

	return db, nil
}

// LogLevel maps DB_LOG_LEVEL onto the GORM logger levels
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
