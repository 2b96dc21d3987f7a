package database

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"dispatch-tracker/config"
	"dispatch-tracker/logging"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

const slowQueryThreshold = 200 * time.Millisecond

var validDBName = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func isValidDBName(name string) bool {
	return validDBName.MatchString(name)
}

// Dialector picks the gorm dialector for cfg.DBDriver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return sqlserver.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// SQLiteDSN enables foreign keys on every connection so that deleting a unit
// cascades to its registry rows.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := OpenDialector(dialector, logger)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// OpenDialector opens db with duplicate-key translation enabled.
func OpenDialector(dialector gorm.Dialector, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logging.NewGormLogger(logger, slowQueryThreshold),
	})
	if err != nil {
		return nil, err
	}

	if dialector.Name() == "sqlite" {
		// sqlite allows a single writer.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// EnsureDatabaseExists creates cfg.DBName on the server when missing.
// sqlite creates its file on open.
func EnsureDatabaseExists(cfg *config.Config, logger *slog.Logger) error {
	if cfg.DBDriver == "sqlite" {
		return nil
	}
	if !isValidDBName(cfg.DBName) {
		return fmt.Errorf("invalid database name %q", cfg.DBName)
	}

	server := *cfg
	switch cfg.DBDriver {
	case "postgres":
		server.DBName = "postgres"
	case "mysql":
		server.DBName = ""
	case "mssql":
		server.DBName = "master"
	}

	db, err := Open(&server, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	switch cfg.DBDriver {
	case "postgres":
		var exists bool
		if err := db.Raw("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = ?)", cfg.DBName).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			return nil
		}
		return db.Exec("CREATE DATABASE " + cfg.DBName).Error
	case "mysql":
		return db.Exec("CREATE DATABASE IF NOT EXISTS " + cfg.DBName).Error
	case "mssql":
		return db.Exec("IF DB_ID('" + cfg.DBName + "') IS NULL CREATE DATABASE " + cfg.DBName).Error
	}
	return nil
}
