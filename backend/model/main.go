package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-voice/backend/common"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// OpenDB opens MySQL when dsn is set and SQLite at sqlitePath otherwise, then
// migrates the schema.
func OpenDB(dsn string, sqlitePath string) (*gorm.DB, error) {
	config := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if common.DebugEnabled {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	var err error
	if dsn != "" {
		common.SysLog("using MySQL as database")
		db, err = gorm.Open(mysql.Open(dsn), config)
	} else {
		common.SysLog("SQL_DSN not set, using SQLite as database: " + sqlitePath)
		if err := ensureSQLiteDir(sqlitePath); err != nil {
			return nil, err
		}
		db, err = gorm.Open(sqlite.Open(sqliteDSN(sqlitePath)), config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &File{}); err != nil {
		return fmt.Errorf("failed to auto migrate database schema: %w", err)
	}
	return nil
}

func InitDB() (err error) {
	DB, err = OpenDB(common.SQLDSN, common.SQLitePath)
	if err != nil {
		return err
	}
	common.SysLog("database initialized successfully")
	return nil
}

func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	common.SysLog("closing database connection")
	return sqlDB.Close()
}

// sqliteDSN enables WAL and a busy timeout so concurrent requests wait for
// the writer instead of failing with SQLITE_BUSY.
func sqliteDSN(path string) string {
	if path == ":memory:" || strings.Contains(path, "?") {
		return path
	}
	return path + "?_busy_timeout=5000&_journal_mode=WAL"
}

func ensureSQLiteDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}
