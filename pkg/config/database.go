package config

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/pressly/goose"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connection
type DB struct {
	Postgres *gorm.DB
	logger   *zap.Logger
}

// InitDB opens and pings the PostgreSQL connection
func InitDB(cfg *Config, logger *zap.Logger) (*DB, error) {
	gormLogLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger, gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("connected to PostgreSQL")
	return &DB{Postgres: db, logger: logger}, nil
}

// newGormLogger routes gorm's SQL and slow-query logs into zap.
func newGormLogger(logger *zap.Logger, level gormlogger.LogLevel) gormlogger.Interface {
	return gormlogger.New(zap.NewStdLog(logger.Named("gorm")), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Migrate creates the tables from the gorm models, then applies the SQL
// migrations in dir (the post_stats view).
func (db *DB) Migrate(dir string) error {
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}
	db.logger.Info("auto-migrations completed")

	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	if err := runSQLMigrations(sqlDB, dir); err != nil {
		return err
	}
	db.logger.Info("sql migrations applied", zap.String("dir", dir))
	return nil
}

func runSQLMigrations(sqlDB *sql.DB, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("apply migrations from %s: %w", dir, err)
	}
	return nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Postgres == nil {
		return
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		db.logger.Error("error getting SQL DB from GORM", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		db.logger.Error("error closing PostgreSQL connection", zap.Error(err))
		return
	}
	db.logger.Info("PostgreSQL connection closed")
}
