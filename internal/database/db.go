package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hrportal/internal/config"
	"hrportal/internal/model"
)

// NewConnection opens the postgres pool through GORM and migrates the schema.
func NewConnection(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	err = db.AutoMigrate(
		&model.Company{},
		&model.Employee{},
		&model.EmployeeDocument{},
		&model.User{},
		&model.LeaveRequest{},
		&model.DocumentRequest{},
		&model.GenericRequest{},
		&model.AuditLog{},
	)
	if err != nil {
		logger.Warn("failed to auto-migrate models", zap.Error(err))
	}

	logger.Info("connected to postgres",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Name),
	)
	return db, nil
}
