package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"seraphina/internal/config"
	"seraphina/pkg/utils"
)

func gormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// InitPostgresql opens the pool, retrying with exponential backoff while the
// database is still coming up.
func InitPostgresql(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	attempts := cfg.DBMaxRetries
	if attempts <= 0 {
		attempts = 1
	}

	err := utils.Retry(context.Background(), attempts, 500*time.Millisecond, func() error {
		conn, err := gorm.Open(postgres.Open(cfg.PostgresURL), gormConfig(log))
		if err != nil {
			log.Warn("postgres not ready", zap.Error(err))
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			log.Warn("postgres ping failed", zap.Error(err))
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	log.Info("connected to postgres")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("close database connection", zap.Error(err))
	} else {
		log.Info("postgres connection closed")
	}
}
