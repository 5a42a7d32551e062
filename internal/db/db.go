package db

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/snnyvrz/bookshelf/internal/config"
	"github.com/snnyvrz/bookshelf/internal/model"
)

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func gormConfig(cfg *config.Config) *gorm.Config {
	level := logger.Warn
	if cfg.GinMode == "release" {
		level = logger.Error
	}

	// scoped misses are a normal outcome for the books routes
	gormLog := logger.New(stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	return &gorm.Config{
		TranslateError: true,
		Logger:         gormLog,
	}
}

// ConnectWithRetry opens the configured database and pings it, retrying while
// the server comes up. It gives up after cfg.DBConnectAttempts tries or when
// ctx is done.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB

	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		db, err = gorm.Open(dial, gormConfig(cfg))
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.PingContext(ctx)
				if pingErr == nil {
					log.Info("database connected",
						zap.String("driver", cfg.DBDriver),
						zap.Int("attempt", attempt),
					)
					return db, nil
				}
				_ = sqlDB.Close()
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn("database not ready",
			zap.String("driver", cfg.DBDriver),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.DBConnectAttempts),
			zap.Error(err),
		)

		if attempt == cfg.DBConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBConnectAttempts, err)
}

// Migrate creates or updates the users and books tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Book{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
