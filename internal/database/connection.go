package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"simontech/internal/config"
	"simontech/internal/metrics"
)

const (
	connMaxLifetime = 5 * time.Minute
	connMaxIdleTime = 10 * time.Minute
	pingTimeout     = 5 * time.Second
)

// DB wraps a pooled gorm connection to PostgreSQL.
type DB struct {
	*gorm.DB
}

// Open connects to PostgreSQL, configures the connection pool and verifies
// the connection with a ping.
func Open(ctx context.Context, cfg *config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	log = log.Named("database")
	log.Info("Connecting to PostgreSQL database", zap.String("target", cfg.Redacted()))

	// Never log SQL queries: they carry submitter names, emails and phone numbers.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	log.Info("Connection pool configured",
		zap.Int("max_open", cfg.MaxConnections),
		zap.Int("max_idle", cfg.MaxIdleConns),
	)

	db := &DB{DB: gdb}
	if err := db.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database connection test failed: %w", err)
	}

	return db, nil
}

// Ping checks that a pooled connection can reach the server.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	recordPoolStats(db.DB)
	return nil
}

// Stats returns database connection statistics
func (db *DB) Stats() (sql.DBStats, error) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return sql.DBStats{}, err
	}
	return sqlDB.Stats(), nil
}

// Close releases every pooled connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func recordPoolStats(gdb *gorm.DB) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return
	}
	metrics.RecordDBStats(sqlDB.Stats())
}
