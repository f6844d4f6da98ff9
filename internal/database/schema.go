package database

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"simontech/internal/domain"
	apperrors "simontech/pkg/errors"
)

// EnsureSchema creates the inquiries table when it does not exist yet.
// It is safe to run on every startup; a failure is a startup error.
func EnsureSchema(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log = log.Named("database")
	log.Info("Ensuring inquiries table exists")

	if err := db.WithContext(ctx).AutoMigrate(&domain.Inquiry{}); err != nil {
		log.Error("Failed to create inquiries table", zap.Error(err))
		return apperrors.Startup("failed to create inquiries table", err)
	}

	log.Info("Database initialized")
	return nil
}
