package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"simontech/internal/domain"
	"simontech/internal/metrics"
	apperrors "simontech/pkg/errors"
)

const opCreateInquiry = "create_inquiry"

// InquiryRepository persists inquiries.
type InquiryRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
	logger       *zap.Logger
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB, queryTimeout time.Duration, logger *zap.Logger) *InquiryRepository {
	return &InquiryRepository{
		db:           db,
		queryTimeout: queryTimeout,
		logger:       logger.Named("database"),
	}
}

// Create inserts one inquiry and returns the stored row, including the id
// and created_at assigned by PostgreSQL. Absent optional fields are stored
// as empty strings.
func (r *InquiryRepository) Create(ctx context.Context, in *domain.InquiryInput) (*domain.Inquiry, error) {
	if in == nil {
		return nil, apperrors.Storage("failed to save inquiry", errors.New("nil inquiry input"))
	}

	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	inquiry := domain.NewInquiry(in)

	start := time.Now()
	err := r.db.WithContext(ctx).Create(inquiry).Error
	metrics.RecordDBQuery(opCreateInquiry, time.Since(start), err)
	recordPoolStats(r.db)

	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			fields = append(fields, zap.String("sqlstate", pgErr.Code))
		}
		r.logger.Error("Insert inquiry failed", fields...)
		return nil, apperrors.Storage("failed to save inquiry", err)
	}

	if inquiry.ID == uuid.Nil || inquiry.CreatedAt.IsZero() {
		return nil, apperrors.Storage("failed to save inquiry", errors.New("insert returned no id or created_at"))
	}

	return inquiry, nil
}
