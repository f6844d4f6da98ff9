package services

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"simontech/internal/domain"
	"simontech/internal/metrics"
	apperrors "simontech/pkg/errors"
)

// MsgMissingRequiredFields is returned to clients when name, email or
// projectType is absent or empty.
const MsgMissingRequiredFields = "Missing required fields"

// InquiryRepository stores inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, in *domain.InquiryInput) (*domain.Inquiry, error)
}

// InquiryService implements inquiry submission
type InquiryService struct {
	repo   InquiryRepository
	logger *zap.Logger
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(repo InquiryRepository, logger *zap.Logger) *InquiryService {
	return &InquiryService{
		repo:   repo,
		logger: logger.Named("inquiry"),
	}
}

// Submit validates a submission and persists it. Nothing is written when
// validation fails. Duplicate submissions produce distinct rows.
func (s *InquiryService) Submit(ctx context.Context, in *domain.InquiryInput) (*domain.Inquiry, error) {
	if err := validateInquiry(in); err != nil {
		s.logger.Info("Submit rejected: validation error", zap.Error(err))
		metrics.RecordInquiryValidationFailure()
		return nil, apperrors.Validation(MsgMissingRequiredFields, err)
	}

	inquiry, err := s.repo.Create(ctx, in)
	if err != nil {
		s.logger.Error("Submit failed: database error", zap.Error(err))
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	s.logger.Info("Submit successful",
		zap.String("id", inquiry.ID.String()),
		zap.String("project_type", inquiry.ProjectType),
	)
	metrics.RecordInquirySubmission()

	return inquiry, nil
}

// validateInquiry checks that the required fields are present. No format
// checks are applied and whitespace counts as content.
func validateInquiry(in *domain.InquiryInput) error {
	if in == nil {
		return errors.New("empty submission")
	}
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.ProjectType, validation.Required),
	)
}
