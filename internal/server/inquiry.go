package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"

	"simontech/internal/domain"
	apperrors "simontech/pkg/errors"
)

// InquiryPath is the submission endpoint of the contact form.
const InquiryPath = "/api/inquiries"

// maxInquiryBodyBytes bounds the size of a submission body.
const maxInquiryBodyBytes = 1 << 20

// InquirySubmitter validates and stores a submission.
type InquirySubmitter interface {
	Submit(ctx context.Context, in *domain.InquiryInput) (*domain.Inquiry, error)
}

// InquiryResponse is the external representation of a stored inquiry.
type InquiryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
	CreatedAt   string `json:"createdAt"`
}

func newInquiryResponse(i *domain.Inquiry) *InquiryResponse {
	return &InquiryResponse{
		ID:          i.ID.String(),
		Name:        i.Name,
		Email:       i.Email,
		Phone:       i.Phone,
		ProjectType: i.ProjectType,
		Budget:      i.Budget,
		Message:     i.Message,
		CreatedAt:   i.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// InquiryHandler serves POST /api/inquiries
type InquiryHandler struct {
	svc    InquirySubmitter
	logger *zap.Logger
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(svc InquirySubmitter, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{
		svc:    svc,
		logger: logger.Named("http"),
	}
}

// Create decodes a submission and answers 201 with the stored record,
// 400 when a required field is missing and 500 for anything else.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, maxInquiryBodyBytes)

	var in domain.InquiryInput
	if err := goahttp.RequestDecoder(r).Decode(&in); err != nil {
		h.fail(ctx, w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	inquiry, err := h.svc.Submit(ctx, &in)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	if err := writeJSON(ctx, w, http.StatusCreated, newInquiryResponse(inquiry)); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (h *InquiryHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if apperrors.IsValidation(err) {
		status = http.StatusBadRequest
	} else {
		h.logger.Error("Inquiry submission failed", zap.Error(err))
	}

	if werr := writeError(ctx, w, status, apperrors.PublicMessage(err)); werr != nil {
		h.logger.Warn("Failed to write error response", zap.Error(werr))
	}
}
