package domain

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry represents a contact form submission as stored in the inquiries
// table. ID and CreatedAt are assigned by PostgreSQL on insert.
type Inquiry struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Email       string    `gorm:"type:text;not null" json:"email"`
	Phone       string    `gorm:"type:text" json:"phone"`
	ProjectType string    `gorm:"column:project_type;type:text;not null" json:"projectType"`
	Budget      string    `gorm:"type:text" json:"budget"`
	Message     string    `gorm:"type:text" json:"message"`
	CreatedAt   time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP;autoCreateTime:false" json:"createdAt"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// InquiryInput is the unvalidated body of a submission. Absent optional
// fields decode to the empty string.
type InquiryInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ProjectType string `json:"projectType"`
	Budget      string `json:"budget"`
	Message     string `json:"message"`
}

// NewInquiry builds the row to insert from a submission.
func NewInquiry(in *InquiryInput) *Inquiry {
	return &Inquiry{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		ProjectType: in.ProjectType,
		Budget:      in.Budget,
		Message:     in.Message,
	}
}
