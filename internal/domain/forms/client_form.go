package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborlegal/practice-backend/internal/domain/firm"
)

// Status values are conventions, not an enforced enum.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusReviewed   = "Reviewed"
	StatusApproved   = "Approved"
	StatusRejected   = "Rejected"
)

// ClientForm is one template instance sent to one client. The access token
// is the sole credential for the public endpoints; a form past ExpiresAt is
// rejected regardless of status.
type ClientForm struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LawFirmID  uuid.UUID     `gorm:"type:uuid;not null;index" json:"law_firm_id"`
	ClientID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id"`
	Client     *firm.Client  `gorm:"foreignKey:ClientID;references:ID" json:"client,omitempty"`
	TemplateID uuid.UUID     `gorm:"type:uuid;not null;index" json:"template_id"`
	Template   *FormTemplate `gorm:"foreignKey:TemplateID;references:ID" json:"template,omitempty"`

	Title        string `gorm:"not null;column:title" json:"title"`
	Status       string `gorm:"not null;default:'Pending';column:status;index" json:"status"`
	AccessToken  string `gorm:"uniqueIndex;not null;column:access_token" json:"-"`
	Instructions string `gorm:"column:instructions" json:"instructions"`

	CompletionPercentage float64 `gorm:"not null;default:0;column:completion_percentage" json:"completion_percentage"`

	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedByID *uuid.UUID `gorm:"type:uuid;column:reviewed_by_id" json:"reviewed_by_id,omitempty"`

	Responses     []FormResponse       `gorm:"foreignKey:ClientFormID;references:ID" json:"responses,omitempty"`
	Documents     []ClientFormDocument `gorm:"foreignKey:ClientFormID;references:ID" json:"documents,omitempty"`
	Notifications []FormNotification   `gorm:"foreignKey:ClientFormID;references:ID" json:"notifications,omitempty"`
	AuditLogs     []FormAuditLog       `gorm:"foreignKey:ClientFormID;references:ID" json:"audit_logs,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ClientForm) TableName() string { return "client_form" }

// Expired reports whether the form is past its expiry at the given instant.
func (cf *ClientForm) Expired(now time.Time) bool {
	return cf.ExpiresAt != nil && now.After(*cf.ExpiresAt)
}
