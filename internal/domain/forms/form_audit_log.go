package forms

import (
	"time"

	"github.com/google/uuid"

	"github.com/harborlegal/practice-backend/internal/domain/firm"
)

const (
	AuditCreated          = "created"
	AuditFieldUpdated     = "field_updated"
	AuditDocumentUploaded = "document_uploaded"
	AuditDocumentDeleted  = "document_deleted"
	AuditSubmitted        = "submitted"
	AuditReviewed         = "reviewed"
	AuditApproved         = "approved"
	AuditRejected         = "rejected"
	AuditReminderSent     = "reminder_sent"
)

// FormAuditLog is append-only: no update or soft-delete columns. A nil
// UserID means the anonymous client acting through the access token.
type FormAuditLog struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientFormID uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_form_id"`
	ClientForm   *ClientForm `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientFormID;references:ID" json:"client_form,omitempty"`

	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *firm.User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	Action    string  `gorm:"not null;column:action;index" json:"action"`
	FieldName *string `gorm:"column:field_name" json:"field_name,omitempty"`
	OldValue  *string `gorm:"column:old_value;type:text" json:"old_value,omitempty"`
	NewValue  *string `gorm:"column:new_value;type:text" json:"new_value,omitempty"`

	IPAddress string `gorm:"column:ip_address" json:"ip_address"`
	UserAgent string `gorm:"column:user_agent" json:"user_agent"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (FormAuditLog) TableName() string { return "form_audit_log" }
