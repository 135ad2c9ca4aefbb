package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types. The source system reused one "completion" type for
// both the send-to-client notice and the post-submission firm notice; the
// two events are named apart here, behavior at each call site unchanged.
const (
	NotificationFormSent      = "form_sent"
	NotificationCompletion    = "completion"
	NotificationReminder      = "reminder"
	NotificationReviewRequest = "review_request"
	NotificationApproved      = "approved"
)

const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

// FormNotification is a persisted outbound message. Creating a row never
// sends mail; an explicit dispatch hands it to the mail client.
type FormNotification struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientFormID uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_form_id"`
	ClientForm   *ClientForm `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientFormID;references:ID" json:"client_form,omitempty"`

	Type           string `gorm:"not null;column:type" json:"type"`
	RecipientEmail string `gorm:"not null;column:recipient_email" json:"recipient_email"`
	Subject        string `gorm:"not null;column:subject" json:"subject"`
	Message        string `gorm:"not null;column:message;type:text" json:"message"`
	Status         string `gorm:"not null;default:'pending';column:status;index" json:"status"`

	SentAt    *time.Time `gorm:"column:sent_at" json:"sent_at,omitempty"`
	OpenedAt  *time.Time `gorm:"column:opened_at" json:"opened_at,omitempty"`
	ClickedAt *time.Time `gorm:"column:clicked_at" json:"clicked_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FormNotification) TableName() string { return "form_notification" }
