package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormResponse holds the current answer for one field of one client form.
// The composite unique index is the only duplicate guard; history lives in
// the audit trail, not here.
type FormResponse struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientFormID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_form_response_field" json:"client_form_id"`
	ClientForm   *ClientForm `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientFormID;references:ID" json:"client_form,omitempty"`
	FieldID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_form_response_field" json:"field_id"`
	Field        *FormField  `gorm:"foreignKey:FieldID;references:ID" json:"field,omitempty"`

	Value        string         `gorm:"column:value;type:text" json:"value"`
	ResponseData datatypes.JSON `gorm:"column:response_data;type:jsonb" json:"response_data,omitempty"`

	IsVerified   bool       `gorm:"not null;default:false;column:is_verified" json:"is_verified"`
	VerifiedAt   *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	VerifiedByID *uuid.UUID `gorm:"type:uuid;column:verified_by_id" json:"verified_by_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FormResponse) TableName() string { return "form_response" }
