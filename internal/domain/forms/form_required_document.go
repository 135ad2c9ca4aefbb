package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormRequiredDocument names a document slot the client must fill, distinct
// from free-form uploads. Document state is validated separately from the
// field completion percentage.
type FormRequiredDocument struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TemplateID uuid.UUID     `gorm:"type:uuid;not null;index" json:"template_id"`
	Template   *FormTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`

	Name            string `gorm:"not null;column:name" json:"name"`
	Description     string `gorm:"column:description" json:"description"`
	IsRequired      bool   `gorm:"not null;default:true;column:is_required" json:"is_required"`
	AcceptedFormats string `gorm:"column:accepted_formats" json:"accepted_formats"`
	MaxSizeBytes    int64  `gorm:"column:max_size_bytes" json:"max_size_bytes"`
	DisplayOrder    int    `gorm:"not null;default:0;column:display_order" json:"display_order"`

	ConditionalLogic datatypes.JSON `gorm:"column:conditional_logic;type:jsonb" json:"conditional_logic,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FormRequiredDocument) TableName() string { return "form_required_document" }
