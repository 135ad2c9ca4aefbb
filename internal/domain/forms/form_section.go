package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormSection groups fields inside a template. DependsOnSectionID is an
// informational back-reference; no ordering is enforced from it.
// ConditionalLogic is an opaque blob interpreted by the presentation layer.
type FormSection struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TemplateID uuid.UUID     `gorm:"type:uuid;not null;index" json:"template_id"`
	Template   *FormTemplate `gorm:"constraint:OnDelete:CASCADE;foreignKey:TemplateID;references:ID" json:"template,omitempty"`

	Title        string `gorm:"not null;column:title" json:"title"`
	Description  string `gorm:"column:description" json:"description"`
	DisplayOrder int    `gorm:"not null;default:0;column:display_order" json:"display_order"`
	IsRequired   bool   `gorm:"not null;default:false;column:is_required" json:"is_required"`

	DependsOnSectionID *uuid.UUID     `gorm:"type:uuid;column:depends_on_section_id" json:"depends_on_section_id,omitempty"`
	ConditionalLogic   datatypes.JSON `gorm:"column:conditional_logic;type:jsonb" json:"conditional_logic,omitempty"`

	Fields []FormField `gorm:"foreignKey:SectionID;references:ID" json:"fields,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FormSection) TableName() string { return "form_section" }
