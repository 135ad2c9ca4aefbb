package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormField is one input in a section. Name is the business key for a field
// within a client form's responses. FieldType is a free-form tag
// (text/email/date/select/checkbox/file/...). ValidationRules, Options and
// ConditionalLogic are stored opaque and passed through to the client UI.
type FormField struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID uuid.UUID    `gorm:"type:uuid;not null;index" json:"section_id"`
	Section   *FormSection `gorm:"constraint:OnDelete:CASCADE;foreignKey:SectionID;references:ID" json:"section,omitempty"`

	Name         string `gorm:"not null;column:name" json:"name"`
	Label        string `gorm:"not null;column:label" json:"label"`
	FieldType    string `gorm:"not null;column:field_type" json:"field_type"`
	DisplayOrder int    `gorm:"not null;default:0;column:display_order" json:"display_order"`
	IsRequired   bool   `gorm:"not null;default:false;column:is_required" json:"is_required"`
	Placeholder  string `gorm:"column:placeholder" json:"placeholder"`

	ValidationRules  datatypes.JSON `gorm:"column:validation_rules;type:jsonb" json:"validation_rules,omitempty"`
	Options          datatypes.JSON `gorm:"column:options;type:jsonb" json:"options,omitempty"`
	ConditionalLogic datatypes.JSON `gorm:"column:conditional_logic;type:jsonb" json:"conditional_logic,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FormField) TableName() string { return "form_field" }
