package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harborlegal/practice-backend/internal/domain/firm"
)

// FormTemplate is a reusable form definition owned by one law firm. Client
// forms reference templates by id only, so later template edits do not
// rewrite forms already in flight.
type FormTemplate struct {
	ID          uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LawFirmID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"law_firm_id"`
	LawFirm     *firm.LawFirm `gorm:"foreignKey:LawFirmID;references:ID" json:"law_firm,omitempty"`
	CreatedByID uuid.UUID    `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *firm.User   `gorm:"foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`

	Name        string `gorm:"not null;column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	FormType    string `gorm:"column:form_type;index" json:"form_type"`
	ProcessType string `gorm:"column:process_type" json:"process_type"`
	Version     int    `gorm:"not null;default:1;column:version" json:"version"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	Sections          []FormSection          `gorm:"foreignKey:TemplateID;references:ID" json:"sections,omitempty"`
	RequiredDocuments []FormRequiredDocument `gorm:"foreignKey:TemplateID;references:ID" json:"required_documents,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FormTemplate) TableName() string { return "form_template" }
