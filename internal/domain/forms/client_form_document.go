package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientFormDocument records an uploaded file's metadata. Binary storage is
// an external collaborator; only the storage path is kept here.
// RequiredDocumentID ties the upload to a template slot when present.
type ClientFormDocument struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientFormID uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_form_id"`
	ClientForm   *ClientForm `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientFormID;references:ID" json:"client_form,omitempty"`

	RequiredDocumentID *uuid.UUID            `gorm:"type:uuid;index;column:required_document_id" json:"required_document_id,omitempty"`
	RequiredDocument   *FormRequiredDocument `gorm:"foreignKey:RequiredDocumentID;references:ID" json:"required_document,omitempty"`

	FileName    string `gorm:"not null;column:file_name" json:"file_name"`
	StoragePath string `gorm:"not null;column:storage_path" json:"storage_path"`
	SizeBytes   int64  `gorm:"column:size_bytes" json:"size_bytes"`
	MimeType    string `gorm:"column:mime_type" json:"mime_type"`
	Status      string `gorm:"not null;default:'uploaded';column:status" json:"status"`

	IsVerified   bool       `gorm:"not null;default:false;column:is_verified" json:"is_verified"`
	VerifiedAt   *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	VerifiedByID *uuid.UUID `gorm:"type:uuid;column:verified_by_id" json:"verified_by_id,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ClientFormDocument) TableName() string { return "client_form_document" }
