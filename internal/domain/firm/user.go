package firm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff member. LawFirmID is nullable: a user without a firm
// association is rejected by every firm-scoped operation.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LawFirmID *uuid.UUID `gorm:"type:uuid;index" json:"law_firm_id,omitempty"`
	LawFirm   *LawFirm   `gorm:"foreignKey:LawFirmID;references:ID" json:"law_firm,omitempty"`

	Email     string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
	Role      string `gorm:"not null;default:'staff';column:role" json:"role"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
