package firm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a person the firm represents. Email may be empty; notification
// creation silently skips clients without one.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LawFirmID uuid.UUID `gorm:"type:uuid;not null;index" json:"law_firm_id"`
	LawFirm   *LawFirm  `gorm:"foreignKey:LawFirmID;references:ID" json:"law_firm,omitempty"`

	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
	Email     string `gorm:"column:email" json:"email"`
	Phone     string `gorm:"column:phone" json:"phone"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Client) TableName() string { return "client" }
