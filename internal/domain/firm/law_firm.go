package firm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LawFirm struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name    string    `gorm:"not null;column:name" json:"name"`
	Address string    `gorm:"column:address" json:"address"`
	Phone   string    `gorm:"column:phone" json:"phone"`
	Email   string    `gorm:"column:email" json:"email"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LawFirm) TableName() string { return "law_firm" }
