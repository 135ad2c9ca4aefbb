package db

import (
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// Tenancy
		&types.LawFirm{},
		&types.User{},
		&types.Client{},

		// Form templates
		&types.FormTemplate{},
		&types.FormSection{},
		&types.FormField{},
		&types.FormRequiredDocument{},

		// Client-facing form instances
		&types.ClientForm{},
		&types.FormResponse{},
		&types.ClientFormDocument{},

		// Side channels
		&types.FormNotification{},
		&types.FormAuditLog{},
	)
}
