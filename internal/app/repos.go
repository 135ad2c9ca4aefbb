package app

import (
	"gorm.io/gorm"

	repoFirm "github.com/harborlegal/practice-backend/internal/data/repos/firm"
	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type Repos struct {
	LawFirm repoFirm.LawFirmRepo
	User    repoFirm.UserRepo
	Client  repoFirm.ClientRepo

	Template     repoForms.TemplateRepo
	ClientForm   repoForms.ClientFormRepo
	Response     repoForms.ResponseRepo
	Document     repoForms.DocumentRepo
	Notification repoForms.NotificationRepo
	AuditLog     repoForms.AuditLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		LawFirm: repoFirm.NewLawFirmRepo(db, log),
		User:    repoFirm.NewUserRepo(db, log),
		Client:  repoFirm.NewClientRepo(db, log),

		Template:     repoForms.NewTemplateRepo(db, log),
		ClientForm:   repoForms.NewClientFormRepo(db, log),
		Response:     repoForms.NewResponseRepo(db, log),
		Document:     repoForms.NewDocumentRepo(db, log),
		Notification: repoForms.NewNotificationRepo(db, log),
		AuditLog:     repoForms.NewAuditLogRepo(db, log),
	}
}
