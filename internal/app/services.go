package app

import (
	"gorm.io/gorm"

	"github.com/harborlegal/practice-backend/internal/data/txrun"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
	"github.com/harborlegal/practice-backend/internal/platform/sendgrid"
	"github.com/harborlegal/practice-backend/internal/services"
)

type Services struct {
	Audit        services.AuditService
	Notification services.NotificationService
	Validation   services.ValidationService
	Template     services.TemplateService
	ClientForm   services.ClientFormService
	PublicForm   services.PublicFormService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	mailer, err := sendgrid.NewFromEnv(log)
	if err != nil {
		// Notifications persist fine without a mail client; only
		// dispatch is unavailable.
		log.Warn("Could not init SendGrid client", "error", err)
		mailer = nil
	}

	txRunner := txrun.NewGormTxRunner(db)

	audit := services.NewAuditService(db, log, repos.AuditLog)
	notification := services.NewNotificationService(db, log, repos.ClientForm, repos.Notification, repos.LawFirm, mailer)
	validation := services.NewValidationService(db, log, repos.ClientForm, repos.Template, repos.Response, repos.Document)
	template := services.NewTemplateService(db, log, txRunner, repos.Template)
	clientForm := services.NewClientFormService(db, log, txRunner, cfg.FormLinkTTL, repos.User, repos.Client, repos.Template, repos.ClientForm, audit, notification, validation)
	publicForm := services.NewPublicFormService(db, log, txRunner, repos.ClientForm, repos.Template, repos.Response, repos.Document, audit, notification, validation)

	return Services{
		Audit:        audit,
		Notification: notification,
		Validation:   validation,
		Template:     template,
		ClientForm:   clientForm,
		PublicForm:   publicForm,
	}, nil
}
