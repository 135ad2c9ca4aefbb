package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repoFirm "github.com/harborlegal/practice-backend/internal/data/repos/firm"
	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/domain/forms"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
	"github.com/harborlegal/practice-backend/internal/platform/sendgrid"
)

// NotificationService persists outbound notifications. Notify never sends
// mail; Dispatch hands a pending row to the mail client on an explicit
// staff request. A form or recipient that cannot be resolved is a silent
// skip, not an error.
type NotificationService interface {
	Notify(dbc dbctx.Context, clientFormID uuid.UUID, notificationType, customSubject, customMessage string) (*types.FormNotification, error)
	Dispatch(ctx context.Context, lawFirmID *uuid.UUID, notificationID uuid.UUID) (*types.FormNotification, error)
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	clientFormRepo   repoForms.ClientFormRepo
	notificationRepo repoForms.NotificationRepo
	lawFirmRepo      repoFirm.LawFirmRepo
	mailer           sendgrid.Client
}

func NewNotificationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientFormRepo repoForms.ClientFormRepo,
	notificationRepo repoForms.NotificationRepo,
	lawFirmRepo repoFirm.LawFirmRepo,
	mailer sendgrid.Client,
) NotificationService {
	return &notificationService{
		db:               db,
		log:              baseLog.With("service", "NotificationService"),
		clientFormRepo:   clientFormRepo,
		notificationRepo: notificationRepo,
		lawFirmRepo:      lawFirmRepo,
		mailer:           mailer,
	}
}

type notificationContent struct {
	Subject string
	Message string
}

// Default content per type. The completion notice goes to the firm inbox,
// everything else to the client.
var defaultNotificationContent = map[string]notificationContent{
	forms.NotificationFormSent: {
		Subject: "A form is ready for you to complete",
		Message: "Your legal team has sent you a form to fill out. Open the secure link in this email to get started.",
	},
	forms.NotificationCompletion: {
		Subject: "A client form has been submitted",
		Message: "A client has completed and submitted their form. It is ready for review.",
	},
	forms.NotificationReminder: {
		Subject: "Reminder: your form is waiting",
		Message: "This is a friendly reminder that your legal team is waiting on a form you have not finished yet.",
	},
	forms.NotificationReviewRequest: {
		Subject: "Your form is under review",
		Message: "Your submitted form is being reviewed. We will let you know if anything else is needed.",
	},
	forms.NotificationApproved: {
		Subject: "Your form has been approved",
		Message: "Good news: your submitted form has been reviewed and approved.",
	},
}

func contentFor(notificationType, customSubject, customMessage string) notificationContent {
	content, ok := defaultNotificationContent[notificationType]
	if !ok {
		content = notificationContent{
			Subject: "Update on your form",
			Message: "There has been an update on a form associated with your case.",
		}
	}
	if strings.TrimSpace(customSubject) != "" {
		content.Subject = customSubject
	}
	if strings.TrimSpace(customMessage) != "" {
		content.Message = customMessage
	}
	return content
}

func (ns *notificationService) Notify(dbc dbctx.Context, clientFormID uuid.UUID, notificationType, customSubject, customMessage string) (*types.FormNotification, error) {
	form, err := ns.clientFormRepo.GetByID(dbc, clientFormID)
	if err != nil {
		return nil, fmt.Errorf("load client form: %w", err)
	}
	if form == nil {
		ns.log.Debug("Notify skipped, client form not found", "client_form_id", clientFormID)
		return nil, nil
	}

	recipient := ns.resolveRecipient(dbc, form, notificationType)
	if recipient == "" {
		ns.log.Debug("Notify skipped, no recipient email",
			"client_form_id", clientFormID,
			"type", notificationType,
		)
		return nil, nil
	}

	content := contentFor(notificationType, customSubject, customMessage)

	row := &types.FormNotification{
		ID:             uuid.New(),
		ClientFormID:   form.ID,
		Type:           notificationType,
		RecipientEmail: recipient,
		Subject:        content.Subject,
		Message:        content.Message,
		Status:         forms.NotificationStatusPending,
	}

	if _, err := ns.notificationRepo.Create(dbc, row); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}
	return row, nil
}

// resolveRecipient picks the firm inbox for the post-submission completion
// notice and the client's email for everything else.
func (ns *notificationService) resolveRecipient(dbc dbctx.Context, form *types.ClientForm, notificationType string) string {
	if notificationType == forms.NotificationCompletion {
		lawFirm, err := ns.lawFirmRepo.GetByID(dbc, form.LawFirmID)
		if err != nil {
			ns.log.Warn("Failed to load law firm for completion notice", "error", err, "law_firm_id", form.LawFirmID)
			return ""
		}
		if lawFirm == nil {
			return ""
		}
		return strings.TrimSpace(lawFirm.Email)
	}
	if form.Client == nil {
		return ""
	}
	return strings.TrimSpace(form.Client.Email)
}

// Dispatch sends a pending notification through the mail client and stamps
// the outcome. The row must belong to the caller's firm; anything already
// dispatched is a conflict, so SentAt is written at most once.
func (ns *notificationService) Dispatch(ctx context.Context, lawFirmID *uuid.UUID, notificationID uuid.UUID) (*types.FormNotification, error) {
	if lawFirmID == nil {
		return nil, apierr.NotAuthorized(fmt.Errorf("caller has no law firm association"))
	}

	dbc := dbctx.Context{Ctx: ctx}

	row, err := ns.notificationRepo.GetByID(dbc, notificationID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load notification: %w", err))
	}
	if row == nil {
		return nil, apierr.NotFound(fmt.Errorf("notification %s not found", notificationID))
	}

	form, err := ns.clientFormRepo.GetByID(dbc, row.ClientFormID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load client form: %w", err))
	}
	if form == nil || form.LawFirmID != *lawFirmID {
		return nil, apierr.NotFound(fmt.Errorf("notification %s not found in firm", notificationID))
	}

	if row.Status != forms.NotificationStatusPending {
		return nil, apierr.Conflict(fmt.Errorf("notification %s is %s, not pending", notificationID, row.Status))
	}
	if ns.mailer == nil {
		return nil, apierr.Internal(fmt.Errorf("no mail client configured"))
	}

	_, sendErr := ns.mailer.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: row.RecipientEmail}},
		Subject: row.Subject,
		Text:    row.Message,
	})

	if sendErr != nil {
		if err := ns.notificationRepo.UpdateFields(dbc, row.ID, map[string]interface{}{
			"status": forms.NotificationStatusFailed,
		}); err != nil {
			ns.log.Error("Failed to mark notification failed", "error", err, "notification_id", row.ID)
		}
		return nil, apierr.Internal(fmt.Errorf("send notification mail: %w", sendErr))
	}

	now := time.Now()
	if err := ns.notificationRepo.UpdateFields(dbc, row.ID, map[string]interface{}{
		"status":  forms.NotificationStatusSent,
		"sent_at": now,
	}); err != nil {
		return nil, apierr.Internal(fmt.Errorf("mark notification sent: %w", err))
	}

	row.Status = forms.NotificationStatusSent
	row.SentAt = &now
	return row, nil
}
