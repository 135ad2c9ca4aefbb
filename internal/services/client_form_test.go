package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repoFirm "github.com/harborlegal/practice-backend/internal/data/repos/firm"
	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	"github.com/harborlegal/practice-backend/internal/data/repos/testutil"
	"github.com/harborlegal/practice-backend/internal/data/txrun"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/domain/forms"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
)

func newClientFormService(t *testing.T, tx *gorm.DB) ClientFormService {
	t.Helper()
	log := testutil.Logger(t)

	userRepo := repoFirm.NewUserRepo(tx, log)
	clientRepo := repoFirm.NewClientRepo(tx, log)
	lawFirmRepo := repoFirm.NewLawFirmRepo(tx, log)
	templateRepo := repoForms.NewTemplateRepo(tx, log)
	clientFormRepo := repoForms.NewClientFormRepo(tx, log)
	responseRepo := repoForms.NewResponseRepo(tx, log)
	documentRepo := repoForms.NewDocumentRepo(tx, log)
	notificationRepo := repoForms.NewNotificationRepo(tx, log)
	auditLogRepo := repoForms.NewAuditLogRepo(tx, log)

	audit := NewAuditService(tx, log, auditLogRepo)
	notification := NewNotificationService(tx, log, clientFormRepo, notificationRepo, lawFirmRepo, nil)
	validation := NewValidationService(tx, log, clientFormRepo, templateRepo, responseRepo, documentRepo)

	return NewClientFormService(tx, log, txrun.NewGormTxRunner(tx), 30*24*time.Hour,
		userRepo, clientRepo, templateRepo, clientFormRepo, audit, notification, validation)
}

func TestClientFormServiceSend(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)

	svc := newClientFormService(t, tx)

	form, err := svc.Send(ctx, &firm.ID, staff.ID, SendFormInput{
		ClientID:   client.ID,
		TemplateID: template.ID,
		SendEmail:  true,
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if form.Status != forms.StatusPending {
		t.Fatalf("new form should be Pending, got %q", form.Status)
	}
	if len(form.AccessToken) != 32 {
		t.Fatalf("expected 32-char access token, got %q", form.AccessToken)
	}
	// Untitled sends inherit the template name.
	if form.Title != template.Name {
		t.Fatalf("title should default to template name, got %q", form.Title)
	}

	var auditCount int64
	if err := tx.Model(&types.FormAuditLog{}).
		Where("client_form_id = ? AND action = ?", form.ID, forms.AuditCreated).
		Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected 1 created audit row, got %d", auditCount)
	}

	var notice types.FormNotification
	if err := tx.Where("client_form_id = ? AND type = ?", form.ID, forms.NotificationFormSent).
		First(&notice).Error; err != nil {
		t.Fatalf("load form_sent notification: %v", err)
	}
	if notice.RecipientEmail != client.Email {
		t.Fatalf("form_sent should go to the client, got %q", notice.RecipientEmail)
	}

	// Unknown client in this firm.
	_, err = svc.Send(ctx, &firm.ID, staff.ID, SendFormInput{
		ClientID:   uuid.New(),
		TemplateID: template.ID,
	})
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("unknown client: expected not_found, got %v", err)
	}

	// Clients from another firm are invisible.
	otherFirm := testutil.SeedLawFirm(t, ctx, tx)
	otherStaff := testutil.SeedUser(t, ctx, tx, otherFirm.ID)
	_, err = svc.Send(ctx, &otherFirm.ID, otherStaff.ID, SendFormInput{
		ClientID:   client.ID,
		TemplateID: template.ID,
	})
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("cross-firm client: expected not_found, got %v", err)
	}
}

func TestClientFormServiceRejectsForeignStaff(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "5555666677778888999900001111bbbb")

	otherFirm := testutil.SeedLawFirm(t, ctx, tx)
	otherStaff := testutil.SeedUser(t, ctx, tx, otherFirm.ID)

	svc := newClientFormService(t, tx)

	// Audit rows are attributed to the acting user, so a user outside
	// the firm cannot act on its behalf, known or not.
	if _, err := svc.Send(ctx, &firm.ID, otherStaff.ID, SendFormInput{
		ClientID:   client.ID,
		TemplateID: template.ID,
	}); !apierr.Is(err, apierr.CodeNotAuthorized) {
		t.Fatalf("foreign staff Send: expected not_authorized, got %v", err)
	}
	if _, err := svc.Send(ctx, &firm.ID, uuid.New(), SendFormInput{
		ClientID:   client.ID,
		TemplateID: template.ID,
	}); !apierr.Is(err, apierr.CodeNotAuthorized) {
		t.Fatalf("unknown staff Send: expected not_authorized, got %v", err)
	}
	if err := svc.SendReminder(ctx, &firm.ID, otherStaff.ID, form.ID); !apierr.Is(err, apierr.CodeNotAuthorized) {
		t.Fatalf("foreign staff SendReminder: expected not_authorized, got %v", err)
	}

	var formCount int64
	if err := tx.Model(&types.ClientForm{}).
		Where("law_firm_id = ?", firm.ID).
		Count(&formCount).Error; err != nil {
		t.Fatalf("count forms: %v", err)
	}
	if formCount != 1 {
		t.Fatalf("rejected sends must not create forms, got %d", formCount)
	}
}

func TestClientFormServiceReminderAndValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "8888999900001111222233334444aaaa")

	svc := newClientFormService(t, tx)

	if err := svc.SendReminder(ctx, &firm.ID, staff.ID, form.ID); err != nil {
		t.Fatalf("SendReminder: %v", err)
	}

	var reminderCount int64
	if err := tx.Model(&types.FormNotification{}).
		Where("client_form_id = ? AND type = ?", form.ID, forms.NotificationReminder).
		Count(&reminderCount).Error; err != nil {
		t.Fatalf("count reminders: %v", err)
	}
	if reminderCount != 1 {
		t.Fatalf("expected 1 reminder notification, got %d", reminderCount)
	}

	result, err := svc.Validation(ctx, &firm.ID, form.ID)
	if err != nil {
		t.Fatalf("Validation: %v", err)
	}
	if result.IsValid {
		t.Fatalf("untouched form cannot be valid")
	}
	if result.CompletionPercentage != 0 {
		t.Fatalf("untouched form should be at 0 percent, got %v", result.CompletionPercentage)
	}

	// Firm scoping applies to staff reads as well.
	otherFirm := testutil.SeedLawFirm(t, ctx, tx)
	if _, err := svc.Validation(ctx, &otherFirm.ID, form.ID); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("cross-firm validation: expected not_found, got %v", err)
	}

	if err := svc.SendReminder(ctx, nil, staff.ID, form.ID); !apierr.Is(err, apierr.CodeNotAuthorized) {
		t.Fatalf("no-firm caller: expected not_authorized, got %v", err)
	}
}
