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

func newPublicFormService(t *testing.T, tx *gorm.DB) PublicFormService {
	t.Helper()
	log := testutil.Logger(t)

	clientFormRepo := repoForms.NewClientFormRepo(tx, log)
	templateRepo := repoForms.NewTemplateRepo(tx, log)
	responseRepo := repoForms.NewResponseRepo(tx, log)
	documentRepo := repoForms.NewDocumentRepo(tx, log)
	notificationRepo := repoForms.NewNotificationRepo(tx, log)
	auditLogRepo := repoForms.NewAuditLogRepo(tx, log)
	lawFirmRepo := repoFirm.NewLawFirmRepo(tx, log)

	audit := NewAuditService(tx, log, auditLogRepo)
	notification := NewNotificationService(tx, log, clientFormRepo, notificationRepo, lawFirmRepo, nil)
	validation := NewValidationService(tx, log, clientFormRepo, templateRepo, responseRepo, documentRepo)

	return NewPublicFormService(tx, log, txrun.NewGormTxRunner(tx),
		clientFormRepo, templateRepo, responseRepo, documentRepo,
		audit, notification, validation)
}

func TestPublicFormSubmitLifecycle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "feedfacefeedfacefeedfacefeedface")

	svc := newPublicFormService(t, tx)
	meta := RequestMeta{IPAddress: "203.0.113.7", UserAgent: "test-agent"}
	fields := template.Sections[0].Fields

	// Partial submission with one of two required fields: 50 percent,
	// stays open.
	result, err := svc.Submit(ctx, form.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{{FieldID: fields[0].ID, Value: "Jane Doe"}},
		IsPartial: true,
	}, meta)
	if err != nil {
		t.Fatalf("partial submit: %v", err)
	}
	if result.CompletionPercentage != 50 {
		t.Fatalf("expected 50 percent, got %v", result.CompletionPercentage)
	}
	if result.IsValid {
		t.Fatalf("form cannot be valid with a missing field and document")
	}

	var reloaded types.ClientForm
	if err := tx.First(&reloaded, "id = ?", form.ID).Error; err != nil {
		t.Fatalf("reload form: %v", err)
	}
	if reloaded.Status != forms.StatusInProgress {
		t.Fatalf("partial submit should leave status InProgress, got %q", reloaded.Status)
	}
	if reloaded.SubmittedAt != nil {
		t.Fatalf("partial submit must not stamp SubmittedAt")
	}

	// Resubmitting the same field updates in place: still one response
	// row, but a second audit entry carrying the old value.
	if _, err := svc.Submit(ctx, form.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{{FieldID: fields[0].ID, Value: "Jane A. Doe"}},
		IsPartial: true,
	}, meta); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	var responseCount int64
	if err := tx.Model(&types.FormResponse{}).
		Where("client_form_id = ? AND field_id = ?", form.ID, fields[0].ID).
		Count(&responseCount).Error; err != nil {
		t.Fatalf("count responses: %v", err)
	}
	if responseCount != 1 {
		t.Fatalf("expected 1 response row after resubmit, got %d", responseCount)
	}

	var fieldAudits []types.FormAuditLog
	if err := tx.Where("client_form_id = ? AND action = ?", form.ID, forms.AuditFieldUpdated).
		Order("created_at ASC").Find(&fieldAudits).Error; err != nil {
		t.Fatalf("load audit rows: %v", err)
	}
	if len(fieldAudits) != 2 {
		t.Fatalf("expected 2 field_updated audit rows, got %d", len(fieldAudits))
	}
	if fieldAudits[0].OldValue != nil {
		t.Fatalf("first write should have nil old value")
	}
	if fieldAudits[1].OldValue == nil || *fieldAudits[1].OldValue != "Jane Doe" {
		t.Fatalf("second write should carry the previous value, got %+v", fieldAudits[1].OldValue)
	}

	// Full submission with every required field completes the form even
	// though the required document is still missing.
	result, err = svc.Submit(ctx, form.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{{FieldID: fields[1].ID, Value: "1990-01-01"}},
		IsPartial: false,
	}, meta)
	if err != nil {
		t.Fatalf("full submit: %v", err)
	}
	if result.CompletionPercentage != 100 {
		t.Fatalf("expected 100 percent, got %v", result.CompletionPercentage)
	}
	if result.IsValid {
		t.Fatalf("missing document must keep the form invalid after completion")
	}
	if len(result.MissingRequiredDocuments) != 1 {
		t.Fatalf("expected 1 missing document, got %v", result.MissingRequiredDocuments)
	}

	if err := tx.First(&reloaded, "id = ?", form.ID).Error; err != nil {
		t.Fatalf("reload form: %v", err)
	}
	if reloaded.Status != forms.StatusCompleted {
		t.Fatalf("expected Completed, got %q", reloaded.Status)
	}
	if reloaded.SubmittedAt == nil {
		t.Fatalf("completion must stamp SubmittedAt")
	}

	// Completion notifies the firm inbox, not the client.
	var notices []types.FormNotification
	if err := tx.Where("client_form_id = ? AND type = ?", form.ID, forms.NotificationCompletion).
		Find(&notices).Error; err != nil {
		t.Fatalf("load notifications: %v", err)
	}
	if len(notices) != 1 {
		t.Fatalf("expected 1 completion notification, got %d", len(notices))
	}
	if notices[0].RecipientEmail != firm.Email {
		t.Fatalf("completion notice should go to the firm, got %q", notices[0].RecipientEmail)
	}
	if notices[0].Status != forms.NotificationStatusPending {
		t.Fatalf("notification should persist as pending, got %q", notices[0].Status)
	}

	// A completed form rejects further submissions.
	_, err = svc.Submit(ctx, form.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{{FieldID: fields[0].ID, Value: "again"}},
	}, meta)
	if !apierr.Is(err, apierr.CodeAlreadyCompleted) {
		t.Fatalf("expected already_completed, got %v", err)
	}
}

func TestPublicFormUnknownFieldRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "0123456789abcdef0123456789abcdef")

	otherTemplate := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	foreignField := otherTemplate.Sections[0].Fields[0]

	svc := newPublicFormService(t, tx)
	_, err := svc.Submit(ctx, form.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{{FieldID: foreignField.ID, Value: "x"}},
		IsPartial: true,
	}, RequestMeta{})
	if !apierr.Is(err, apierr.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument for a foreign field, got %v", err)
	}
}

func TestPublicFormTokenGates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)

	svc := newPublicFormService(t, tx)

	if _, err := svc.Get(ctx, "ffffffffffffffffffffffffffffffff"); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("unknown token: expected not_found, got %v", err)
	}

	// Expiry rejects regardless of status.
	expired := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "deadbeefdeadbeefdeadbeefdeadbeef")
	past := time.Now().Add(-time.Hour)
	if err := tx.Model(&types.ClientForm{}).Where("id = ?", expired.ID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("expire form: %v", err)
	}

	if _, err := svc.Get(ctx, expired.AccessToken); !apierr.Is(err, apierr.CodeExpired) {
		t.Fatalf("expired form: expected expired, got %v", err)
	}
	_, err := svc.Submit(ctx, expired.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{{FieldID: template.Sections[0].Fields[0].ID, Value: "x"}},
	}, RequestMeta{})
	if !apierr.Is(err, apierr.CodeExpired) {
		t.Fatalf("expired submit: expected expired, got %v", err)
	}
}

func TestPublicFormRegisterDocument(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "cafebabecafebabecafebabecafebabe")

	svc := newPublicFormService(t, tx)

	slotID := template.RequiredDocuments[0].ID
	doc, err := svc.RegisterDocument(ctx, form.AccessToken, RegisterDocumentInput{
		RequiredDocumentID: &slotID,
		FileName:           "passport.pdf",
		StoragePath:        "uploads/passport.pdf",
		SizeBytes:          1024,
		MimeType:           "application/pdf",
	}, RequestMeta{IPAddress: "203.0.113.7"})
	if err != nil {
		t.Fatalf("RegisterDocument: %v", err)
	}
	if doc.ID == uuid.Nil {
		t.Fatalf("document not persisted: %+v", doc)
	}

	var auditCount int64
	if err := tx.Model(&types.FormAuditLog{}).
		Where("client_form_id = ? AND action = ?", form.ID, forms.AuditDocumentUploaded).
		Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected 1 document_uploaded audit row, got %d", auditCount)
	}

	// The upload fills the only required slot.
	validation := NewValidationService(tx, testutil.Logger(t),
		repoForms.NewClientFormRepo(tx, testutil.Logger(t)),
		repoForms.NewTemplateRepo(tx, testutil.Logger(t)),
		repoForms.NewResponseRepo(tx, testutil.Logger(t)),
		repoForms.NewDocumentRepo(tx, testutil.Logger(t)))
	result, err := validation.Validate(ctx, form.ID)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(result.MissingRequiredDocuments) != 0 {
		t.Fatalf("document slot should be satisfied, missing: %v", result.MissingRequiredDocuments)
	}
}

func TestPublicFormSubmitRepeatedField(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	firm := testutil.SeedLawFirm(t, ctx, tx)
	staff := testutil.SeedUser(t, ctx, tx, firm.ID)
	client := testutil.SeedClient(t, ctx, tx, firm.ID)
	template := testutil.SeedTemplate(t, ctx, tx, firm.ID, staff.ID)
	form := testutil.SeedClientForm(t, ctx, tx, firm.ID, client.ID, template.ID, "0123456789abcdef0123456789abcdef")

	svc := newPublicFormService(t, tx)
	fields := template.Sections[0].Fields

	// Listing the same field twice in one request keeps only the last
	// value: one response row, one audit entry.
	if _, err := svc.Submit(ctx, form.AccessToken, SubmitFormInput{
		Responses: []FieldSubmission{
			{FieldID: fields[0].ID, Value: "Jane"},
			{FieldID: fields[0].ID, Value: "Jane Doe"},
		},
		IsPartial: true,
	}, RequestMeta{}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var responses []types.FormResponse
	if err := tx.Where("client_form_id = ? AND field_id = ?", form.ID, fields[0].ID).
		Find(&responses).Error; err != nil {
		t.Fatalf("load responses: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 response row, got %d", len(responses))
	}
	if responses[0].Value != "Jane Doe" {
		t.Fatalf("last value should win, got %q", responses[0].Value)
	}

	var auditCount int64
	if err := tx.Model(&types.FormAuditLog{}).
		Where("client_form_id = ? AND action = ?", form.ID, forms.AuditFieldUpdated).
		Count(&auditCount).Error; err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	if auditCount != 1 {
		t.Fatalf("expected 1 field_updated audit row per field per request, got %d", auditCount)
	}
}
