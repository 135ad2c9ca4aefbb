package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	"github.com/harborlegal/practice-backend/internal/data/txrun"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/domain/forms"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

// RequestMeta is the provenance recorded on anonymous client actions.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type FieldSubmission struct {
	FieldID      uuid.UUID      `json:"field_id" binding:"required"`
	Value        string         `json:"value"`
	ResponseData datatypes.JSON `json:"response_data,omitempty"`
}

type SubmitFormInput struct {
	Responses []FieldSubmission `json:"responses"`
	IsPartial bool              `json:"is_partial"`
}

type RegisterDocumentInput struct {
	RequiredDocumentID *uuid.UUID `json:"required_document_id,omitempty"`
	FileName           string     `json:"file_name" binding:"required"`
	StoragePath        string     `json:"storage_path" binding:"required"`
	SizeBytes          int64      `json:"size_bytes"`
	MimeType           string     `json:"mime_type"`
}

// PublicFormService is the token-authenticated client surface. The access
// token is the sole credential; every operation rejects unknown tokens and
// forms past their expiry regardless of status.
type PublicFormService interface {
	Get(ctx context.Context, accessToken string) (*types.ClientForm, error)
	Submit(ctx context.Context, accessToken string, input SubmitFormInput, meta RequestMeta) (*ValidationResult, error)
	RegisterDocument(ctx context.Context, accessToken string, input RegisterDocumentInput, meta RequestMeta) (*types.ClientFormDocument, error)
}

type publicFormService struct {
	db             *gorm.DB
	log            *logger.Logger
	txRunner       txrun.TxRunner
	clientFormRepo repoForms.ClientFormRepo
	templateRepo   repoForms.TemplateRepo
	responseRepo   repoForms.ResponseRepo
	documentRepo   repoForms.DocumentRepo
	audit          AuditService
	notifications  NotificationService
	validation     ValidationService
}

func NewPublicFormService(
	db *gorm.DB,
	baseLog *logger.Logger,
	txRunner txrun.TxRunner,
	clientFormRepo repoForms.ClientFormRepo,
	templateRepo repoForms.TemplateRepo,
	responseRepo repoForms.ResponseRepo,
	documentRepo repoForms.DocumentRepo,
	audit AuditService,
	notifications NotificationService,
	validation ValidationService,
) PublicFormService {
	return &publicFormService{
		db:             db,
		log:            baseLog.With("service", "PublicFormService"),
		txRunner:       txRunner,
		clientFormRepo: clientFormRepo,
		templateRepo:   templateRepo,
		responseRepo:   responseRepo,
		documentRepo:   documentRepo,
		audit:          audit,
		notifications:  notifications,
		validation:     validation,
	}
}

func (ps *publicFormService) Get(ctx context.Context, accessToken string) (*types.ClientForm, error) {
	form, err := ps.clientFormRepo.GetFullByAccessToken(dbctx.Context{Ctx: ctx}, accessToken)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load form by token: %w", err))
	}
	if form == nil {
		return nil, apierr.NotFound(fmt.Errorf("unknown access token"))
	}
	if form.Expired(time.Now()) {
		return nil, apierr.Expired(fmt.Errorf("form expired at %s", form.ExpiresAt.Format(time.RFC3339)))
	}
	return form, nil
}

// Submit upserts the submitted answers, recomputes the completion
// percentage over the template's required fields, and on a full submission
// at 100 percent flips the form to Completed. All writes, audit rows
// included, share one transaction. The returned snapshot is the full
// validation state whether or not the form completed.
func (ps *publicFormService) Submit(ctx context.Context, accessToken string, input SubmitFormInput, meta RequestMeta) (*ValidationResult, error) {
	var formID uuid.UUID

	err := ps.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		form, err := ps.clientFormRepo.GetByAccessToken(dbc, accessToken)
		if err != nil {
			return fmt.Errorf("load form by token: %w", err)
		}
		if form == nil {
			return apierr.NotFound(fmt.Errorf("unknown access token"))
		}
		if form.Expired(time.Now()) {
			return apierr.Expired(fmt.Errorf("form expired at %s", form.ExpiresAt.Format(time.RFC3339)))
		}
		if form.Status == forms.StatusCompleted {
			return apierr.AlreadyCompleted(fmt.Errorf("form has already been submitted"))
		}
		formID = form.ID

		template, err := ps.templateRepo.GetWithDefinition(dbc, form.TemplateID)
		if err != nil {
			return fmt.Errorf("load template: %w", err)
		}
		if template == nil {
			return apierr.NotFound(fmt.Errorf("template %s not found", form.TemplateID))
		}

		fieldsByID := make(map[uuid.UUID]*types.FormField)
		for si := range template.Sections {
			for fi := range template.Sections[si].Fields {
				field := &template.Sections[si].Fields[fi]
				fieldsByID[field.ID] = field
			}
		}

		for _, submission := range dedupeSubmissions(input.Responses) {
			field, ok := fieldsByID[submission.FieldID]
			if !ok {
				return apierr.InvalidArgument(fmt.Errorf("field %s is not part of this form", submission.FieldID))
			}
			if err := ps.upsertResponse(dbc, form.ID, field, submission, meta); err != nil {
				return err
			}
		}

		responses, err := ps.responseRepo.ListByForm(dbc, form.ID)
		if err != nil {
			return fmt.Errorf("reload responses: %w", err)
		}

		answered := make(map[uuid.UUID]string, len(responses))
		for _, r := range responses {
			answered[r.FieldID] = r.Value
		}
		totalRequired, completed := 0, 0
		for _, field := range fieldsByID {
			if !field.IsRequired {
				continue
			}
			totalRequired++
			if value, ok := answered[field.ID]; ok && !isBlank(value) {
				completed++
			}
		}
		pct := completionPercentage(totalRequired, completed)

		updates := map[string]interface{}{
			"completion_percentage": pct,
			"status":                forms.StatusInProgress,
		}

		if !input.IsPartial && pct >= 100 {
			now := time.Now()
			updates["status"] = forms.StatusCompleted
			updates["submitted_at"] = now

			if err := ps.audit.Record(dbc, AuditEntry{
				ClientFormID: form.ID,
				Action:       forms.AuditSubmitted,
				IPAddress:    meta.IPAddress,
				UserAgent:    meta.UserAgent,
			}); err != nil {
				return err
			}
			if _, err := ps.notifications.Notify(dbc, form.ID, forms.NotificationCompletion, "", ""); err != nil {
				return err
			}
		}

		return ps.clientFormRepo.UpdateFields(dbc, form.ID, updates)
	})
	if err != nil {
		ae := apierr.From(err)
		if ae.Code == apierr.CodeInternal {
			ps.log.Error("Submit failed", "error", err)
		}
		return nil, ae
	}

	return ps.validation.Validate(ctx, formID)
}

// upsertResponse keeps exactly one row per (form, field) and writes one
// field_updated audit entry per field touched, carrying old and new value.
// A concurrent insert losing the unique-index race is re-read and retried
// as an update once; anything left is surfaced as a retryable conflict.
// dedupeSubmissions collapses repeats of the same field within one request,
// keeping the last value, so each field touched gets exactly one write and
// one audit entry per request.
func dedupeSubmissions(submissions []FieldSubmission) []FieldSubmission {
	deduped := make([]FieldSubmission, 0, len(submissions))
	index := make(map[uuid.UUID]int, len(submissions))
	for _, submission := range submissions {
		if at, seen := index[submission.FieldID]; seen {
			deduped[at] = submission
			continue
		}
		index[submission.FieldID] = len(deduped)
		deduped = append(deduped, submission)
	}
	return deduped
}

func (ps *publicFormService) upsertResponse(dbc dbctx.Context, formID uuid.UUID, field *types.FormField, submission FieldSubmission, meta RequestMeta) error {
	existing, err := ps.responseRepo.GetByFormAndField(dbc, formID, field.ID)
	if err != nil {
		return fmt.Errorf("load response for field %s: %w", field.Name, err)
	}

	if existing == nil {
		created := &types.FormResponse{
			ID:           uuid.New(),
			ClientFormID: formID,
			FieldID:      field.ID,
			Value:        submission.Value,
			ResponseData: submission.ResponseData,
		}
		// The insert runs under its own savepoint so a unique-index hit
		// does not abort the enclosing transaction.
		createErr := dbc.Tx.Transaction(func(inner *gorm.DB) error {
			_, err := ps.responseRepo.Create(dbctx.Context{Ctx: dbc.Ctx, Tx: inner}, created)
			return err
		})
		if createErr != nil {
			if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("create response for field %s: %w", field.Name, createErr)
			}
			existing, err = ps.responseRepo.GetByFormAndField(dbc, formID, field.ID)
			if err != nil {
				return fmt.Errorf("re-read response for field %s: %w", field.Name, err)
			}
			if existing == nil {
				return apierr.Conflict(fmt.Errorf("concurrent submission on field %s", field.Name))
			}
		} else {
			return ps.audit.Record(dbc, AuditEntry{
				ClientFormID: formID,
				Action:       forms.AuditFieldUpdated,
				FieldName:    &field.Name,
				OldValue:     nil,
				NewValue:     &submission.Value,
				IPAddress:    meta.IPAddress,
				UserAgent:    meta.UserAgent,
			})
		}
	}

	oldValue := existing.Value
	existing.Value = submission.Value
	if len(submission.ResponseData) > 0 {
		existing.ResponseData = submission.ResponseData
	}
	if err := ps.responseRepo.Update(dbc, existing); err != nil {
		return fmt.Errorf("update response for field %s: %w", field.Name, err)
	}

	return ps.audit.Record(dbc, AuditEntry{
		ClientFormID: formID,
		Action:       forms.AuditFieldUpdated,
		FieldName:    &field.Name,
		OldValue:     &oldValue,
		NewValue:     &submission.Value,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
	})
}

func (ps *publicFormService) RegisterDocument(ctx context.Context, accessToken string, input RegisterDocumentInput, meta RequestMeta) (*types.ClientFormDocument, error) {
	var document *types.ClientFormDocument

	err := ps.txRunner.InTx(ctx, func(dbc dbctx.Context) error {
		form, err := ps.clientFormRepo.GetByAccessToken(dbc, accessToken)
		if err != nil {
			return fmt.Errorf("load form by token: %w", err)
		}
		if form == nil {
			return apierr.NotFound(fmt.Errorf("unknown access token"))
		}
		if form.Expired(time.Now()) {
			return apierr.Expired(fmt.Errorf("form expired at %s", form.ExpiresAt.Format(time.RFC3339)))
		}

		document = &types.ClientFormDocument{
			ID:                 uuid.New(),
			ClientFormID:       form.ID,
			RequiredDocumentID: input.RequiredDocumentID,
			FileName:           input.FileName,
			StoragePath:        input.StoragePath,
			SizeBytes:          input.SizeBytes,
			MimeType:           input.MimeType,
			Status:             "uploaded",
		}
		if _, err := ps.documentRepo.Create(dbc, document); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		return ps.audit.Record(dbc, AuditEntry{
			ClientFormID: form.ID,
			Action:       forms.AuditDocumentUploaded,
			NewValue:     &document.FileName,
			IPAddress:    meta.IPAddress,
			UserAgent:    meta.UserAgent,
		})
	})
	if err != nil {
		return nil, apierr.From(err)
	}

	return document, nil
}
