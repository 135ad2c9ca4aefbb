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
	"github.com/harborlegal/practice-backend/internal/data/txrun"
	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/domain/forms"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/apierr"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
	"github.com/harborlegal/practice-backend/internal/platform/token"
)

type SendFormInput struct {
	ClientID     uuid.UUID  `json:"client_id" binding:"required"`
	TemplateID   uuid.UUID  `json:"template_id" binding:"required"`
	Title        string     `json:"title"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Instructions string     `json:"instructions"`
	SendEmail    bool       `json:"send_email"`
}

// ClientFormService covers the staff-side lifecycle: issuing a template to
// a client behind a fresh access token, and nudging the client later.
type ClientFormService interface {
	Send(ctx context.Context, lawFirmID *uuid.UUID, staffID uuid.UUID, input SendFormInput) (*types.ClientForm, error)
	SendReminder(ctx context.Context, lawFirmID *uuid.UUID, staffID, clientFormID uuid.UUID) error
	Validation(ctx context.Context, lawFirmID *uuid.UUID, clientFormID uuid.UUID) (*ValidationResult, error)
}

type clientFormService struct {
	db             *gorm.DB
	log            *logger.Logger
	txRunner       txrun.TxRunner
	defaultLinkTTL time.Duration
	userRepo       repoFirm.UserRepo
	clientRepo     repoFirm.ClientRepo
	templateRepo   repoForms.TemplateRepo
	clientFormRepo repoForms.ClientFormRepo
	audit          AuditService
	notifications  NotificationService
	validation     ValidationService
}

func NewClientFormService(
	db *gorm.DB,
	baseLog *logger.Logger,
	txRunner txrun.TxRunner,
	defaultLinkTTL time.Duration,
	userRepo repoFirm.UserRepo,
	clientRepo repoFirm.ClientRepo,
	templateRepo repoForms.TemplateRepo,
	clientFormRepo repoForms.ClientFormRepo,
	audit AuditService,
	notifications NotificationService,
	validation ValidationService,
) ClientFormService {
	return &clientFormService{
		db:             db,
		log:            baseLog.With("service", "ClientFormService"),
		txRunner:       txRunner,
		defaultLinkTTL: defaultLinkTTL,
		userRepo:       userRepo,
		clientRepo:     clientRepo,
		templateRepo:   templateRepo,
		clientFormRepo: clientFormRepo,
		audit:          audit,
		notifications:  notifications,
		validation:     validation,
	}
}

// requireStaff confirms the acting user really is a member of the firm
// before any audit row gets attributed to them.
func (cs *clientFormService) requireStaff(dbc dbctx.Context, lawFirmID, staffID uuid.UUID) error {
	staff, err := cs.userRepo.GetByID(dbc, staffID)
	if err != nil {
		return apierr.Internal(fmt.Errorf("load staff user: %w", err))
	}
	if staff == nil || staff.LawFirmID == nil || *staff.LawFirmID != lawFirmID {
		return apierr.NotAuthorized(fmt.Errorf("user %s is not staff of this firm", staffID))
	}
	return nil
}

func (cs *clientFormService) Send(ctx context.Context, lawFirmID *uuid.UUID, staffID uuid.UUID, input SendFormInput) (*types.ClientForm, error) {
	if lawFirmID == nil {
		return nil, apierr.NotAuthorized(fmt.Errorf("caller has no law firm association"))
	}

	dbc := dbctx.Context{Ctx: ctx}

	if err := cs.requireStaff(dbc, *lawFirmID, staffID); err != nil {
		return nil, err
	}

	client, err := cs.clientRepo.GetByIDForFirm(dbc, input.ClientID, *lawFirmID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load client: %w", err))
	}
	if client == nil {
		return nil, apierr.NotFound(fmt.Errorf("client %s not found in firm", input.ClientID))
	}

	template, err := cs.templateRepo.GetByIDForFirm(dbc, input.TemplateID, *lawFirmID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load template: %w", err))
	}
	if template == nil {
		return nil, apierr.NotFound(fmt.Errorf("template %s not found in firm", input.TemplateID))
	}

	accessToken, err := token.New()
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("mint access token: %w", err))
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = template.Name
	}

	expiresAt := input.ExpiresAt
	if expiresAt == nil && cs.defaultLinkTTL > 0 {
		t := time.Now().Add(cs.defaultLinkTTL)
		expiresAt = &t
	}

	form := &types.ClientForm{
		ID:           uuid.New(),
		LawFirmID:    *lawFirmID,
		ClientID:     client.ID,
		TemplateID:   template.ID,
		Title:        title,
		Status:       forms.StatusPending,
		AccessToken:  accessToken,
		Instructions: input.Instructions,
		ExpiresAt:    expiresAt,
	}

	err = cs.txRunner.InTx(ctx, func(txc dbctx.Context) error {
		if _, err := cs.clientFormRepo.Create(txc, form); err != nil {
			return fmt.Errorf("create client form: %w", err)
		}

		if err := cs.audit.Record(txc, AuditEntry{
			ClientFormID: form.ID,
			UserID:       &staffID,
			Action:       forms.AuditCreated,
		}); err != nil {
			return err
		}

		if input.SendEmail {
			if _, err := cs.notifications.Notify(txc, form.ID, forms.NotificationFormSent, "", ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		cs.log.Error("Send form failed", "error", err, "client_id", input.ClientID, "template_id", input.TemplateID)
		return nil, apierr.From(err)
	}

	return form, nil
}

func (cs *clientFormService) SendReminder(ctx context.Context, lawFirmID *uuid.UUID, staffID, clientFormID uuid.UUID) error {
	if lawFirmID == nil {
		return apierr.NotAuthorized(fmt.Errorf("caller has no law firm association"))
	}

	if err := cs.requireStaff(dbctx.Context{Ctx: ctx}, *lawFirmID, staffID); err != nil {
		return err
	}

	form, err := cs.clientFormRepo.GetByIDForFirm(dbctx.Context{Ctx: ctx}, clientFormID, *lawFirmID)
	if err != nil {
		return apierr.Internal(fmt.Errorf("load client form: %w", err))
	}
	if form == nil {
		return apierr.NotFound(fmt.Errorf("client form %s not found in firm", clientFormID))
	}

	err = cs.txRunner.InTx(ctx, func(txc dbctx.Context) error {
		if _, err := cs.notifications.Notify(txc, form.ID, forms.NotificationReminder, "", ""); err != nil {
			return err
		}
		return cs.audit.Record(txc, AuditEntry{
			ClientFormID: form.ID,
			UserID:       &staffID,
			Action:       forms.AuditReminderSent,
		})
	})
	if err != nil {
		cs.log.Error("Send reminder failed", "error", err, "client_form_id", clientFormID)
		return apierr.From(err)
	}
	return nil
}

// Validation reports the completion state of a firm's form without
// mutating anything. Staff use it ahead of review.
func (cs *clientFormService) Validation(ctx context.Context, lawFirmID *uuid.UUID, clientFormID uuid.UUID) (*ValidationResult, error) {
	if lawFirmID == nil {
		return nil, apierr.NotAuthorized(fmt.Errorf("caller has no law firm association"))
	}

	form, err := cs.clientFormRepo.GetByIDForFirm(dbctx.Context{Ctx: ctx}, clientFormID, *lawFirmID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load client form: %w", err))
	}
	if form == nil {
		return nil, apierr.NotFound(fmt.Errorf("client form %s not found in firm", clientFormID))
	}

	return cs.validation.Validate(ctx, form.ID)
}
