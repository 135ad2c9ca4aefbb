package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	repoForms "github.com/harborlegal/practice-backend/internal/data/repos/forms"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

// AuditEntry describes one action against a client form. A nil UserID means
// the anonymous client acting through the access token.
type AuditEntry struct {
	ClientFormID uuid.UUID
	UserID       *uuid.UUID
	Action       string
	FieldName    *string
	OldValue     *string
	NewValue     *string
	IPAddress    string
	UserAgent    string
}

// AuditService is the append-only sink for form activity. Record runs in
// the caller's transaction: a failed audit write aborts the mutation that
// triggered it.
type AuditService interface {
	Record(dbc dbctx.Context, entry AuditEntry) error
	ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormAuditLog, error)
}

type auditService struct {
	db           *gorm.DB
	log          *logger.Logger
	auditLogRepo repoForms.AuditLogRepo
}

func NewAuditService(db *gorm.DB, baseLog *logger.Logger, auditLogRepo repoForms.AuditLogRepo) AuditService {
	return &auditService{
		db:           db,
		log:          baseLog.With("service", "AuditService"),
		auditLogRepo: auditLogRepo,
	}
}

func (as *auditService) Record(dbc dbctx.Context, entry AuditEntry) error {
	if entry.ClientFormID == uuid.Nil {
		return fmt.Errorf("audit entry requires a client form id")
	}
	if entry.Action == "" {
		return fmt.Errorf("audit entry requires an action")
	}

	row := &types.FormAuditLog{
		ID:           uuid.New(),
		ClientFormID: entry.ClientFormID,
		UserID:       entry.UserID,
		Action:       entry.Action,
		FieldName:    entry.FieldName,
		OldValue:     entry.OldValue,
		NewValue:     entry.NewValue,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
	}

	if _, err := as.auditLogRepo.Create(dbc, row); err != nil {
		return fmt.Errorf("write audit row: %w", err)
	}
	return nil
}

func (as *auditService) ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormAuditLog, error) {
	return as.auditLogRepo.ListByForm(dbc, clientFormID)
}
