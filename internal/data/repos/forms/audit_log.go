package forms

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

// AuditLogRepo is append-only. There is deliberately no update or delete
// surface here.
type AuditLogRepo interface {
	Create(dbc dbctx.Context, entry *types.FormAuditLog) (*types.FormAuditLog, error)
	ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormAuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (ar *auditLogRepo) Create(dbc dbctx.Context, entry *types.FormAuditLog) (*types.FormAuditLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}

	if entry == nil {
		return nil, errors.New("nil audit entry")
	}

	if err := transaction.WithContext(dbc.Ctx).Create(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

func (ar *auditLogRepo) ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormAuditLog, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.FormAuditLog
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_form_id = ?", clientFormID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
