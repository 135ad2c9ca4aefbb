package forms

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, document *types.ClientFormDocument) (*types.ClientFormDocument, error)
	ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.ClientFormDocument, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return &documentRepo{db: db, log: baseLog.With("repo", "DocumentRepo")}
}

func (dr *documentRepo) Create(dbc dbctx.Context, document *types.ClientFormDocument) (*types.ClientFormDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	if document == nil {
		return nil, errors.New("nil document")
	}

	if err := transaction.WithContext(dbc.Ctx).Create(document).Error; err != nil {
		return nil, err
	}

	return document, nil
}

func (dr *documentRepo) ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.ClientFormDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.ClientFormDocument
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_form_id = ?", clientFormID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
