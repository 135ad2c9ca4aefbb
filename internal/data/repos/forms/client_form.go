package forms

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type ClientFormRepo interface {
	Create(dbc dbctx.Context, form *types.ClientForm) (*types.ClientForm, error)
	GetByID(dbc dbctx.Context, formID uuid.UUID) (*types.ClientForm, error)
	GetByIDForFirm(dbc dbctx.Context, formID, lawFirmID uuid.UUID) (*types.ClientForm, error)
	GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.ClientForm, error)
	GetFullByAccessToken(dbc dbctx.Context, accessToken string) (*types.ClientForm, error)
	UpdateFields(dbc dbctx.Context, formID uuid.UUID, fields map[string]interface{}) error
}

type clientFormRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientFormRepo(db *gorm.DB, baseLog *logger.Logger) ClientFormRepo {
	return &clientFormRepo{db: db, log: baseLog.With("repo", "ClientFormRepo")}
}

func (cfr *clientFormRepo) Create(dbc dbctx.Context, form *types.ClientForm) (*types.ClientForm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cfr.db
	}

	if form == nil {
		return nil, errors.New("nil client form")
	}

	if err := transaction.WithContext(dbc.Ctx).
		Omit("Responses", "Documents", "Notifications", "AuditLogs").
		Create(form).Error; err != nil {
		return nil, err
	}

	return form, nil
}

func (cfr *clientFormRepo) GetByID(dbc dbctx.Context, formID uuid.UUID) (*types.ClientForm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cfr.db
	}

	var result types.ClientForm
	err := transaction.WithContext(dbc.Ctx).
		Preload("Client").
		Where("id = ?", formID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cfr *clientFormRepo) GetByIDForFirm(dbc dbctx.Context, formID, lawFirmID uuid.UUID) (*types.ClientForm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cfr.db
	}

	var result types.ClientForm
	err := transaction.WithContext(dbc.Ctx).
		Preload("Client").
		Where("id = ? AND law_firm_id = ?", formID, lawFirmID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cfr *clientFormRepo) GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.ClientForm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cfr.db
	}

	var result types.ClientForm
	err := transaction.WithContext(dbc.Ctx).
		Where("access_token = ?", accessToken).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetFullByAccessToken loads everything the public form UI needs to resume:
// the template definition in display order, existing responses, uploads.
func (cfr *clientFormRepo) GetFullByAccessToken(dbc dbctx.Context, accessToken string) (*types.ClientForm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cfr.db
	}

	var result types.ClientForm
	err := transaction.WithContext(dbc.Ctx).
		Preload("Client").
		Preload("Template").
		Preload("Template.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Template.Sections.Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Template.RequiredDocuments", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Responses").
		Preload("Documents").
		Where("access_token = ?", accessToken).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cfr *clientFormRepo) UpdateFields(dbc dbctx.Context, formID uuid.UUID, fields map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cfr.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.ClientForm{}).
		Where("id = ?", formID).
		Updates(fields).Error
}
