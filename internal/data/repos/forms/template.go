package forms

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type TemplateRepo interface {
	Create(dbc dbctx.Context, template *types.FormTemplate) (*types.FormTemplate, error)
	CreateSections(dbc dbctx.Context, sections []*types.FormSection) ([]*types.FormSection, error)
	CreateFields(dbc dbctx.Context, fields []*types.FormField) ([]*types.FormField, error)
	CreateRequiredDocuments(dbc dbctx.Context, docs []*types.FormRequiredDocument) ([]*types.FormRequiredDocument, error)
	GetByIDForFirm(dbc dbctx.Context, templateID, lawFirmID uuid.UUID) (*types.FormTemplate, error)
	GetWithDefinition(dbc dbctx.Context, templateID uuid.UUID) (*types.FormTemplate, error)
	ListActiveByFirm(dbc dbctx.Context, lawFirmID uuid.UUID) ([]*types.FormTemplate, error)
}

type templateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTemplateRepo(db *gorm.DB, baseLog *logger.Logger) TemplateRepo {
	return &templateRepo{db: db, log: baseLog.With("repo", "TemplateRepo")}
}

func (tr *templateRepo) Create(dbc dbctx.Context, template *types.FormTemplate) (*types.FormTemplate, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	if template == nil {
		return nil, errors.New("nil template")
	}

	// Associations are inserted by the caller: sections first, then their
	// fields, then required documents.
	if err := transaction.WithContext(dbc.Ctx).
		Omit("Sections", "RequiredDocuments").
		Create(template).Error; err != nil {
		return nil, err
	}

	return template, nil
}

func (tr *templateRepo) CreateSections(dbc dbctx.Context, sections []*types.FormSection) ([]*types.FormSection, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(sections) == 0 {
		return []*types.FormSection{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).
		Omit("Fields").
		Create(&sections).Error; err != nil {
		return nil, err
	}

	return sections, nil
}

func (tr *templateRepo) CreateFields(dbc dbctx.Context, fields []*types.FormField) ([]*types.FormField, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(fields) == 0 {
		return []*types.FormField{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&fields).Error; err != nil {
		return nil, err
	}

	return fields, nil
}

func (tr *templateRepo) CreateRequiredDocuments(dbc dbctx.Context, docs []*types.FormRequiredDocument) ([]*types.FormRequiredDocument, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(docs) == 0 {
		return []*types.FormRequiredDocument{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&docs).Error; err != nil {
		return nil, err
	}

	return docs, nil
}

func (tr *templateRepo) GetByIDForFirm(dbc dbctx.Context, templateID, lawFirmID uuid.UUID) (*types.FormTemplate, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.FormTemplate
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND law_firm_id = ?", templateID, lawFirmID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *templateRepo) GetWithDefinition(dbc dbctx.Context, templateID uuid.UUID) (*types.FormTemplate, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.FormTemplate
	err := withDefinition(transaction.WithContext(dbc.Ctx)).
		Where("id = ?", templateID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *templateRepo) ListActiveByFirm(dbc dbctx.Context, lawFirmID uuid.UUID) ([]*types.FormTemplate, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.FormTemplate
	if err := withDefinition(transaction.WithContext(dbc.Ctx)).
		Where("law_firm_id = ? AND is_active = ?", lawFirmID, true).
		Order("form_type ASC, name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// withDefinition attaches the full template structure in display order.
func withDefinition(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Sections.Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("RequiredDocuments", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		})
}
