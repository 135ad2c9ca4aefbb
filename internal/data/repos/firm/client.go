package firm

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type ClientRepo interface {
	Create(dbc dbctx.Context, clients []*types.Client) ([]*types.Client, error)
	GetByID(dbc dbctx.Context, clientID uuid.UUID) (*types.Client, error)
	GetByIDForFirm(dbc dbctx.Context, clientID, lawFirmID uuid.UUID) (*types.Client, error)
	ListByFirm(dbc dbctx.Context, lawFirmID uuid.UUID) ([]*types.Client, error)
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{db: db, log: baseLog.With("repo", "ClientRepo")}
}

func (cr *clientRepo) Create(dbc dbctx.Context, clients []*types.Client) ([]*types.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(clients) == 0 {
		return []*types.Client{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&clients).Error; err != nil {
		return nil, err
	}

	return clients, nil
}

func (cr *clientRepo) GetByID(dbc dbctx.Context, clientID uuid.UUID) (*types.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Client
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", clientID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *clientRepo) GetByIDForFirm(dbc dbctx.Context, clientID, lawFirmID uuid.UUID) (*types.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Client
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND law_firm_id = ?", clientID, lawFirmID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *clientRepo) ListByFirm(dbc dbctx.Context, lawFirmID uuid.UUID) ([]*types.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Client
	if err := transaction.WithContext(dbc.Ctx).
		Where("law_firm_id = ?", lawFirmID).
		Order("last_name ASC, first_name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
