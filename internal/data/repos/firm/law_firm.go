package firm

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type LawFirmRepo interface {
	Create(dbc dbctx.Context, firms []*types.LawFirm) ([]*types.LawFirm, error)
	GetByID(dbc dbctx.Context, lawFirmID uuid.UUID) (*types.LawFirm, error)
}

type lawFirmRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLawFirmRepo(db *gorm.DB, baseLog *logger.Logger) LawFirmRepo {
	return &lawFirmRepo{db: db, log: baseLog.With("repo", "LawFirmRepo")}
}

func (lr *lawFirmRepo) Create(dbc dbctx.Context, firms []*types.LawFirm) ([]*types.LawFirm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(firms) == 0 {
		return []*types.LawFirm{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&firms).Error; err != nil {
		return nil, err
	}

	return firms, nil
}

func (lr *lawFirmRepo) GetByID(dbc dbctx.Context, lawFirmID uuid.UUID) (*types.LawFirm, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = lr.db
	}

	var result types.LawFirm
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", lawFirmID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
