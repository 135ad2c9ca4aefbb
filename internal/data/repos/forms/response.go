package forms

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type ResponseRepo interface {
	Create(dbc dbctx.Context, response *types.FormResponse) (*types.FormResponse, error)
	Update(dbc dbctx.Context, response *types.FormResponse) error
	GetByFormAndField(dbc dbctx.Context, clientFormID, fieldID uuid.UUID) (*types.FormResponse, error)
	ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormResponse, error)
}

type responseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResponseRepo(db *gorm.DB, baseLog *logger.Logger) ResponseRepo {
	return &responseRepo{db: db, log: baseLog.With("repo", "ResponseRepo")}
}

// Create relies on the unique index over (client_form_id, field_id); the
// caller translates gorm.ErrDuplicatedKey from a concurrent insert into a
// re-read-and-update.
func (rr *responseRepo) Create(dbc dbctx.Context, response *types.FormResponse) (*types.FormResponse, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	if response == nil {
		return nil, errors.New("nil response")
	}

	if err := transaction.WithContext(dbc.Ctx).Create(response).Error; err != nil {
		return nil, err
	}

	return response, nil
}

func (rr *responseRepo) Update(dbc dbctx.Context, response *types.FormResponse) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	if response == nil {
		return errors.New("nil response")
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.FormResponse{}).
		Where("id = ?", response.ID).
		Updates(map[string]interface{}{
			"value":         response.Value,
			"response_data": response.ResponseData,
		}).Error
}

func (rr *responseRepo) GetByFormAndField(dbc dbctx.Context, clientFormID, fieldID uuid.UUID) (*types.FormResponse, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.FormResponse
	err := transaction.WithContext(dbc.Ctx).
		Where("client_form_id = ? AND field_id = ?", clientFormID, fieldID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *responseRepo) ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormResponse, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.FormResponse
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_form_id = ?", clientFormID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
