package forms

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/harborlegal/practice-backend/internal/domain"
	"github.com/harborlegal/practice-backend/internal/pkg/dbctx"
	"github.com/harborlegal/practice-backend/internal/platform/logger"
)

type NotificationRepo interface {
	Create(dbc dbctx.Context, notification *types.FormNotification) (*types.FormNotification, error)
	GetByID(dbc dbctx.Context, notificationID uuid.UUID) (*types.FormNotification, error)
	ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormNotification, error)
	UpdateFields(dbc dbctx.Context, notificationID uuid.UUID, fields map[string]interface{}) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (nr *notificationRepo) Create(dbc dbctx.Context, notification *types.FormNotification) (*types.FormNotification, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = nr.db
	}

	if notification == nil {
		return nil, errors.New("nil notification")
	}

	if err := transaction.WithContext(dbc.Ctx).Create(notification).Error; err != nil {
		return nil, err
	}

	return notification, nil
}

func (nr *notificationRepo) GetByID(dbc dbctx.Context, notificationID uuid.UUID) (*types.FormNotification, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = nr.db
	}

	var result types.FormNotification
	err := transaction.WithContext(dbc.Ctx).
		Preload("ClientForm").
		Where("id = ?", notificationID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (nr *notificationRepo) ListByForm(dbc dbctx.Context, clientFormID uuid.UUID) ([]*types.FormNotification, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = nr.db
	}

	var results []*types.FormNotification
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_form_id = ?", clientFormID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificationRepo) UpdateFields(dbc dbctx.Context, notificationID uuid.UUID, fields map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = nr.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.FormNotification{}).
		Where("id = ?", notificationID).
		Updates(fields).Error
}
