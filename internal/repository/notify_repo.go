package repository

import (
	"context"

	"github.com/tphappenings/campus-events/internal/models"
	"gorm.io/gorm"
)

type NotifyRepository interface {
	Create(ctx context.Context, req *models.NotifyRequest) error
	FindPendingByEventID(ctx context.Context, eventID uint) ([]models.NotifyRequest, error)
	MarkNotified(ctx context.Context, ids []uint) error
	DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error
}

type notifyRepository struct {
	db *gorm.DB
}

func NewNotifyRepository(db *gorm.DB) NotifyRepository {
	return &notifyRepository{db: db}
}

func (r *notifyRepository) Create(ctx context.Context, req *models.NotifyRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *notifyRepository) FindPendingByEventID(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
	var reqs []models.NotifyRequest
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND notified = false", eventID).
		Order("id ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *notifyRepository) MarkNotified(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.NotifyRequest{}).
		Where("id IN ?", ids).
		Update("notified", true).Error
}

func (r *notifyRepository) DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.NotifyRequest{}).Error
}
