package repository

import (
	"context"

	"github.com/tphappenings/campus-events/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByID(ctx context.Context, id uint) (*models.Registration, error)
	FindByIDInTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error)
	Find(ctx context.Context, eventID, userID uint) ([]models.Registration, error)
	FindByUserID(ctx context.Context, userID uint) ([]models.Registration, error)
	FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uint) (*models.Registration, error)
	CountActive(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error
	GetDB() *gorm.DB
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByIDInTx(ctx context.Context, tx *gorm.DB, id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := tx.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// Find filters by event and/or user; zero means no filter on that column.
func (r *registrationRepository) Find(ctx context.Context, eventID, userID uint) ([]models.Registration, error) {
	var regs []models.Registration
	q := r.db.WithContext(ctx)
	if eventID != 0 {
		q = q.Where("event_id = ?", eventID)
	}
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Order("created_at DESC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Registration, error) {
	var regs []models.Registration
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *registrationRepository) FindActiveByUserAndEvent(ctx context.Context, tx *gorm.DB, userID, eventID uint) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) CountActive(ctx context.Context, tx *gorm.DB, eventID uint) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *registrationRepository) Save(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Save(reg).Error
}

func (r *registrationRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Registration{}, id).Error
}

func (r *registrationRepository) DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.Registration{}).Error
}
