package repository

import (
	"context"
	"strings"

	"github.com/tphappenings/campus-events/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	FindAll(ctx context.Context, category, search string) ([]models.Event, error)
	Save(ctx context.Context, tx *gorm.DB, event *models.Event) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate acquires a row-level lock on the event within the given
// transaction. Every capacity mutation goes through this lock.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindAll lists events newest first, optionally filtered by exact category
// and a case-insensitive substring match across the searchable columns.
// The "All" category means no filter, matching the client's filter buttons.
func (r *eventRepository) FindAll(ctx context.Context, category, search string) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)

	if category != "" && category != "All" {
		q = q.Where("category = ?", category)
	}
	if search != "" {
		pattern := likePattern(search)
		q = q.Where(
			"title ILIKE ? OR description ILIKE ? OR category ILIKE ? OR location ILIKE ? OR organizer ILIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	if err := q.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// likePattern wraps a search term for ILIKE, escaping the wildcard
// characters so a term like "100%" matches literally instead of everything.
func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(search))
	return "%" + escaped + "%"
}

func (r *eventRepository) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Event{}, id).Error
}
