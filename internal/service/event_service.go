package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tphappenings/campus-events/internal/metrics"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/repository"
	"github.com/tphappenings/campus-events/internal/schedule"
	"github.com/tphappenings/campus-events/pkg/rabbitmq"
	"gorm.io/gorm"
)

// EventUpdate is a partial update; nil fields are left untouched.
type EventUpdate struct {
	Title           *string
	Description     *string
	Date            *string
	Time            *string
	Location        *string
	Category        *models.EventCategory
	MaxParticipants *int
	Image           *string
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, category, search string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id uint, update EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
	GenerateAttendanceKey(ctx context.Context, eventID uint) (string, error)
	RequestNotify(ctx context.Context, eventID uint, email string) (*models.NotifyRequest, error)
}

type eventService struct {
	eventRepo  repository.EventRepository
	regRepo    repository.RegistrationRepository
	notifyRepo repository.NotifyRepository
	publisher  *rabbitmq.Publisher
}

func NewEventService(eventRepo repository.EventRepository, regRepo repository.RegistrationRepository, notifyRepo repository.NotifyRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		regRepo:    regRepo,
		notifyRepo: notifyRepo,
		publisher:  publisher,
	}
}

func validateSchedule(date, timeRange string) error {
	if _, err := schedule.ParseEventDate(date); err != nil {
		return err
	}
	if schedule.InPast(date) {
		return ErrDateInPast
	}
	if _, err := schedule.ParseTimeRange(timeRange); err != nil {
		return err
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if !event.Category.Valid() {
		return ErrInvalidCategory
	}
	if err := validateSchedule(event.Date, event.Time); err != nil {
		return err
	}

	event.SpotsRemaining = event.MaxParticipants
	event.Stats = models.EventStats{}
	if event.OrganizerAvatar == "" {
		event.OrganizerAvatar = "OR"
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, category, search string) ([]models.Event, error) {
	return s.eventRepo.FindAll(ctx, category, search)
}

// UpdateEvent applies a partial update under the event row lock. Capacity
// changes recompute spotsRemaining against the active registration count and
// are rejected when the new maximum falls below it.
func (s *eventService) UpdateEvent(ctx context.Context, id uint, update EventUpdate) (*models.Event, error) {
	var result *models.Event

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return ErrEventNotFound
		}

		if update.Title != nil {
			event.Title = *update.Title
		}
		if update.Description != nil {
			event.Description = *update.Description
		}
		if update.Date != nil {
			if _, err := schedule.ParseEventDate(*update.Date); err != nil {
				return err
			}
			if schedule.InPast(*update.Date) {
				return ErrDateInPast
			}
			event.Date = *update.Date
		}
		if update.Time != nil {
			if _, err := schedule.ParseTimeRange(*update.Time); err != nil {
				return err
			}
			event.Time = *update.Time
		}
		if update.Location != nil {
			event.Location = *update.Location
		}
		if update.Category != nil {
			if !update.Category.Valid() {
				return ErrInvalidCategory
			}
			event.Category = *update.Category
		}
		if update.Image != nil {
			event.Image = *update.Image
		}

		if update.MaxParticipants != nil {
			active := event.MaxParticipants - event.SpotsRemaining
			if *update.MaxParticipants < active {
				return &CapacityBelowDemandError{Registered: active}
			}
			event.MaxParticipants = *update.MaxParticipants
			event.SpotsRemaining = *update.MaxParticipants - active
		}

		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}
		result = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteEvent cascades: registrations and notify requests go in the same
// transaction as the event, so no orphans survive.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.eventRepo.FindByIDForUpdate(ctx, tx, id); err != nil {
			return ErrEventNotFound
		}
		if err := s.regRepo.DeleteByEventID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.notifyRepo.DeleteByEventID(ctx, tx, id); err != nil {
			return err
		}
		return s.eventRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.deleted", map[string]uint{"id": id})
	}
	return nil
}

// GenerateAttendanceKey issues a fresh 4-digit key for the event, replacing
// any previous one. The key is returned exactly once for display and is
// never serialized in event responses.
func (s *eventService) GenerateAttendanceKey(ctx context.Context, eventID uint) (string, error) {
	var key string

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}
		key = NewAttendanceKey()
		event.AttendanceKey = &key
		return s.eventRepo.Save(ctx, tx, event)
	})
	if err != nil {
		return "", err
	}

	metrics.KeysGeneratedTotal.Inc()
	return key, nil
}

// RequestNotify records interest in a currently full event.
func (s *eventService) RequestNotify(ctx context.Context, eventID uint, email string) (*models.NotifyRequest, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.SpotsRemaining > 0 {
		return nil, ErrEventNotFull
	}

	req := &models.NotifyRequest{EventID: eventID, Email: email}
	if err := s.notifyRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
