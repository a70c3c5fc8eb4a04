package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/schedule"
	"gorm.io/gorm"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn            func(ctx context.Context, event *models.Event) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Event, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error)
	findAllFn           func(ctx context.Context, category, search string) ([]models.Event, error)
	saveFn              func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	deleteFn            func(ctx context.Context, tx *gorm.DB, id uint) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return m.findByIDForUpdateFn(ctx, tx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context, category, search string) ([]models.Event, error) {
	return m.findAllFn(ctx, category, search)
}
func (m *mockEventRepo) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.saveFn(ctx, tx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.deleteFn(ctx, tx, id)
}
func (m *mockEventRepo) GetDB() *gorm.DB { return nil }

// --- Mock NotifyRepository ---

type mockNotifyRepo struct {
	createFn func(ctx context.Context, req *models.NotifyRequest) error
}

func (m *mockNotifyRepo) Create(ctx context.Context, req *models.NotifyRequest) error {
	return m.createFn(ctx, req)
}
func (m *mockNotifyRepo) FindPendingByEventID(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
	return nil, nil
}
func (m *mockNotifyRepo) MarkNotified(ctx context.Context, ids []uint) error { return nil }
func (m *mockNotifyRepo) DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return nil
}

// --- Tests ---

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("02 Jan 2006")
}

func sampleEvent() *models.Event {
	return &models.Event{
		Title:           "Go Workshop",
		Description:     "Hands-on introduction to Go",
		Date:            futureDate(),
		Time:            "7:00 PM - 9:00 PM",
		Location:        "Block A Auditorium",
		Category:        models.CategoryWorkshop,
		MaxParticipants: 50,
		Organizer:       "Tech Club",
		OrganizerID:     1,
	}
}

func TestCreateEvent_InitializesCapacity(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			return nil
		},
	}

	svc := NewEventService(repo, nil, nil, nil)
	event := sampleEvent()

	err := svc.CreateEvent(context.Background(), event)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), event.ID)
	assert.Equal(t, 50, event.SpotsRemaining)
	assert.Equal(t, models.EventStats{}, event.Stats)
	assert.Equal(t, "OR", event.OrganizerAvatar)
}

func TestCreateEvent_InvalidCategory(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil, nil, nil)
	event := sampleEvent()
	event.Category = "Bake Sale"

	err := svc.CreateEvent(context.Background(), event)

	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCreateEvent_DateInPast(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil, nil, nil)
	event := sampleEvent()
	event.Date = time.Now().AddDate(0, 0, -1).Format("02 Jan 2006")

	err := svc.CreateEvent(context.Background(), event)

	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestCreateEvent_InvertedTimeRange(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, nil, nil, nil)
	event := sampleEvent()
	event.Time = "9:00 PM - 7:00 PM"

	err := svc.CreateEvent(context.Background(), event)

	assert.ErrorIs(t, err, schedule.ErrEndBeforeStart)
}

func TestCreateEvent_RepoError(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *models.Event) error {
			return errors.New("db connection failed")
		},
	}

	svc := NewEventService(repo, nil, nil, nil)

	err := svc.CreateEvent(context.Background(), sampleEvent())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "db connection failed")
}

func TestGetEvent_NotFound(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewEventService(repo, nil, nil, nil)
	event, err := svc.GetEvent(context.Background(), 999)

	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.Nil(t, event)
}

func TestListEvents_PassesFilters(t *testing.T) {
	var gotCategory, gotSearch string
	repo := &mockEventRepo{
		findAllFn: func(ctx context.Context, category, search string) ([]models.Event, error) {
			gotCategory, gotSearch = category, search
			return []models.Event{{ID: 1, Title: "Event A"}}, nil
		},
	}

	svc := NewEventService(repo, nil, nil, nil)
	events, err := svc.ListEvents(context.Background(), "Workshop", "golang")

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "Workshop", gotCategory)
	assert.Equal(t, "golang", gotSearch)
}

func TestRequestNotify_EventNotFull(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			event := sampleEvent()
			event.ID = id
			event.SpotsRemaining = 3
			return event, nil
		},
	}

	svc := NewEventService(repo, nil, &mockNotifyRepo{}, nil)
	_, err := svc.RequestNotify(context.Background(), 1, "student@example.com")

	assert.ErrorIs(t, err, ErrEventNotFull)
}

func TestRequestNotify_Success(t *testing.T) {
	repo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			event := sampleEvent()
			event.ID = id
			event.SpotsRemaining = 0
			return event, nil
		},
	}
	notifyRepo := &mockNotifyRepo{
		createFn: func(ctx context.Context, req *models.NotifyRequest) error {
			req.ID = 7
			return nil
		},
	}

	svc := NewEventService(repo, nil, notifyRepo, nil)
	req, err := svc.RequestNotify(context.Background(), 1, "student@example.com")

	assert.NoError(t, err)
	assert.Equal(t, uint(7), req.ID)
	assert.Equal(t, uint(1), req.EventID)
	assert.False(t, req.Notified)
}
