package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/pkg/rabbitmq"
	"gorm.io/gorm"
)

// --- Fake acknowledger recording ack/nack outcomes ---

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

// --- Mock NotifyRepository ---

type mockNotifyRepo struct {
	findPendingFn  func(ctx context.Context, eventID uint) ([]models.NotifyRequest, error)
	markNotifiedFn func(ctx context.Context, ids []uint) error
}

func (m *mockNotifyRepo) Create(ctx context.Context, req *models.NotifyRequest) error { return nil }
func (m *mockNotifyRepo) FindPendingByEventID(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
	return m.findPendingFn(ctx, eventID)
}
func (m *mockNotifyRepo) MarkNotified(ctx context.Context, ids []uint) error {
	return m.markNotifiedFn(ctx, ids)
}
func (m *mockNotifyRepo) DeleteByEventID(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return nil
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	findByIDFn func(ctx context.Context, id uint) (*models.Event, error)
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error { return nil }
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Event, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockEventRepo) FindAll(ctx context.Context, category, search string) ([]models.Event, error) {
	return nil, nil
}
func (m *mockEventRepo) Save(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return nil
}
func (m *mockEventRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error { return nil }
func (m *mockEventRepo) GetDB() *gorm.DB                                        { return nil }

// --- Helpers ---

func spotFreedDelivery(t *testing.T, eventID uint) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()
	body, err := json.Marshal(rabbitmq.SpotFreedMessage{EventID: eventID, SpotsRemaining: 1})
	require.NoError(t, err)
	ack := &fakeAcknowledger{}
	return amqp.Delivery{Acknowledger: ack, Body: body}, ack
}

// --- Tests ---

func TestHandleMessage_MarksPendingNotified(t *testing.T) {
	var markedIDs []uint
	notifyRepo := &mockNotifyRepo{
		findPendingFn: func(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
			return []models.NotifyRequest{
				{ID: 7, EventID: eventID, Email: "jane@example.com"},
				{ID: 9, EventID: eventID, Email: "bob@example.com"},
			}, nil
		},
		markNotifiedFn: func(ctx context.Context, ids []uint) error {
			markedIDs = ids
			return nil
		},
	}
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, Title: "Go Workshop"}, nil
		},
	}

	nc := NewNotifyConsumer(notifyRepo, eventRepo)
	msg, ack := spotFreedDelivery(t, 1)
	nc.handleMessage(msg)

	assert.Equal(t, []uint{7, 9}, markedIDs)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestHandleMessage_NoPendingRequests(t *testing.T) {
	markCalled := false
	notifyRepo := &mockNotifyRepo{
		findPendingFn: func(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
			return nil, nil
		},
		markNotifiedFn: func(ctx context.Context, ids []uint) error {
			markCalled = true
			return nil
		},
	}

	nc := NewNotifyConsumer(notifyRepo, &mockEventRepo{})
	msg, ack := spotFreedDelivery(t, 1)
	nc.handleMessage(msg)

	assert.True(t, ack.acked)
	assert.False(t, markCalled)
}

func TestHandleMessage_MalformedBody(t *testing.T) {
	nc := NewNotifyConsumer(&mockNotifyRepo{}, &mockEventRepo{})

	ack := &fakeAcknowledger{}
	nc.handleMessage(amqp.Delivery{Acknowledger: ack, Body: []byte("not json")})

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue, "poison messages must not requeue")
}

func TestHandleMessage_EventDeleted(t *testing.T) {
	markCalled := false
	notifyRepo := &mockNotifyRepo{
		findPendingFn: func(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
			return []models.NotifyRequest{{ID: 7, EventID: eventID, Email: "jane@example.com"}}, nil
		},
		markNotifiedFn: func(ctx context.Context, ids []uint) error {
			markCalled = true
			return nil
		},
	}
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	nc := NewNotifyConsumer(notifyRepo, eventRepo)
	msg, ack := spotFreedDelivery(t, 1)
	nc.handleMessage(msg)

	assert.True(t, ack.acked, "a deleted event leaves nothing to announce")
	assert.False(t, markCalled)
}

func TestHandleMessage_LoadErrorRequeues(t *testing.T) {
	notifyRepo := &mockNotifyRepo{
		findPendingFn: func(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
			return nil, errors.New("db connection failed")
		},
	}

	nc := NewNotifyConsumer(notifyRepo, &mockEventRepo{})
	msg, ack := spotFreedDelivery(t, 1)
	nc.handleMessage(msg)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}

func TestHandleMessage_MarkErrorRequeues(t *testing.T) {
	notifyRepo := &mockNotifyRepo{
		findPendingFn: func(ctx context.Context, eventID uint) ([]models.NotifyRequest, error) {
			return []models.NotifyRequest{{ID: 7, EventID: eventID, Email: "jane@example.com"}}, nil
		},
		markNotifiedFn: func(ctx context.Context, ids []uint) error {
			return errors.New("db connection failed")
		},
	}
	eventRepo := &mockEventRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, Title: "Go Workshop"}, nil
		},
	}

	nc := NewNotifyConsumer(notifyRepo, eventRepo)
	msg, ack := spotFreedDelivery(t, 1)
	nc.handleMessage(msg)

	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
}
