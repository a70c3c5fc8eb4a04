package consumer

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tphappenings/campus-events/internal/repository"
	"github.com/tphappenings/campus-events/pkg/rabbitmq"
)

// NotifyConsumer reacts to freed spots: every pending notify request for the
// event is flagged notified. Delivery is a log line; wiring a mailer onto
// this is deliberately out of scope.
type NotifyConsumer struct {
	notifyRepo repository.NotifyRepository
	eventRepo  repository.EventRepository
}

func NewNotifyConsumer(notifyRepo repository.NotifyRepository, eventRepo repository.EventRepository) *NotifyConsumer {
	return &NotifyConsumer{notifyRepo: notifyRepo, eventRepo: eventRepo}
}

func (nc *NotifyConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotifyConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotifyConsumer) handleMessage(msg amqp.Delivery) {
	var freed rabbitmq.SpotFreedMessage
	if err := json.Unmarshal(msg.Body, &freed); err != nil {
		log.Printf("[NotifyConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	ctx := context.Background()
	pending, err := nc.notifyRepo.FindPendingByEventID(ctx, freed.EventID)
	if err != nil {
		log.Printf("[NotifyConsumer] failed to load notify requests for event %d: %v", freed.EventID, err)
		msg.Nack(false, true) // requeue
		return
	}
	if len(pending) == 0 {
		msg.Ack(false)
		return
	}

	event, err := nc.eventRepo.FindByID(ctx, freed.EventID)
	if err != nil {
		// event deleted between cancel and consume; nothing to announce
		msg.Ack(false)
		return
	}

	ids := make([]uint, 0, len(pending))
	for _, req := range pending {
		log.Printf("[NotifyConsumer] notifying %s: a spot opened up for %q", req.Email, event.Title)
		ids = append(ids, req.ID)
	}
	if err := nc.notifyRepo.MarkNotified(ctx, ids); err != nil {
		log.Printf("[NotifyConsumer] failed to mark notified: %v", err)
		msg.Nack(false, true)
		return
	}

	msg.Ack(false)
}
