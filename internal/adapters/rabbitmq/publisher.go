package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"eventmanagement/internal/domain"
)

// Broker topology. The exchange and the consumer queues are durable and
// declared up front so a publish never races queue creation.
const (
	ExchangeName      = "event.exchange"
	BookingQueue      = "booking-service.event.queue"
	NotificationQueue = "notification-service.event.queue"

	KeyPublished = "event.published"
	KeyUpdated   = "event.updated"
	KeyCancelled = "event.cancelled"
	KeyDeleted   = "event.deleted"
)

var routingKeys = []string{KeyPublished, KeyUpdated, KeyCancelled, KeyDeleted}
var consumerQueues = []string{BookingQueue, NotificationQueue}

// confirmation is the subset of amqp.DeferredConfirmation the publisher waits on.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// wireChannel is the subset of amqp.Channel the publisher needs, narrowed
// for testability.
type wireChannel interface {
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (confirmation, error)
}

type amqpChannel struct {
	ch *amqp.Channel
}

func (c amqpChannel) PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (confirmation, error) {
	return c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// Publisher emits event lifecycle notifications to the topic exchange.
// It implements domain.EventNotifier.
type Publisher struct {
	ch     wireChannel
	logger *slog.Logger
}

// NewPublisher opens a confirm-mode channel, declares the exchange and
// consumer queue bindings, and returns a publisher.
func NewPublisher(conn *amqp.Connection, logger *slog.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}
	if err := declareTopology(ch); err != nil {
		return nil, err
	}
	return &Publisher{ch: amqpChannel{ch: ch}, logger: logger}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	for _, queue := range consumerQueues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		for _, key := range routingKeys {
			if err := ch.QueueBind(queue, key, ExchangeName, false, nil); err != nil {
				return fmt.Errorf("bind %s to %s: %w", queue, key, err)
			}
		}
	}
	return nil
}

func newMessage(operation, eventID string) domain.EventMessage {
	return domain.EventMessage{
		MessageID: uuid.NewString(),
		Operation: operation,
		EventID:   eventID,
		EmittedAt: time.Now().UTC(),
	}
}

func (p *Publisher) publish(ctx context.Context, key string, msg domain.EventMessage, mode domain.DeliveryMode) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", key, err)
	}

	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, ExchangeName, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.MessageID,
		Timestamp:    msg.EmittedAt,
		Body:         body,
	})
	if err == nil {
		var acked bool
		acked, err = conf.WaitContext(ctx)
		if err == nil && !acked {
			err = errors.New("broker rejected publish")
		}
	}
	if err != nil {
		if mode == domain.BestEffort {
			p.logger.Warn("best-effort notification dropped", "routing_key", key, "event_id", msg.EventID, "err", err)
			return nil
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrDeliveryFailure, key, err)
	}
	return nil
}

// EventPublished emits the full event snapshot. MustDeliver.
func (p *Publisher) EventPublished(ctx context.Context, e *domain.Event) error {
	msg := newMessage("published", e.ID)
	msg.Event = e
	return p.publish(ctx, KeyPublished, msg, domain.MustDeliver)
}

// EventUpdated emits the changed-field delta. MustDeliver.
func (p *Publisher) EventUpdated(ctx context.Context, eventID string, changes map[string]any) error {
	msg := newMessage("updated", eventID)
	msg.Changes = changes
	return p.publish(ctx, KeyUpdated, msg, domain.MustDeliver)
}

// EventCancelled emits the event id. MustDeliver.
func (p *Publisher) EventCancelled(ctx context.Context, eventID string) error {
	return p.publish(ctx, KeyCancelled, newMessage("cancelled", eventID), domain.MustDeliver)
}

// EventDeleted emits the event id. BestEffort: failures are logged, never returned.
func (p *Publisher) EventDeleted(ctx context.Context, eventID string) error {
	return p.publish(ctx, KeyDeleted, newMessage("deleted", eventID), domain.BestEffort)
}
