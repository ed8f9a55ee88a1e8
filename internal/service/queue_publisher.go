// Package service publishes domain events to RabbitMQ.  Errors are logged
// and returned so callers can ignore them without interrupting the request
// flow.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/visit-counter/internal/config"
	"github.com/iliyamo/visit-counter/internal/queue"
)

// Publisher sends visit events to a durable queue.  Each publish dials its
// own connection.
type Publisher struct {
	URL   string
	Queue string
	Log   *zap.Logger
}

func NewPublisher(cfg config.EventsConfig, log *zap.Logger) *Publisher {
	return &Publisher{URL: cfg.BrokerURL, Queue: cfg.Queue, Log: log}
}

// PublishVisitRecorded publishes ev as a persistent JSON message.
func (p *Publisher) PublishVisitRecorded(ctx context.Context, ev queue.VisitRecordedEvent) error {
	pub, err := newPublishing(ev)
	if err != nil {
		p.Log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}

func newPublishing(ev queue.VisitRecordedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
