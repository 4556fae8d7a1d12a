// Package service provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned so callers can decide to carry on without
// interrupting the main request flow.
package service

import (
	"context"
	"encoding/json"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/babcock-cleaning/internal/queue"
)

// Publisher sends booking events to a RabbitMQ broker.  Each publish dials
// its own connection; booking volume is a handful of messages a day.
type Publisher struct {
	URL string
	Log *zap.Logger
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{URL: url, Log: log}
}

// PublishBookingRequested publishes event to the booking.requested queue.
// Messages are marked as persistent.
func (p *Publisher) PublishBookingRequested(ctx context.Context, event q.BookingRequestedEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Locale: "en_US",
		Dial:   dialContext(ctx),
	})
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()
	// Channel and declare calls take no context; closing the connection
	// unblocks them once ctx is done.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.BookingRequestedQueue, // name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		q.BookingRequestedQueue, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}

	return nil
}

// dialContext returns an amqp dialer bound to ctx.  The ctx deadline also
// covers the AMQP handshake; the library clears it once the connection is open.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if dl, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(dl); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}
