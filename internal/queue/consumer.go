// Package queue contains the background consumer that listens to the
// booking.requested queue and writes one line per event to a log file.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// BookingLogFile is the file name written inside the consumer's log dir.
const BookingLogFile = "booking_requests.log"

// StartBookingConsumer connects to RabbitMQ, declares the booking.requested
// queue (durable), and consumes until ctx is cancelled.  Each message is
// appended to dir/booking_requests.log.  Broker failures trigger a
// reconnect with exponential backoff capped at 30s; bad messages are
// rejected without requeue so the loop keeps going.
func StartBookingConsumer(ctx context.Context, url, dir string, log *zap.Logger) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Warn("booking-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, dir, log)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("booking-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, dir string, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Warn("booking-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(BookingRequestedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, BookingRequestedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(dir, d.Body); err != nil {
			log.Error("booking-consumer: handle message failed", zap.Error(err))
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one BookingRequestedEvent and appends it to the
// booking log in dir.
func HandleMessage(dir string, body []byte) error {
	var ev BookingRequestedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.RequestID == 0 {
		return errors.New("event without request_id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, BookingLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single human-friendly log line.
func FormatLine(ev BookingRequestedEvent) string {
	return fmt.Sprintf("[%s] Booking request received | request_id=%d | name=%q | email=%q | phone=%q | city=%q | service=%q (id=%d) | clean_date=%q | status=%s\n",
		ev.RequestedAt, ev.RequestID, ev.FullName, ev.Email, ev.Phone, ev.City, ev.ServiceLabel, ev.ServiceID, ev.CleanDate, ev.Status)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
