// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingRequestedQueue is the durable queue booking events are routed to.
const BookingRequestedQueue = "booking.requested"

// BookingRequestedEvent is published after a booking request is stored.
// It carries enough for downstream consumers to notify staff without
// querying the primary database.
type BookingRequestedEvent struct {
	RequestID    uint64 `json:"request_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	ServiceID    int    `json:"service_id"`
	ServiceLabel string `json:"service_label"`
	CleanDate    string `json:"clean_date"`
	Status       string `json:"status"`
	RequestedAt  string `json:"requested_at"`
}
