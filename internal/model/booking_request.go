package model

import "time"

// StatusPending is the only status this service ever writes.  Later
// transitions belong to whoever works the request queue.
const StatusPending = "Pending"

// BookingRequest records a customer's cleaning-service inquiry as
// stored in the `BookingRequest` table.
//
// Fields:
//   - ID: primary key identifier assigned by the store.
//   - FullName: customer name as submitted.
//   - Email: contact email.
//   - Phone: contact phone, stored as typed.
//   - Address: city or address line from the form.
//   - ServiceID: small integer category of the requested service.
//   - Message: composed summary of property and service details.
//   - RequestDate: server time at which the request was accepted.
//   - Status: lifecycle state; Pending at creation.
type BookingRequest struct {
	ID          uint64    // BookingRequest.id
	FullName    string    // BookingRequest.full_name
	Email       string    // BookingRequest.email
	Phone       string    // BookingRequest.phone
	Address     string    // BookingRequest.address
	ServiceID   int       // BookingRequest.service_id
	Message     string    // BookingRequest.message
	RequestDate time.Time // BookingRequest.request_date
	Status      string    // BookingRequest.status
}
