package intake

import (
	"context"
	"time"

	"github.com/iliyamo/babcock-cleaning/internal/model"
)

// Store persists a booking request and returns its new id.
type Store interface {
	Create(ctx context.Context, b *model.BookingRequest) (uint64, error)
}

// Service runs validation, mapping and persistence for one submission.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService returns a Service writing to store.  A nil clock means time.Now.
func NewService(store Store, now func() time.Time) *Service {
	if store == nil {
		panic("nil store passed to NewService")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Submit validates form and, if it passes, stores a Pending BookingRequest.
// It returns *ValidationError without touching the store when the form is
// invalid, and *PersistenceError when the insert fails.
func (s *Service) Submit(ctx context.Context, form Form) (model.BookingRequest, error) {
	if problems := Validate(form); len(problems) > 0 {
		return model.BookingRequest{}, &ValidationError{Problems: problems}
	}

	req := BuildRequest(form, s.now())
	id, err := s.store.Create(ctx, &req)
	if err != nil {
		return model.BookingRequest{}, &PersistenceError{Err: err}
	}
	req.ID = id
	return req, nil
}

// BuildRequest maps a validated form onto the stored record.
func BuildRequest(form Form, now time.Time) model.BookingRequest {
	return model.BookingRequest{
		FullName:    form.Get(FieldFullName),
		Email:       form.Get(FieldEmail),
		Phone:       form.Get(FieldPhone),
		Address:     form.Get(FieldCity),
		ServiceID:   ServiceID(form.Get(FieldServiceType)),
		Message:     ComposeMessage(form),
		RequestDate: now.UTC(),
		Status:      model.StatusPending,
	}
}
