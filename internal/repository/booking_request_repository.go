package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/babcock-cleaning/internal/model"
)

const insertBookingRequest = `
	INSERT INTO BookingRequest
	(full_name, email, phone, address, service_id, message, request_date, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// BookingRequestRepo persists BookingRequest rows.
type BookingRequestRepo struct{ DB *sql.DB }

func NewBookingRequestRepo(db *sql.DB) *BookingRequestRepo { return &BookingRequestRepo{DB: db} }

// Create inserts b on a dedicated connection and returns the new row id.
// The connection goes back to the pool on every return path.
func (r *BookingRequestRepo) Create(ctx context.Context, b *model.BookingRequest) (uint64, error) {
	if b == nil {
		return 0, errors.New("nil booking request")
	}
	conn, err := r.DB.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	res, err := conn.ExecContext(ctx, insertBookingRequest,
		b.FullName, b.Email, b.Phone, b.Address, b.ServiceID, b.Message, b.RequestDate.UTC(), b.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a booking request by id.
func (r *BookingRequestRepo) GetByID(ctx context.Context, id uint64) (model.BookingRequest, error) {
	var b model.BookingRequest
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,full_name,email,phone,address,service_id,message,request_date,status FROM BookingRequest WHERE id=? LIMIT 1",
		id).Scan(&b.ID, &b.FullName, &b.Email, &b.Phone, &b.Address, &b.ServiceID, &b.Message, &b.RequestDate, &b.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BookingRequest{}, ErrBookingRequestNotFound
	}
	return b, err
}
