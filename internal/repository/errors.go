// Package repository defines the data access layer for booking requests.
// Sentinel errors here let higher layers tell "nothing there" apart from a
// failing store; the intake flow itself treats every insert failure alike.
package repository

import "errors"

// ErrBookingRequestNotFound is returned when no row matches an id.
var ErrBookingRequestNotFound = errors.New("booking request not found")
