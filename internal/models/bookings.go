package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking statuses. New bookings always start out pending; there is no
// terminal state, a cancelled or completed booking can still be mutated.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Tattoo types offered on the booking form.
const (
	TattooFlashEveryone = "flash-everyone"
	TattooFlashOne      = "flash-one"
	TattooCustom        = "custom"
	TattooCoverUp       = "cover-up"
)

type Booking struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ClientName  string    `db:"client_name" json:"client_name" validate:"required"`
	ClientEmail string    `db:"client_email" json:"client_email" validate:"required,email"`
	ClientPhone string    `db:"client_phone" json:"client_phone,omitempty"`
	TattooType  string    `db:"tattoo_type" json:"tattoo_type" validate:"required,oneof=flash-everyone flash-one custom cover-up"`
	BodyPart    string    `db:"body_part" json:"body_part" validate:"required,oneof=arm leg back chest shoulder other"`
	// PreferredDate is an ISO calendar date (YYYY-MM-DD) as submitted by the form.
	PreferredDate     string        `db:"preferred_date" json:"preferred_date" validate:"required"`
	PreferredTime     string        `db:"preferred_time" json:"preferred_time,omitempty"`
	CustomDescription string        `db:"custom_description" json:"custom_description,omitempty"`
	ReferenceImages   []string      `db:"reference_images" json:"reference_images,omitempty"`
	Status            BookingStatus `db:"status" json:"status"`
	// Notes is a newline-joined append-only log of status, cancellation and
	// modification events.
	Notes     string     `db:"notes" json:"notes"`
	DesignID  *uuid.UUID `db:"design_id" json:"design_id,omitempty"`
	ClientID  *uuid.UUID `db:"client_id" json:"client_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// AppendNote joins a new entry onto an existing notes log, preserving prior
// entries.
func AppendNote(existing, entry string) string {
	if existing == "" {
		return entry
	}
	return existing + "\n" + entry
}

// BookingRepo is the record-gateway contract for bookings. Bookings are never
// hard-deleted, so there is no delete operation.
type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetAllBookings(ctx context.Context) ([]*Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingsByField(ctx context.Context, field, value string) ([]*Booking, error)
	CountBookings(ctx context.Context) (int64, error)
	CountBookingsByField(ctx context.Context, field, value string) (int64, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Booking, error)
}
