package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

func sortBookingsNewestFirst(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func (su *SupabaseRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	bookingData := map[string]interface{}{
		"id":                 booking.ID,
		"client_name":        booking.ClientName,
		"client_email":       booking.ClientEmail,
		"client_phone":       booking.ClientPhone,
		"tattoo_type":        booking.TattooType,
		"body_part":          booking.BodyPart,
		"preferred_date":     booking.PreferredDate,
		"preferred_time":     booking.PreferredTime,
		"custom_description": booking.CustomDescription,
		"reference_images":   booking.ReferenceImages,
		"status":             booking.Status,
		"notes":              booking.Notes,
		"design_id":          booking.DesignID,
		"client_id":          booking.ClientID,
		"created_at":         booking.CreatedAt,
		"updated_at":         booking.UpdatedAt,
	}

	raw, count, err := su.supabaseClient.
		From(BookingsTable).
		Insert(bookingData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %v", err)
	}

	var created []Booking
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created booking: %v", err)
	}
	if count == 0 || len(created) == 0 {
		return nil, fmt.Errorf("no booking data returned after create")
	}

	return &created[0], nil
}

func (su *SupabaseRepo) GetAllBookings(ctx context.Context) ([]*Booking, error) {
	raw, _, err := su.supabaseClient.
		From(BookingsTable).
		Select("*", "exact", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %v", err)
	}

	var rows []Booking
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookings: %v", err)
	}

	bookings := make([]*Booking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, &rows[i])
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func (su *SupabaseRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.
		From(BookingsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by ID: %v", err)
	}

	var rows []Booking
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking rows: %v", err)
	}
	if len(rows) == 0 {
		// not-found is a nil result, not an error
		return nil, nil
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) GetBookingsByField(ctx context.Context, field, value string) ([]*Booking, error) {
	raw, _, err := su.supabaseClient.
		From(BookingsTable).
		Select("*", "exact", false).
		Eq(field, value).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by %s: %v", field, err)
	}

	var rows []Booking
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookings: %v", err)
	}

	bookings := make([]*Booking, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, &rows[i])
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func (su *SupabaseRepo) CountBookings(ctx context.Context) (int64, error) {
	_, count, err := su.supabaseClient.
		From(BookingsTable).
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %v", err)
	}
	return count, nil
}

func (su *SupabaseRepo) CountBookingsByField(ctx context.Context, field, value string) (int64, error) {
	_, count, err := su.supabaseClient.
		From(BookingsTable).
		Select("id", "exact", false).
		Eq(field, value).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by %s: %v", field, err)
	}
	return count, nil
}

func (su *SupabaseRepo) UpdateBooking(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Booking, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	fields["updated_at"] = time.Now().UTC()

	raw, count, err := su.supabaseClient.
		From(BookingsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no booking found to update")
	}

	var rows []Booking
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated booking: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no booking data returned after update")
	}

	return &rows[0], nil
}
