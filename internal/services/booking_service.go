package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melvink/api/internal/helpers"
	"github.com/melvink/api/internal/models"
)

type BookingService struct {
	bookingRepo models.BookingRepo
	designRepo  models.DesignRepo
	auditRepo   models.AuditRepo
	uploader    helpers.ImageUploader
	logger      *slog.Logger
}

func NewBookingService(
	bookingRepo models.BookingRepo,
	designRepo models.DesignRepo,
	auditRepo models.AuditRepo,
	uploader helpers.ImageUploader,
	logger *slog.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		designRepo:  designRepo,
		auditRepo:   auditRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

type CreateBookingInput struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone"`
	TattooType        string `json:"tattoo_type" validate:"required"`
	BodyPart          string `json:"body_part" validate:"required"`
	PreferredDate     string `json:"preferred_date" validate:"required"`
	PreferredTime     string `json:"preferred_time"`
	CustomDescription string `json:"custom_description"`
	DesignID          string `json:"design_id"`
	// ReferenceImages carries the raw image payloads (data URIs or file
	// paths) to upload, in submission order.
	ReferenceImages []string   `json:"reference_images"`
	ClientID        *uuid.UUID `json:"-"`
}

// CreateBooking builds and persists a new booking request. Status is forced
// to pending and notes to empty regardless of input. A design lookup or
// image upload failure aborts the whole creation; nothing is saved.
func (bs *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", input.PreferredDate); err != nil {
		return nil, fmt.Errorf("invalid preferred date: %v", err)
	}

	booking := &models.Booking{
		ClientName:        input.Name,
		ClientEmail:       input.Email,
		ClientPhone:       input.Phone,
		TattooType:        input.TattooType,
		BodyPart:          input.BodyPart,
		PreferredDate:     input.PreferredDate,
		PreferredTime:     input.PreferredTime,
		CustomDescription: input.CustomDescription,
		Status:            models.StatusPending,
		Notes:             "",
		ClientID:          input.ClientID,
	}

	if err := models.Validate.Struct(booking); err != nil {
		return nil, err
	}

	if input.DesignID != "" {
		designID, err := uuid.Parse(input.DesignID)
		if err != nil {
			return nil, fmt.Errorf("invalid design ID: %v", err)
		}
		design, err := bs.designRepo.GetDesignByID(ctx, designID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve design: %v", err)
		}
		if design == nil {
			return nil, fmt.Errorf("design not found")
		}
		booking.DesignID = &design.ID
	}

	if len(input.ReferenceImages) > 0 {
		urls, err := bs.uploader.UploadImages(ctx, input.ReferenceImages, helpers.ReferenceImageFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload reference images: %v", err)
		}
		booking.ReferenceImages = urls
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %v", err)
	}
	return created, nil
}

// UpdateStatus transitions a booking to the given status from any state. A
// non-empty notes value overwrites the notes field; cancel and modification
// requests append instead.
func (bs *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus, notes string) (*models.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid booking status: %s", status)
	}

	fields := map[string]interface{}{"status": status}
	if notes != "" {
		fields["notes"] = notes
	}

	updated, err := bs.bookingRepo.UpdateBooking(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %v", err)
	}

	bs.recordAudit(ctx, id, models.AuditKindStatus, fmt.Sprintf("status set to %s", status))
	return updated, nil
}

// ConfirmBooking transitions to confirmed; a non-empty notes value
// overwrites the notes field.
func (bs *BookingService) ConfirmBooking(ctx context.Context, id uuid.UUID, notes string) (*models.Booking, error) {
	return bs.UpdateStatus(ctx, id, models.StatusConfirmed, notes)
}

// CancelBooking transitions to cancelled. A non-empty reason appends a
// "Cancellation: <reason>" line to the existing notes; an empty reason
// leaves notes untouched.
func (bs *BookingService) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %v", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}

	fields := map[string]interface{}{"status": models.StatusCancelled}
	if reason != "" {
		fields["notes"] = models.AppendNote(booking.Notes, "Cancellation: "+reason)
	}

	updated, err := bs.bookingRepo.UpdateBooking(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %v", err)
	}

	bs.recordAudit(ctx, id, models.AuditKindCancellation, reason)
	return updated, nil
}

// RequestModification appends a "Modification Request: <text>" line and
// forces the status back to pending for review, regardless of current state.
func (bs *BookingService) RequestModification(ctx context.Context, id uuid.UUID, requestText string) (*models.Booking, error) {
	if strings.TrimSpace(requestText) == "" {
		return nil, fmt.Errorf("modification request text is required")
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %v", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}

	fields := map[string]interface{}{
		"status": models.StatusPending,
		"notes":  models.AppendNote(booking.Notes, "Modification Request: "+requestText),
	}

	updated, err := bs.bookingRepo.UpdateBooking(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to request modification: %v", err)
	}

	bs.recordAudit(ctx, id, models.AuditKindModification, requestText)
	return updated, nil
}

func (bs *BookingService) GetAllBookings(ctx context.Context) ([]*models.Booking, error) {
	bookings, err := bs.bookingRepo.GetAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %v", err)
	}
	return bookings, nil
}

func (bs *BookingService) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %v", err)
	}
	return booking, nil
}

func (bs *BookingService) GetBookingsByStatus(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid booking status: %s", status)
	}
	bookings, err := bs.bookingRepo.GetBookingsByField(ctx, "status", string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by status: %v", err)
	}
	return bookings, nil
}

func (bs *BookingService) GetBookingsByDate(ctx context.Context, date string) ([]*models.Booking, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}
	bookings, err := bs.bookingRepo.GetBookingsByField(ctx, "preferred_date", date)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by date: %v", err)
	}
	return bookings, nil
}

// GetUserBookings resolves the identity's email (falling back to username)
// and returns that user's bookings newest-first. An exact match is tried
// first; when it finds nothing, all bookings are scanned with a
// case-insensitive compare. An unresolvable identity yields an empty list,
// not an error.
func (bs *BookingService) GetUserBookings(ctx context.Context, user *models.AuthUser) ([]*models.Booking, error) {
	if user == nil {
		return []*models.Booking{}, nil
	}

	lookup := user.Email
	if lookup == "" {
		lookup = user.Username
	}
	if lookup == "" {
		return []*models.Booking{}, nil
	}

	bookings, err := bs.bookingRepo.GetBookingsByField(ctx, "client_email", lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %v", err)
	}
	if len(bookings) > 0 {
		return bookings, nil
	}

	// full scan with a case-insensitive compare; fine at this data volume
	all, err := bs.bookingRepo.GetAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bookings: %v", err)
	}
	matched := make([]*models.Booking, 0)
	for _, b := range all {
		if strings.EqualFold(b.ClientEmail, lookup) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetUpcomingBookings returns bookings whose preferred date is today or
// later, soonest first.
func (bs *BookingService) GetUpcomingBookings(ctx context.Context) ([]*models.Booking, error) {
	all, err := bs.bookingRepo.GetAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %v", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	upcoming := make([]*models.Booking, 0)
	for _, b := range all {
		if b.PreferredDate >= today {
			upcoming = append(upcoming, b)
		}
	}
	for i := 0; i < len(upcoming); i++ {
		for j := i + 1; j < len(upcoming); j++ {
			if upcoming[j].PreferredDate < upcoming[i].PreferredDate {
				upcoming[i], upcoming[j] = upcoming[j], upcoming[i]
			}
		}
	}
	return upcoming, nil
}

// AvailableTimeSlots returns the hourly slots from 09:00 to 17:00 not taken
// by a confirmed booking on the given date.
func (bs *BookingService) AvailableTimeSlots(ctx context.Context, date string) ([]string, error) {
	bookings, err := bs.GetBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool)
	for _, b := range bookings {
		if b.Status == models.StatusConfirmed {
			taken[b.PreferredTime] = true
		}
	}

	slots := make([]string, 0, 9)
	for hour := 9; hour < 18; hour++ {
		slot := fmt.Sprintf("%02d:00", hour)
		if !taken[slot] {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// RemoveReferenceImage splices the image at the given index out of the
// booking's reference-image list and appends an audit note. This is the
// "delete" path for booking-reference pseudo-designs; no record is deleted.
func (bs *BookingService) RemoveReferenceImage(ctx context.Context, id uuid.UUID, index int) (*models.Booking, error) {
	booking, err := bs.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %v", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking not found")
	}
	if index < 0 || index >= len(booking.ReferenceImages) {
		return nil, fmt.Errorf("reference image index %d out of range", index)
	}

	images := make([]string, 0, len(booking.ReferenceImages)-1)
	images = append(images, booking.ReferenceImages[:index]...)
	images = append(images, booking.ReferenceImages[index+1:]...)

	note := fmt.Sprintf("Removed reference image %d", index+1)
	fields := map[string]interface{}{
		"reference_images": images,
		"notes":            models.AppendNote(booking.Notes, note),
	}

	updated, err := bs.bookingRepo.UpdateBooking(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to remove reference image: %v", err)
	}

	bs.recordAudit(ctx, id, models.AuditKindImageRemoved, note)
	return updated, nil
}

// GetAuditTrail returns the structured event log for a booking, oldest
// first.
func (bs *BookingService) GetAuditTrail(ctx context.Context, id uuid.UUID) ([]*models.AuditEntry, error) {
	if bs.auditRepo == nil {
		return nil, nil
	}
	entries, err := bs.auditRepo.GetAuditTrail(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail: %v", err)
	}
	return entries, nil
}

// recordAudit mirrors a notes-log event into the structured audit store.
// Audit writes are best-effort: a failure is logged, never surfaced.
func (bs *BookingService) recordAudit(ctx context.Context, id uuid.UUID, kind, text string) {
	if bs.auditRepo == nil {
		return
	}
	_, err := bs.auditRepo.RecordAuditEntry(ctx, &models.AuditEntry{
		BookingID: id.String(),
		Kind:      kind,
		Text:      text,
	})
	if err != nil && bs.logger != nil {
		bs.logger.Error("Failed to record audit entry", "booking_id", id, "kind", kind, "error", err)
	}
}
