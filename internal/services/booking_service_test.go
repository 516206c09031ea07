package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/melvink/api/internal/models"
)

func newTestBookingService() (*BookingService, *fakeBookingRepo, *fakeDesignRepo, *fakeAuditRepo, *fakeUploader) {
	bookingRepo := newFakeBookingRepo()
	designRepo := newFakeDesignRepo()
	auditRepo := &fakeAuditRepo{}
	uploader := &fakeUploader{}
	svc := NewBookingService(bookingRepo, designRepo, auditRepo, uploader, nil)
	return svc, bookingRepo, designRepo, auditRepo, uploader
}

func janeDoeInput() CreateBookingInput {
	return CreateBookingInput{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		TattooType:    models.TattooCustom,
		BodyPart:      "arm",
		PreferredDate: "2025-09-05",
		PreferredTime: "10:00",
	}
}

func TestCreateBookingStartsPendingWithEmptyNotes(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	booking, err := svc.CreateBooking(context.Background(), janeDoeInput())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != models.StatusPending {
		t.Errorf("new booking status = %q, want pending", booking.Status)
	}
	if booking.Notes != "" {
		t.Errorf("new booking notes = %q, want empty", booking.Notes)
	}
	if booking.ID == uuid.Nil {
		t.Error("new booking should have an ID assigned")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, repo, _, _, _ := newTestBookingService()

	tests := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"missing name", func(in *CreateBookingInput) { in.Name = "" }},
		{"bad email", func(in *CreateBookingInput) { in.Email = "not-an-email" }},
		{"missing tattoo type", func(in *CreateBookingInput) { in.TattooType = "" }},
		{"unknown tattoo type", func(in *CreateBookingInput) { in.TattooType = "stick-and-poke" }},
		{"unknown body part", func(in *CreateBookingInput) { in.BodyPart = "forehead" }},
		{"bad date", func(in *CreateBookingInput) { in.PreferredDate = "September 5th" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := janeDoeInput()
			tt.mutate(&input)
			if _, err := svc.CreateBooking(context.Background(), input); err == nil {
				t.Error("expected a validation error")
			}
		})
	}

	if count, _ := repo.CountBookings(context.Background()); count != 0 {
		t.Errorf("invalid input should not persist anything, found %d bookings", count)
	}
}

func TestCreateBookingUploadsReferenceImages(t *testing.T) {
	svc, _, _, _, uploader := newTestBookingService()

	input := janeDoeInput()
	input.ReferenceImages = []string{"data:image/png;base64,aaa", "data:image/png;base64,bbb"}

	booking, err := svc.CreateBooking(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if len(booking.ReferenceImages) != 2 {
		t.Fatalf("expected 2 uploaded URLs, got %d", len(booking.ReferenceImages))
	}
	for _, url := range booking.ReferenceImages {
		if !strings.HasPrefix(url, "https://") {
			t.Errorf("stored image %q is not an uploaded URL", url)
		}
	}
	if len(uploader.uploaded) != 2 {
		t.Errorf("uploader saw %d images, want 2", len(uploader.uploaded))
	}
}

func TestCreateBookingAbortsOnUploadFailure(t *testing.T) {
	svc, repo, _, _, uploader := newTestBookingService()
	uploader.failNext = true

	input := janeDoeInput()
	input.ReferenceImages = []string{"data:image/png;base64,aaa"}

	if _, err := svc.CreateBooking(context.Background(), input); err == nil {
		t.Fatal("expected upload failure to abort creation")
	}
	if count, _ := repo.CountBookings(context.Background()); count != 0 {
		t.Error("failed creation should persist nothing")
	}
}

func TestCreateBookingResolvesDesign(t *testing.T) {
	svc, _, designRepo, _, _ := newTestBookingService()

	design, _ := designRepo.CreateDesign(context.Background(), &models.Design{Name: "Serpent"})

	input := janeDoeInput()
	input.DesignID = design.ID.String()
	booking, err := svc.CreateBooking(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.DesignID == nil || *booking.DesignID != design.ID {
		t.Error("booking should link the resolved design")
	}

	input.DesignID = uuid.New().String()
	if _, err := svc.CreateBooking(context.Background(), input); err == nil {
		t.Error("unknown design ID should abort creation")
	}
}

func TestUpdateStatusOverwritesNotes(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()
	booking, _ := svc.CreateBooking(context.Background(), janeDoeInput())

	updated, err := svc.UpdateStatus(context.Background(), booking.ID, models.StatusCompleted, "great session")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", updated.Status)
	}
	if updated.Notes != "great session" {
		t.Errorf("notes = %q, want overwritten value", updated.Notes)
	}

	// empty notes leave the existing log untouched
	updated, err = svc.UpdateStatus(context.Background(), booking.ID, models.StatusPending, "")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Notes != "great session" {
		t.Errorf("empty notes should not clear the log, got %q", updated.Notes)
	}

	if _, err := svc.UpdateStatus(context.Background(), booking.ID, "archived", ""); err == nil {
		t.Error("unknown status should be rejected")
	}
}

func TestCancelBookingAppendsReason(t *testing.T) {
	svc, _, _, auditRepo, _ := newTestBookingService()
	booking, _ := svc.CreateBooking(context.Background(), janeDoeInput())

	updated, err := svc.CancelBooking(context.Background(), booking.ID, "schedule conflict")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Errorf("status = %q, want cancelled", updated.Status)
	}
	if updated.Notes != "Cancellation: schedule conflict" {
		t.Errorf("notes = %q, want cancellation entry", updated.Notes)
	}

	// a second cancellation appends rather than overwrites
	updated, err = svc.CancelBooking(context.Background(), booking.ID, "client moved")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	want := "Cancellation: schedule conflict\nCancellation: client moved"
	if updated.Notes != want {
		t.Errorf("notes = %q, want %q", updated.Notes, want)
	}

	trail, _ := auditRepo.GetAuditTrail(context.Background(), booking.ID.String())
	if len(trail) != 2 {
		t.Errorf("expected 2 audit entries, got %d", len(trail))
	}
}

func TestCancelBookingWithoutReasonLeavesNotes(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()
	booking, _ := svc.CreateBooking(context.Background(), janeDoeInput())
	_, _ = svc.ConfirmBooking(context.Background(), booking.ID, "deposit paid")

	updated, err := svc.CancelBooking(context.Background(), booking.ID, "")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if updated.Notes != "deposit paid" {
		t.Errorf("empty reason should leave notes untouched, got %q", updated.Notes)
	}
}

func TestRequestModificationAppendsAndResetsStatus(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()
	booking, _ := svc.CreateBooking(context.Background(), janeDoeInput())
	_, _ = svc.ConfirmBooking(context.Background(), booking.ID, "deposit paid")

	updated, err := svc.RequestModification(context.Background(), booking.ID, "move to the 12th")
	if err != nil {
		t.Fatalf("RequestModification: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("status = %q, modification should force pending", updated.Status)
	}
	want := "deposit paid\nModification Request: move to the 12th"
	if updated.Notes != want {
		t.Errorf("notes = %q, want %q", updated.Notes, want)
	}

	if _, err := svc.RequestModification(context.Background(), booking.ID, "   "); err == nil {
		t.Error("blank request text should be rejected")
	}
}

func TestCancelledBookingIsNotTerminal(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()
	booking, _ := svc.CreateBooking(context.Background(), janeDoeInput())
	_, _ = svc.CancelBooking(context.Background(), booking.ID, "no show")

	updated, err := svc.ConfirmBooking(context.Background(), booking.ID, "")
	if err != nil {
		t.Fatalf("ConfirmBooking after cancel: %v", err)
	}
	if updated.Status != models.StatusConfirmed {
		t.Errorf("cancelled bookings can be re-confirmed, got status %q", updated.Status)
	}
}

func TestGetUserBookingsCaseInsensitiveFallback(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	input := janeDoeInput()
	input.Email = "Jane@Example.com"
	_, _ = svc.CreateBooking(context.Background(), input)

	// exact match
	bookings, err := svc.GetUserBookings(context.Background(), &models.AuthUser{Email: "Jane@Example.com"})
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("exact match found %d bookings, want 1", len(bookings))
	}

	// same address in a different case falls back to the full scan
	bookings, err = svc.GetUserBookings(context.Background(), &models.AuthUser{Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("case-insensitive fallback found %d bookings, want 1", len(bookings))
	}

	// username is used when email is absent
	bookings, _ = svc.GetUserBookings(context.Background(), &models.AuthUser{Username: "JANE@EXAMPLE.COM"})
	if len(bookings) != 1 {
		t.Errorf("username fallback found %d bookings, want 1", len(bookings))
	}

	// unresolvable identity yields an empty list, not an error
	bookings, err = svc.GetUserBookings(context.Background(), &models.AuthUser{})
	if err != nil || len(bookings) != 0 {
		t.Errorf("blank identity should yield an empty list, got %d, err %v", len(bookings), err)
	}
	bookings, err = svc.GetUserBookings(context.Background(), nil)
	if err != nil || len(bookings) != 0 {
		t.Errorf("nil identity should yield an empty list, got %d, err %v", len(bookings), err)
	}
}

func TestGetUserBookingsNewestFirst(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	first, _ := svc.CreateBooking(context.Background(), janeDoeInput())
	second, _ := svc.CreateBooking(context.Background(), janeDoeInput())

	bookings, err := svc.GetUserBookings(context.Background(), &models.AuthUser{Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("found %d bookings, want 2", len(bookings))
	}
	if bookings[0].ID != second.ID || bookings[1].ID != first.ID {
		t.Error("bookings should be ordered newest first")
	}
}

func TestAvailableTimeSlots(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	input := janeDoeInput()
	input.PreferredTime = "10:00"
	booking, _ := svc.CreateBooking(context.Background(), input)

	// pending bookings do not block slots
	slots, err := svc.AvailableTimeSlots(context.Background(), "2025-09-05")
	if err != nil {
		t.Fatalf("AvailableTimeSlots: %v", err)
	}
	if len(slots) != 9 {
		t.Fatalf("expected all 9 slots while pending, got %d", len(slots))
	}

	_, _ = svc.ConfirmBooking(context.Background(), booking.ID, "")
	slots, _ = svc.AvailableTimeSlots(context.Background(), "2025-09-05")
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots after confirmation, got %d", len(slots))
	}
	for _, s := range slots {
		if s == "10:00" {
			t.Error("confirmed slot 10:00 should be excluded")
		}
	}

	if _, err := svc.AvailableTimeSlots(context.Background(), "next tuesday"); err == nil {
		t.Error("malformed date should be rejected")
	}
}

func TestRemoveReferenceImage(t *testing.T) {
	svc, _, _, auditRepo, _ := newTestBookingService()

	input := janeDoeInput()
	input.ReferenceImages = []string{"data:image/png;base64,a", "data:image/png;base64,b", "data:image/png;base64,c"}
	booking, _ := svc.CreateBooking(context.Background(), input)
	second := booking.ReferenceImages[1]

	updated, err := svc.RemoveReferenceImage(context.Background(), booking.ID, 0)
	if err != nil {
		t.Fatalf("RemoveReferenceImage: %v", err)
	}
	if len(updated.ReferenceImages) != 2 {
		t.Fatalf("expected 2 images after removal, got %d", len(updated.ReferenceImages))
	}
	if updated.ReferenceImages[0] != second {
		t.Error("remaining images should keep their relative order")
	}
	if updated.Notes != "Removed reference image 1" {
		t.Errorf("notes = %q, want removal entry", updated.Notes)
	}

	if _, err := svc.RemoveReferenceImage(context.Background(), booking.ID, 5); err == nil {
		t.Error("out-of-range index should be rejected")
	}

	trail, _ := auditRepo.GetAuditTrail(context.Background(), booking.ID.String())
	if len(trail) != 1 {
		t.Errorf("expected 1 audit entry, got %d", len(trail))
	}
}

func TestGetBookingsByStatusAndDate(t *testing.T) {
	svc, _, _, _, _ := newTestBookingService()

	a, _ := svc.CreateBooking(context.Background(), janeDoeInput())
	other := janeDoeInput()
	other.PreferredDate = "2025-09-09"
	_, _ = svc.CreateBooking(context.Background(), other)
	_, _ = svc.ConfirmBooking(context.Background(), a.ID, "")

	confirmed, err := svc.GetBookingsByStatus(context.Background(), models.StatusConfirmed)
	if err != nil {
		t.Fatalf("GetBookingsByStatus: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != a.ID {
		t.Error("expected only the confirmed booking")
	}

	byDate, err := svc.GetBookingsByDate(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("GetBookingsByDate: %v", err)
	}
	if len(byDate) != 1 {
		t.Errorf("expected 1 booking on 2025-09-09, got %d", len(byDate))
	}

	if _, err := svc.GetBookingsByStatus(context.Background(), "archived"); err == nil {
		t.Error("unknown status should be rejected")
	}
}
