package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/melvink/api/internal/models"
)

func newTestDesignService() (*DesignService, *fakeDesignRepo, *fakeBookingRepo) {
	designRepo := newFakeDesignRepo()
	bookingRepo := newFakeBookingRepo()
	return NewDesignService(designRepo, bookingRepo, &fakeUploader{}), designRepo, bookingRepo
}

func TestGetAvailableDesignsTriState(t *testing.T) {
	svc, repo, _ := newTestDesignService()

	truthy, falsy := true, false
	_, _ = repo.CreateDesign(context.Background(), &models.Design{Name: "explicit", Available: &truthy})
	_, _ = repo.CreateDesign(context.Background(), &models.Design{Name: "absent"})
	hidden, _ := repo.CreateDesign(context.Background(), &models.Design{Name: "hidden", Available: &falsy})

	available, err := svc.GetAvailableDesigns(context.Background())
	if err != nil {
		t.Fatalf("GetAvailableDesigns: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 available designs, got %d", len(available))
	}
	for _, d := range available {
		if d.ID == hidden.ID {
			t.Error("explicitly unavailable design should be filtered out")
		}
	}
}

func TestUpdateAvailability(t *testing.T) {
	svc, repo, _ := newTestDesignService()
	design, _ := repo.CreateDesign(context.Background(), &models.Design{Name: "Serpent"})

	falsy := false
	updated, err := svc.UpdateAvailability(context.Background(), design.ID, &falsy)
	if err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if updated.IsAvailable() {
		t.Error("design should read unavailable after the flag is set false")
	}

	// clearing the flag restores the available-by-default read
	updated, err = svc.UpdateAvailability(context.Background(), design.ID, nil)
	if err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if !updated.IsAvailable() {
		t.Error("absent flag should read as available")
	}
}

func TestCreateDesignUploadsImage(t *testing.T) {
	designRepo := newFakeDesignRepo()
	uploader := &fakeUploader{}
	svc := NewDesignService(designRepo, newFakeBookingRepo(), uploader)

	design, err := svc.CreateDesign(context.Background(), DesignInput{
		Name:  "Serpent",
		Image: "data:image/png;base64,abc",
	})
	if err != nil {
		t.Fatalf("CreateDesign: %v", err)
	}
	if design.Image == "" || design.Image == "data:image/png;base64,abc" {
		t.Errorf("stored image should be the hosted URL, got %q", design.Image)
	}

	if _, err := svc.CreateDesign(context.Background(), DesignInput{}); err == nil {
		t.Error("missing name should be rejected")
	}
}

func TestGalleryMergesPseudoDesigns(t *testing.T) {
	svc, designRepo, bookingRepo := newTestDesignService()

	design, _ := designRepo.CreateDesign(context.Background(), &models.Design{Name: "Serpent"})

	bookingSvc := NewBookingService(bookingRepo, designRepo, &fakeAuditRepo{}, &fakeUploader{}, nil)
	input := janeDoeInput()
	input.DesignID = design.ID.String()
	input.ReferenceImages = []string{"data:image/png;base64,a", "data:image/png;base64,b"}
	booking, _ := bookingSvc.CreateBooking(context.Background(), input)

	items, err := svc.Gallery(context.Background())
	if err != nil {
		t.Fatalf("Gallery: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 1 design + 2 pseudo-designs, got %d items", len(items))
	}

	if items[0].Kind != models.GalleryKindDesign {
		t.Errorf("first item kind = %q, want design", items[0].Kind)
	}
	if items[0].BookingCount != 1 {
		t.Errorf("design booking count = %d, want 1", items[0].BookingCount)
	}

	for i, item := range items[1:] {
		if item.Kind != models.GalleryKindBookingReference {
			t.Errorf("item %d kind = %q, want booking-reference", i, item.Kind)
		}
		wantID := fmt.Sprintf("booking-%s-img-%d", booking.ID, i)
		if item.ID != wantID {
			t.Errorf("pseudo-design ID = %q, want %q", item.ID, wantID)
		}
		if item.BookingID != booking.ID.String() {
			t.Errorf("pseudo-design booking ID = %q, want %q", item.BookingID, booking.ID)
		}
		if !item.Available {
			t.Error("pseudo-designs are always available")
		}
	}
}

func TestUserGalleryScopesToIdentity(t *testing.T) {
	svc, designRepo, bookingRepo := newTestDesignService()

	_, _ = designRepo.CreateDesign(context.Background(), &models.Design{
		Name:             "mine",
		SubmittedByEmail: "jane@example.com",
	})
	_, _ = designRepo.CreateDesign(context.Background(), &models.Design{
		Name:             "someone else's",
		SubmittedByEmail: "other@example.com",
	})

	bookingSvc := NewBookingService(bookingRepo, designRepo, &fakeAuditRepo{}, &fakeUploader{}, nil)
	input := janeDoeInput()
	input.ReferenceImages = []string{"data:image/png;base64,a"}
	_, _ = bookingSvc.CreateBooking(context.Background(), input)

	items, err := svc.UserGallery(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("UserGallery: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected own design + own reference image, got %d items", len(items))
	}

	items, err = svc.UserGallery(context.Background(), "")
	if err != nil || len(items) != 0 {
		t.Errorf("blank identity should yield an empty gallery, got %d, err %v", len(items), err)
	}
}

func TestDeleteDesign(t *testing.T) {
	svc, repo, _ := newTestDesignService()
	design, _ := repo.CreateDesign(context.Background(), &models.Design{Name: "Serpent"})

	if err := svc.DeleteDesign(context.Background(), design.ID); err != nil {
		t.Fatalf("DeleteDesign: %v", err)
	}
	got, _ := svc.GetDesignByID(context.Background(), design.ID)
	if got != nil {
		t.Error("deleted design should not be found")
	}
	if err := svc.DeleteDesign(context.Background(), design.ID); err == nil {
		t.Error("deleting a missing design should error")
	}
}
