package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/melvink/api/internal/helpers"
	"github.com/melvink/api/internal/models"
)

type DesignService struct {
	designRepo  models.DesignRepo
	bookingRepo models.BookingRepo
	uploader    helpers.ImageUploader
}

func NewDesignService(designRepo models.DesignRepo, bookingRepo models.BookingRepo, uploader helpers.ImageUploader) *DesignService {
	return &DesignService{designRepo: designRepo, bookingRepo: bookingRepo, uploader: uploader}
}

type DesignInput struct {
	Name             string              `json:"name" validate:"required"`
	Description      string              `json:"description"`
	Category         string              `json:"category"`
	Available        *bool               `json:"available"`
	Sizes            []models.DesignSize `json:"sizes"`
	Image            string              `json:"image"`
	SubmittedByEmail string              `json:"submitted_by_email"`
}

// CreateDesign persists a new design. A non-empty image payload is uploaded
// first; the stored image field holds the hosted URL.
func (ds *DesignService) CreateDesign(ctx context.Context, input DesignInput) (*models.Design, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, err
	}

	design := &models.Design{
		Name:             input.Name,
		Description:      input.Description,
		Category:         input.Category,
		Available:        input.Available,
		Sizes:            input.Sizes,
		SubmittedByEmail: input.SubmittedByEmail,
	}

	if input.Image != "" {
		urls, err := ds.uploader.UploadImages(ctx, []string{input.Image}, helpers.DesignFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload design image: %v", err)
		}
		if len(urls) > 0 {
			design.Image = urls[0]
		}
	}

	created, err := ds.designRepo.CreateDesign(ctx, design)
	if err != nil {
		return nil, fmt.Errorf("failed to create design: %v", err)
	}
	return created, nil
}

func (ds *DesignService) GetAllDesigns(ctx context.Context) ([]*models.Design, error) {
	designs, err := ds.designRepo.GetAllDesigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get designs: %v", err)
	}
	return designs, nil
}

// GetAvailableDesigns filters out designs explicitly marked unavailable.
// An absent flag counts as available.
func (ds *DesignService) GetAvailableDesigns(ctx context.Context) ([]*models.Design, error) {
	designs, err := ds.designRepo.GetAllDesigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get designs: %v", err)
	}
	available := make([]*models.Design, 0, len(designs))
	for _, d := range designs {
		if d.IsAvailable() {
			available = append(available, d)
		}
	}
	return available, nil
}

func (ds *DesignService) GetDesignByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	design, err := ds.designRepo.GetDesignByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get design: %v", err)
	}
	return design, nil
}

func (ds *DesignService) GetDesignsByCategory(ctx context.Context, category string) ([]*models.Design, error) {
	designs, err := ds.designRepo.GetDesignsByField(ctx, "category", category)
	if err != nil {
		return nil, fmt.Errorf("failed to get designs by category: %v", err)
	}
	return designs, nil
}

func (ds *DesignService) SearchDesigns(ctx context.Context, term string) ([]*models.Design, error) {
	if strings.TrimSpace(term) == "" {
		return []*models.Design{}, nil
	}
	designs, err := ds.designRepo.SearchDesigns(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search designs: %v", err)
	}
	return designs, nil
}

func (ds *DesignService) UpdateDesign(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Design, error) {
	updated, err := ds.designRepo.UpdateDesign(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update design: %v", err)
	}
	return updated, nil
}

// UpdateAvailability flips the tri-state availability flag. Passing nil
// clears it, which reads back as available.
func (ds *DesignService) UpdateAvailability(ctx context.Context, id uuid.UUID, available *bool) (*models.Design, error) {
	updated, err := ds.designRepo.UpdateDesign(ctx, id, map[string]interface{}{
		"available": available,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update design availability: %v", err)
	}
	return updated, nil
}

func (ds *DesignService) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	if err := ds.designRepo.DeleteDesign(ctx, id); err != nil {
		return fmt.Errorf("failed to delete design: %v", err)
	}
	return nil
}

// BookingCount reports how many bookings reference the design.
func (ds *DesignService) BookingCount(ctx context.Context, id uuid.UUID) (int64, error) {
	count, err := ds.bookingRepo.CountBookingsByField(ctx, "design_id", id.String())
	if err != nil {
		return 0, fmt.Errorf("failed to count design bookings: %v", err)
	}
	return count, nil
}

// GetUserDesigns returns the designs submitted under the given email.
func (ds *DesignService) GetUserDesigns(ctx context.Context, email string) ([]*models.Design, error) {
	if email == "" {
		return []*models.Design{}, nil
	}
	designs, err := ds.designRepo.GetDesignsByField(ctx, "submitted_by_email", email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user designs: %v", err)
	}
	return designs, nil
}

// Gallery merges persisted designs with the pseudo-designs synthesized from
// booking reference images into one display list. Real designs come first,
// each carrying its booking count; pseudo-designs follow in booking order.
func (ds *DesignService) Gallery(ctx context.Context) ([]models.GalleryItem, error) {
	designs, err := ds.designRepo.GetAllDesigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get designs: %v", err)
	}
	bookings, err := ds.bookingRepo.GetAllBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %v", err)
	}

	items := make([]models.GalleryItem, 0, len(designs))
	for _, d := range designs {
		count, err := ds.bookingRepo.CountBookingsByField(ctx, "design_id", d.ID.String())
		if err != nil {
			return nil, fmt.Errorf("failed to count design bookings: %v", err)
		}
		items = append(items, models.GalleryItemFromDesign(d, count))
	}
	for _, b := range bookings {
		items = append(items, models.GalleryItemsFromBooking(b)...)
	}
	return items, nil
}

// UserGallery is Gallery scoped to one user: their submitted designs plus
// the reference images from their own bookings.
func (ds *DesignService) UserGallery(ctx context.Context, email string) ([]models.GalleryItem, error) {
	if email == "" {
		return []models.GalleryItem{}, nil
	}

	designs, err := ds.GetUserDesigns(ctx, email)
	if err != nil {
		return nil, err
	}
	bookings, err := ds.bookingRepo.GetBookingsByField(ctx, "client_email", email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %v", err)
	}

	items := make([]models.GalleryItem, 0, len(designs))
	for _, d := range designs {
		items = append(items, models.GalleryItemFromDesign(d, 0))
	}
	for _, b := range bookings {
		items = append(items, models.GalleryItemsFromBooking(b)...)
	}
	return items, nil
}
