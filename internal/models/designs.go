package models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DesignSize struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Design is a tattoo design available for booking. Availability is a
// tri-state read: an absent value is treated as available.
type Design struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	Name             string       `db:"name" json:"name" validate:"required"`
	Description      string       `db:"description" json:"description,omitempty"`
	Category         string       `db:"category" json:"category,omitempty"`
	Available        *bool        `db:"available" json:"available,omitempty"`
	Sizes            []DesignSize `db:"sizes" json:"sizes,omitempty"`
	Image            string       `db:"image" json:"image,omitempty"`
	SubmittedByEmail string       `db:"submitted_by_email" json:"submitted_by_email,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// IsAvailable reads `available != false`: true and absent both count as
// available.
func (d *Design) IsAvailable() bool {
	return d.Available == nil || *d.Available
}

func (d *Design) PriceRange() (min, max float64, ok bool) {
	if len(d.Sizes) == 0 {
		return 0, 0, false
	}
	min, max = d.Sizes[0].Price, d.Sizes[0].Price
	for _, s := range d.Sizes[1:] {
		if s.Price < min {
			min = s.Price
		}
		if s.Price > max {
			max = s.Price
		}
	}
	return min, max, true
}

// Gallery item kinds. A "booking-reference" item is not a persisted design;
// it is synthesized at read time from a booking's reference-image list.
const (
	GalleryKindDesign           = "design"
	GalleryKindBookingReference = "booking-reference"
)

// GalleryItem is the shared display projection over real designs and
// booking-reference pseudo-designs.
type GalleryItem struct {
	ID           string       `json:"id"`
	Kind         string       `json:"kind"`
	BookingID    string       `json:"booking_id,omitempty"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Category     string       `json:"category,omitempty"`
	Image        string       `json:"image,omitempty"`
	Available    bool         `json:"available"`
	Sizes        []DesignSize `json:"sizes,omitempty"`
	BookingCount int64        `json:"booking_count"`
	CreatedAt    time.Time    `json:"created_at"`
}

// GalleryItemFromDesign projects a persisted design into the gallery shape.
func GalleryItemFromDesign(d *Design, bookingCount int64) GalleryItem {
	return GalleryItem{
		ID:           d.ID.String(),
		Kind:         GalleryKindDesign,
		Name:         d.Name,
		Description:  d.Description,
		Category:     d.Category,
		Image:        d.Image,
		Available:    d.IsAvailable(),
		Sizes:        d.Sizes,
		BookingCount: bookingCount,
		CreatedAt:    d.CreatedAt,
	}
}

// GalleryItemsFromBooking synthesizes a pseudo-design per reference image on
// the booking. The composite ID encodes the owning booking and the image
// index so "deletion" can splice the image back out of the booking.
func GalleryItemsFromBooking(b *Booking) []GalleryItem {
	items := make([]GalleryItem, 0, len(b.ReferenceImages))
	for i, img := range b.ReferenceImages {
		if img == "" {
			continue
		}
		desc := b.CustomDescription
		if desc == "" {
			desc = "Reference image from booking submission"
		}
		items = append(items, GalleryItem{
			ID:          fmt.Sprintf("booking-%s-img-%d", b.ID, i),
			Kind:        GalleryKindBookingReference,
			BookingID:   b.ID.String(),
			Name:        fmt.Sprintf("Reference Image from Booking - %s", b.PreferredDate),
			Description: desc,
			Category:    "Booking Reference",
			Image:       img,
			Available:   true,
			CreatedAt:   b.CreatedAt,
		})
	}
	return items
}

type DesignRepo interface {
	CreateDesign(ctx context.Context, design *Design) (*Design, error)
	GetAllDesigns(ctx context.Context) ([]*Design, error)
	GetDesignByID(ctx context.Context, id uuid.UUID) (*Design, error)
	GetDesignsByField(ctx context.Context, field, value string) ([]*Design, error)
	SearchDesigns(ctx context.Context, term string) ([]*Design, error)
	CountDesigns(ctx context.Context) (int64, error)
	UpdateDesign(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Design, error)
	DeleteDesign(ctx context.Context, id uuid.UUID) error
}
