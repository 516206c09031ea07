package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/melvink/api/internal/models"
)

// In-memory fakes standing in for the hosted record gateway.

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*models.Booking
	clock    time.Time
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*models.Booking),
		clock:    time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeBookingRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	b := *booking
	b.ID = uuid.New()
	b.CreatedAt = f.tick()
	b.UpdatedAt = b.CreatedAt
	f.bookings[b.ID] = &b
	copied := b
	return &copied, nil
}

func (f *fakeBookingRepo) GetAllBookings(_ context.Context) ([]*models.Booking, error) {
	out := make([]*models.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		copied := *b
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) matches(b *models.Booking, field, value string) bool {
	switch field {
	case "client_email":
		return b.ClientEmail == value
	case "status":
		return string(b.Status) == value
	case "preferred_date":
		return b.PreferredDate == value
	case "design_id":
		return b.DesignID != nil && b.DesignID.String() == value
	}
	return false
}

func (f *fakeBookingRepo) GetBookingsByField(ctx context.Context, field, value string) ([]*models.Booking, error) {
	all, _ := f.GetAllBookings(ctx)
	out := make([]*models.Booking, 0)
	for _, b := range all {
		if f.matches(b, field, value) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountBookings(_ context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CountBookingsByField(ctx context.Context, field, value string) (int64, error) {
	matched, _ := f.GetBookingsByField(ctx, field, value)
	return int64(len(matched)), nil
}

func (f *fakeBookingRepo) UpdateBooking(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, fmt.Errorf("no booking found to update")
	}
	for key, value := range fields {
		switch key {
		case "status":
			switch v := value.(type) {
			case models.BookingStatus:
				b.Status = v
			case string:
				b.Status = models.BookingStatus(v)
			}
		case "notes":
			b.Notes = value.(string)
		case "reference_images":
			b.ReferenceImages = value.([]string)
		}
	}
	b.UpdatedAt = f.tick()
	copied := *b
	return &copied, nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*models.Client)}
}

func (f *fakeClientRepo) CreateClient(_ context.Context, client *models.Client) (*models.Client, error) {
	c := *client
	c.ID = uuid.New()
	if c.PreferredContact == "" {
		c.PreferredContact = "email"
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	f.clients[c.ID] = &c
	copied := c
	return &copied, nil
}

func (f *fakeClientRepo) GetAllClients(_ context.Context) ([]*models.Client, error) {
	out := make([]*models.Client, 0, len(f.clients))
	for _, c := range f.clients {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeClientRepo) GetClientByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClientRepo) GetClientByEmail(_ context.Context, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) SearchClients(_ context.Context, term string) ([]*models.Client, error) {
	out := make([]*models.Client, 0)
	for _, c := range f.clients {
		if term != "" && containsFold(c.Name, term) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) CountClients(_ context.Context) (int64, error) {
	return int64(len(f.clients)), nil
}

func (f *fakeClientRepo) UpdateClient(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, fmt.Errorf("no client found to update")
	}
	for key, value := range fields {
		switch key {
		case "name":
			c.Name = value.(string)
		case "phone":
			c.Phone = value.(string)
		case "preferred_contact":
			c.PreferredContact = value.(string)
		case "allergies":
			c.Allergies = value.(string)
		case "medical_conditions":
			c.MedicalConditions = value.(string)
		case "previous_tattoos":
			c.PreviousTattoos = value.(string)
		case "preferences":
			c.Preferences = value.(string)
		case "booking_history":
			c.BookingHistory = value.([]string)
		}
	}
	c.UpdatedAt = time.Now().UTC()
	copied := *c
	return &copied, nil
}

type fakeDesignRepo struct {
	designs map[uuid.UUID]*models.Design
}

func newFakeDesignRepo() *fakeDesignRepo {
	return &fakeDesignRepo{designs: make(map[uuid.UUID]*models.Design)}
}

func (f *fakeDesignRepo) CreateDesign(_ context.Context, design *models.Design) (*models.Design, error) {
	d := *design
	d.ID = uuid.New()
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	f.designs[d.ID] = &d
	copied := d
	return &copied, nil
}

func (f *fakeDesignRepo) GetAllDesigns(_ context.Context) ([]*models.Design, error) {
	out := make([]*models.Design, 0, len(f.designs))
	for _, d := range f.designs {
		copied := *d
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDesignRepo) GetDesignByID(_ context.Context, id uuid.UUID) (*models.Design, error) {
	d, ok := f.designs[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDesignRepo) GetDesignsByField(_ context.Context, field, value string) ([]*models.Design, error) {
	out := make([]*models.Design, 0)
	for _, d := range f.designs {
		match := false
		switch field {
		case "category":
			match = d.Category == value
		case "submitted_by_email":
			match = d.SubmittedByEmail == value
		}
		if match {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDesignRepo) SearchDesigns(_ context.Context, term string) ([]*models.Design, error) {
	out := make([]*models.Design, 0)
	for _, d := range f.designs {
		if containsFold(d.Name, term) {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDesignRepo) CountDesigns(_ context.Context) (int64, error) {
	return int64(len(f.designs)), nil
}

func (f *fakeDesignRepo) UpdateDesign(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*models.Design, error) {
	d, ok := f.designs[id]
	if !ok {
		return nil, fmt.Errorf("no design found to update")
	}
	for key, value := range fields {
		switch key {
		case "name":
			d.Name = value.(string)
		case "available":
			switch v := value.(type) {
			case *bool:
				d.Available = v
			case bool:
				b := v
				d.Available = &b
			case nil:
				d.Available = nil
			}
		}
	}
	d.UpdatedAt = time.Now().UTC()
	copied := *d
	return &copied, nil
}

func (f *fakeDesignRepo) DeleteDesign(_ context.Context, id uuid.UUID) error {
	if _, ok := f.designs[id]; !ok {
		return fmt.Errorf("no design found to delete")
	}
	delete(f.designs, id)
	return nil
}

type fakeAuditRepo struct {
	entries []*models.AuditEntry
}

func (f *fakeAuditRepo) RecordAuditEntry(_ context.Context, entry *models.AuditEntry) (*models.AuditEntry, error) {
	e := *entry
	e.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, &e)
	copied := e
	return &copied, nil
}

func (f *fakeAuditRepo) GetAuditTrail(_ context.Context, bookingID string) ([]*models.AuditEntry, error) {
	out := make([]*models.AuditEntry, 0)
	for _, e := range f.entries {
		if e.BookingID == bookingID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeUploader turns each payload into a deterministic fake URL.
type fakeUploader struct {
	failNext bool
	uploaded []string
}

func (f *fakeUploader) UploadImages(_ context.Context, images []string, folder string) ([]string, error) {
	if f.failNext {
		return nil, fmt.Errorf("upload failed")
	}
	urls := make([]string, 0, len(images))
	for i, img := range images {
		if img == "" {
			continue
		}
		url := fmt.Sprintf("https://cdn.example.com/%s/%d", folder, len(f.uploaded)+i)
		urls = append(urls, url)
	}
	f.uploaded = append(f.uploaded, urls...)
	return urls, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
