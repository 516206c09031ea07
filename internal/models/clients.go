package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Client is a booking requester's profile, keyed by email. Uniqueness is
// enforced by find-by-email then update-or-create rather than a server-side
// constraint. Clients are never deleted.
type Client struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name" validate:"required"`
	Email string    `db:"email" json:"email" validate:"required,email"`
	Phone string    `db:"phone" json:"phone,omitempty"`
	// PreferredContact defaults to "email".
	PreferredContact  string    `db:"preferred_contact" json:"preferred_contact"`
	Allergies         string    `db:"allergies" json:"allergies,omitempty"`
	MedicalConditions string    `db:"medical_conditions" json:"medical_conditions,omitempty"`
	PreviousTattoos   string    `db:"previous_tattoos" json:"previous_tattoos,omitempty"`
	BookingHistory    []string  `db:"booking_history" json:"booking_history,omitempty"`
	Preferences       string    `db:"preferences" json:"preferences,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

type ClientRepo interface {
	CreateClient(ctx context.Context, client *Client) (*Client, error)
	GetAllClients(ctx context.Context) ([]*Client, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (*Client, error)
	GetClientByEmail(ctx context.Context, email string) (*Client, error)
	SearchClients(ctx context.Context, term string) ([]*Client, error)
	CountClients(ctx context.Context) (int64, error)
	UpdateClient(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Client, error)
}
