package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/melvink/api/internal/models"
)

type ClientService struct {
	clientRepo  models.ClientRepo
	bookingRepo models.BookingRepo
}

func NewClientService(clientRepo models.ClientRepo, bookingRepo models.BookingRepo) *ClientService {
	return &ClientService{clientRepo: clientRepo, bookingRepo: bookingRepo}
}

type ClientInput struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone"`
	PreferredContact  string `json:"preferred_contact"`
	Allergies         string `json:"allergies"`
	MedicalConditions string `json:"medical_conditions"`
	PreviousTattoos   string `json:"previous_tattoos"`
	Preferences       string `json:"preferences"`
}

// CreateOrUpdateClient upserts a client keyed by email: an existing record
// is updated in place, otherwise a new one is created. Uniqueness is
// find-then-write, not a server-side constraint.
func (cs *ClientService) CreateOrUpdateClient(ctx context.Context, input ClientInput) (*models.Client, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, err
	}

	existing, err := cs.clientRepo.GetClientByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up client: %v", err)
	}

	if existing != nil {
		fields := map[string]interface{}{
			"name":  input.Name,
			"phone": input.Phone,
		}
		if input.PreferredContact != "" {
			fields["preferred_contact"] = input.PreferredContact
		}
		if input.Allergies != "" {
			fields["allergies"] = input.Allergies
		}
		if input.MedicalConditions != "" {
			fields["medical_conditions"] = input.MedicalConditions
		}
		if input.PreviousTattoos != "" {
			fields["previous_tattoos"] = input.PreviousTattoos
		}
		if input.Preferences != "" {
			fields["preferences"] = input.Preferences
		}
		updated, err := cs.clientRepo.UpdateClient(ctx, existing.ID, fields)
		if err != nil {
			return nil, fmt.Errorf("failed to update client: %v", err)
		}
		return updated, nil
	}

	client := &models.Client{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		PreferredContact:  input.PreferredContact,
		Allergies:         input.Allergies,
		MedicalConditions: input.MedicalConditions,
		PreviousTattoos:   input.PreviousTattoos,
		Preferences:       input.Preferences,
	}
	created, err := cs.clientRepo.CreateClient(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %v", err)
	}
	return created, nil
}

// AddBookingToHistory appends the booking ID to the client's history.
// Adding an ID that is already present is a no-op.
func (cs *ClientService) AddBookingToHistory(ctx context.Context, clientID uuid.UUID, bookingID uuid.UUID) (*models.Client, error) {
	client, err := cs.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %v", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	id := bookingID.String()
	for _, existing := range client.BookingHistory {
		if existing == id {
			return client, nil
		}
	}

	history := append(append([]string{}, client.BookingHistory...), id)
	updated, err := cs.clientRepo.UpdateClient(ctx, clientID, map[string]interface{}{
		"booking_history": history,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking history: %v", err)
	}
	return updated, nil
}

func (cs *ClientService) UpdatePreferences(ctx context.Context, clientID uuid.UUID, preferences string) (*models.Client, error) {
	updated, err := cs.clientRepo.UpdateClient(ctx, clientID, map[string]interface{}{
		"preferences": preferences,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update preferences: %v", err)
	}
	return updated, nil
}

func (cs *ClientService) GetAllClients(ctx context.Context) ([]*models.Client, error) {
	clients, err := cs.clientRepo.GetAllClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %v", err)
	}
	return clients, nil
}

func (cs *ClientService) GetClientByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := cs.clientRepo.GetClientByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %v", err)
	}
	return client, nil
}

func (cs *ClientService) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	client, err := cs.clientRepo.GetClientByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %v", err)
	}
	return client, nil
}

// GetClientBookings returns the bookings submitted under the client's email,
// newest first.
func (cs *ClientService) GetClientBookings(ctx context.Context, clientID uuid.UUID) ([]*models.Booking, error) {
	client, err := cs.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %v", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}
	bookings, err := cs.bookingRepo.GetBookingsByField(ctx, "client_email", client.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get client bookings: %v", err)
	}
	return bookings, nil
}

func (cs *ClientService) SearchClients(ctx context.Context, term string) ([]*models.Client, error) {
	if strings.TrimSpace(term) == "" {
		return []*models.Client{}, nil
	}
	clients, err := cs.clientRepo.SearchClients(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %v", err)
	}
	return clients, nil
}
