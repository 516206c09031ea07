package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

func (su *SupabaseRepo) CreateClient(ctx context.Context, client *Client) (*Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	if client.PreferredContact == "" {
		client.PreferredContact = "email"
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	clientData := map[string]interface{}{
		"id":                 client.ID,
		"name":               client.Name,
		"email":              client.Email,
		"phone":              client.Phone,
		"preferred_contact":  client.PreferredContact,
		"allergies":          client.Allergies,
		"medical_conditions": client.MedicalConditions,
		"previous_tattoos":   client.PreviousTattoos,
		"booking_history":    client.BookingHistory,
		"preferences":        client.Preferences,
		"created_at":         client.CreatedAt,
		"updated_at":         client.UpdatedAt,
	}

	raw, count, err := su.supabaseClient.
		From(ClientsTable).
		Insert(clientData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %v", err)
	}

	var created []Client
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created client: %v", err)
	}
	if count == 0 || len(created) == 0 {
		return nil, fmt.Errorf("no client data returned after create")
	}

	return &created[0], nil
}

func (su *SupabaseRepo) GetAllClients(ctx context.Context) ([]*Client, error) {
	raw, _, err := su.supabaseClient.
		From(ClientsTable).
		Select("*", "exact", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %v", err)
	}

	var rows []Client
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal clients: %v", err)
	}

	clients := make([]*Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, &rows[i])
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return clients, nil
}

func (su *SupabaseRepo) GetClientByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.
		From(ClientsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get client by ID: %v", err)
	}

	var rows []Client
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client rows: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) GetClientByEmail(ctx context.Context, email string) (*Client, error) {
	raw, _, err := su.supabaseClient.
		From(ClientsTable).
		Select("*", "", false).
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get client by email: %v", err)
	}

	var rows []Client
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client rows: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

func (su *SupabaseRepo) SearchClients(ctx context.Context, term string) ([]*Client, error) {
	raw, _, err := su.supabaseClient.
		From(ClientsTable).
		Select("*", "exact", false).
		Ilike("name", "%"+term+"%").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %v", err)
	}

	var rows []Client
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal clients: %v", err)
	}

	clients := make([]*Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, &rows[i])
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return clients, nil
}

func (su *SupabaseRepo) CountClients(ctx context.Context) (int64, error) {
	_, count, err := su.supabaseClient.
		From(ClientsTable).
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %v", err)
	}
	return count, nil
}

func (su *SupabaseRepo) UpdateClient(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Client, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	fields["updated_at"] = time.Now().UTC()

	raw, count, err := su.supabaseClient.
		From(ClientsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no client found to update")
	}

	var rows []Client
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated client: %v", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no client data returned after update")
	}

	return &rows[0], nil
}
