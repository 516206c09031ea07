package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

func sortDesignsNewestFirst(designs []*Design) {
	sort.SliceStable(designs, func(i, j int) bool {
		return designs[i].CreatedAt.After(designs[j].CreatedAt)
	})
}

func unmarshalDesigns(raw []byte) ([]*Design, error) {
	var rows []Design
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal designs: %v", err)
	}
	designs := make([]*Design, 0, len(rows))
	for i := range rows {
		designs = append(designs, &rows[i])
	}
	return designs, nil
}

func (su *SupabaseRepo) CreateDesign(ctx context.Context, design *Design) (*Design, error) {
	if design.ID == uuid.Nil {
		design.ID = uuid.New()
	}
	now := time.Now().UTC()
	design.CreatedAt = now
	design.UpdatedAt = now

	designData := map[string]interface{}{
		"id":                 design.ID,
		"name":               design.Name,
		"description":        design.Description,
		"category":           design.Category,
		"available":          design.Available,
		"sizes":              design.Sizes,
		"image":              design.Image,
		"submitted_by_email": design.SubmittedByEmail,
		"created_at":         design.CreatedAt,
		"updated_at":         design.UpdatedAt,
	}

	raw, count, err := su.supabaseClient.
		From(DesignsTable).
		Insert(designData, false, "", "", "exact").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create design: %v", err)
	}

	created, err := unmarshalDesigns(raw)
	if err != nil {
		return nil, err
	}
	if count == 0 || len(created) == 0 {
		return nil, fmt.Errorf("no design data returned after create")
	}

	return created[0], nil
}

func (su *SupabaseRepo) GetAllDesigns(ctx context.Context) ([]*Design, error) {
	raw, _, err := su.supabaseClient.
		From(DesignsTable).
		Select("*", "exact", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get designs: %v", err)
	}

	designs, err := unmarshalDesigns(raw)
	if err != nil {
		return nil, err
	}
	sortDesignsNewestFirst(designs)
	return designs, nil
}

func (su *SupabaseRepo) GetDesignByID(ctx context.Context, id uuid.UUID) (*Design, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.
		From(DesignsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get design by ID: %v", err)
	}

	designs, err := unmarshalDesigns(raw)
	if err != nil {
		return nil, err
	}
	if len(designs) == 0 {
		return nil, nil
	}

	return designs[0], nil
}

func (su *SupabaseRepo) GetDesignsByField(ctx context.Context, field, value string) ([]*Design, error) {
	raw, _, err := su.supabaseClient.
		From(DesignsTable).
		Select("*", "exact", false).
		Eq(field, value).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get designs by %s: %v", field, err)
	}

	designs, err := unmarshalDesigns(raw)
	if err != nil {
		return nil, err
	}
	sortDesignsNewestFirst(designs)
	return designs, nil
}

func (su *SupabaseRepo) SearchDesigns(ctx context.Context, term string) ([]*Design, error) {
	raw, _, err := su.supabaseClient.
		From(DesignsTable).
		Select("*", "exact", false).
		Ilike("name", "%"+term+"%").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to search designs: %v", err)
	}

	designs, err := unmarshalDesigns(raw)
	if err != nil {
		return nil, err
	}
	sortDesignsNewestFirst(designs)
	return designs, nil
}

func (su *SupabaseRepo) CountDesigns(ctx context.Context) (int64, error) {
	_, count, err := su.supabaseClient.
		From(DesignsTable).
		Select("id", "exact", false).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count designs: %v", err)
	}
	return count, nil
}

func (su *SupabaseRepo) UpdateDesign(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Design, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	fields["updated_at"] = time.Now().UTC()

	raw, count, err := su.supabaseClient.
		From(DesignsTable).
		Update(fields, "", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update design: %v", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no design found to update")
	}

	designs, err := unmarshalDesigns(raw)
	if err != nil {
		return nil, err
	}
	if len(designs) == 0 {
		return nil, fmt.Errorf("no design data returned after update")
	}

	return designs[0], nil
}

func (su *SupabaseRepo) DeleteDesign(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("invalid UUID")
	}

	_, count, err := su.supabaseClient.
		From(DesignsTable).
		Delete("", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete design: %v", err)
	}
	if count == 0 {
		return fmt.Errorf("no design found to delete")
	}

	return nil
}
