package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Audit entry kinds, mirroring the lifecycle events appended to a booking's
// notes string.
const (
	AuditKindStatus       = "status"
	AuditKindCancellation = "cancellation"
	AuditKindModification = "modification"
	AuditKindImageRemoved = "image-removed"
)

// AuditEntry is the structured mirror of a notes-log line: one timestamped,
// queryable record per booking lifecycle event.
type AuditEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID string             `bson:"booking_id" json:"booking_id" validate:"required"`
	Actor     string             `bson:"actor" json:"actor"`
	Kind      string             `bson:"kind" json:"kind"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type AuditRepo interface {
	RecordAuditEntry(ctx context.Context, entry *AuditEntry) (*AuditEntry, error)
	GetAuditTrail(ctx context.Context, bookingID string) ([]*AuditEntry, error)
}

func (mdb *MongodbRepo) RecordAuditEntry(ctx context.Context, entry *AuditEntry) (*AuditEntry, error) {
	col, err := mdb.GetCollection(ctx, AuditDbName, AuditColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if _, err := col.InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("error recording audit entry: %v", err)
	}

	return entry, nil
}

func (mdb *MongodbRepo) GetAuditTrail(ctx context.Context, bookingID string) ([]*AuditEntry, error) {
	col, err := mdb.GetCollection(ctx, AuditDbName, AuditColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"booking_id": bookingID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding audit entries: %v", err)
	}
	defer cursor.Close(ctx)

	var entries []*AuditEntry
	for cursor.Next(ctx) {
		var entry AuditEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("error decoding audit entry: %v", err)
		}
		entries = append(entries, &entry)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return entries, nil
}
