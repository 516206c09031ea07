package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const handoffTTL = 30 * time.Minute

// HandoffService holds one selected calendar date per session so the
// booking form can pick it up. The slot is consumed on read.
type HandoffService struct {
	rdb *redis.Client
}

func NewHandoffService(rdb *redis.Client) *HandoffService {
	return &HandoffService{rdb: rdb}
}

func (hs *HandoffService) key(sessionID string) string {
	return "handoff:selected-date:" + sessionID
}

// Put stores the selected date for the session, replacing any previous
// value. The slot expires if never consumed.
func (hs *HandoffService) Put(ctx context.Context, sessionID, date string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date: %v", err)
	}
	if err := hs.rdb.Set(ctx, hs.key(sessionID), date, handoffTTL).Err(); err != nil {
		return fmt.Errorf("failed to store selected date: %v", err)
	}
	return nil
}

// Consume returns the stored date and clears the slot atomically. An empty
// string means nothing was stored.
func (hs *HandoffService) Consume(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("session ID is required")
	}
	date, err := hs.rdb.GetDel(ctx, hs.key(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to consume selected date: %v", err)
	}
	return date, nil
}
