package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

const listTTL = 5 * time.Minute

// NoteListCache caches each owner's rendered note views in Redis.
// Key format: notes:owner:<owner_id>
//
// Entries are written on list misses and dropped on any mutation, so a read
// after a write always reflects the store. The TTL only bounds staleness for
// owners mutated outside this process.
type NoteListCache struct {
	client *redis.Client
}

// NewNoteListCache creates a NoteListCache wrapping the given Redis client.
func NewNoteListCache(client *redis.Client) *NoteListCache {
	return &NoteListCache{client: client}
}

// Get returns the cached views for an owner. The second return reports a
// hit; a miss with a nil error is the normal cold path.
func (c *NoteListCache) Get(ctx context.Context, ownerID string) ([]domain.NoteView, bool, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("note cache get: %w", err)
	}

	var views []domain.NoteView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false, fmt.Errorf("note cache decode: %w", err)
	}
	return views, true, nil
}

// Set stores the owner's views (expires after listTTL).
func (c *NoteListCache) Set(ctx context.Context, ownerID string, views []domain.NoteView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("note cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(ownerID), raw, listTTL).Err()
}

// Invalidate drops the owner's cached views.
func (c *NoteListCache) Invalidate(ctx context.Context, ownerID string) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *NoteListCache) key(ownerID string) string {
	return "notes:owner:" + ownerID
}
