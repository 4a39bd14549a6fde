// Package mirror replicates inventory snapshots to a remote per-user
// document store. Replication is best effort: every fault is logged and
// reported as a boolean, never returned as an error, so a mirror outage
// cannot abort an operation that already committed locally. The two stores
// may diverge until the next successful push; that window is part of the
// contract, not something to retry away.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gregapec/tovor/internal/model"
)

// Mirror pushes inventory snapshots to the remote store.
type Mirror interface {
	// Push merges the given items into the user's namespace. Only the
	// fields carried here are overwritten; other remote fields stay.
	Push(ctx context.Context, userID string, items []model.InventoryItem) bool
	// Clear deletes the user's entire namespace.
	Clear(ctx context.Context, userID string) bool
}

const keyPrefix = "inventory:"

// RedisMirror stores each item as a hash at inventory:<user_id>:<item_id>.
// HSET gives the merge semantics the contract asks for.
type RedisMirror struct {
	client *redis.Client
}

// NewRedisMirror wraps an existing Redis client.
func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{client: client}
}

func itemKey(userID, itemID string) string {
	return keyPrefix + userID + ":" + itemID
}

// Push merges each item into the remote store. Returns false on the first
// fault after logging it; earlier items may already have been written.
func (m *RedisMirror) Push(ctx context.Context, userID string, items []model.InventoryItem) bool {
	for _, item := range items {
		fields := map[string]any{
			"name":         item.Name,
			"quantity":     item.Quantity,
			"location":     item.Location,
			"last_updated": item.LastUpdated.Format(time.RFC3339Nano),
		}
		if err := m.client.HSet(ctx, itemKey(userID, item.ItemID), fields).Err(); err != nil {
			slog.Error("mirror push failed", "user", userID, "item", item.ItemID, "error", err)
			return false
		}
	}
	return true
}

// Clear deletes every key in the user's namespace.
func (m *RedisMirror) Clear(ctx context.Context, userID string) bool {
	pattern := fmt.Sprintf("%s%s:*", keyPrefix, userID)
	iter := m.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Error("mirror clear scan failed", "user", userID, "error", err)
		return false
	}

	if len(keys) == 0 {
		return true
	}
	if err := m.client.Del(ctx, keys...).Err(); err != nil {
		slog.Error("mirror clear failed", "user", userID, "error", err)
		return false
	}
	return true
}
