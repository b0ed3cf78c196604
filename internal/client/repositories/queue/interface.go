package queue

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
)

// Repository is the durable store of pending mutations. Implementations
// must survive process restarts: rows read back after a reopen are
// identical and in the same order.
type Repository interface {
	// Enqueue appends m with a fresh sequence number and fills m.Seq.
	Enqueue(ctx context.Context, m *models.QueuedMutation) error

	// DrainInOrder returns all queued mutations for one table in ascending
	// sequence order. The returned slice is a snapshot; callers remove rows
	// one by one as their remote calls succeed.
	DrainInOrder(ctx context.Context, table string) ([]*models.QueuedMutation, error)

	// Remove deletes one mutation after a successful replay.
	Remove(ctx context.Context, seq int64) error

	// RemoveForTarget deletes every mutation aimed at one entity and
	// returns how many rows were removed. Used to compact the queue when a
	// provisional entity is deleted before it ever reached the server.
	RemoveForTarget(ctx context.Context, table string, targetID string) (int64, error)

	// Count returns the number of queued mutations across all tables.
	Count(ctx context.Context) (int, error)
}
