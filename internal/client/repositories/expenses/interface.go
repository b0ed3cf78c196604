package expenses

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
)

// Repository caches confirmed expenses locally so the client can show data
// on startup before (or without) reaching the server.
type Repository interface {
	// GetAll returns cached expenses most-recent-first.
	GetAll(ctx context.Context) ([]*models.Expense, error)

	// ReplaceAll atomically swaps the cache for the given confirmed rows.
	ReplaceAll(ctx context.Context, items []*models.Expense) error
}
