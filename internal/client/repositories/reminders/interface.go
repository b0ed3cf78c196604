package reminders

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
)

// Repository caches confirmed reminders locally so the client can show data
// on startup before (or without) reaching the server.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.Reminder, error)
	ReplaceAll(ctx context.Context, items []*models.Reminder) error
}
