package reminders

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Reminder, error)
	GetByID(ctx context.Context, id string) (*models.Reminder, error)
	Insert(ctx context.Context, reminder *models.Reminder) error
	Update(ctx context.Context, reminder *models.Reminder) error
	Delete(ctx context.Context, id string) error
}
