package expenses

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/server/models"
)

type Repository interface {
	// List returns all expenses ordered most-recent-first.
	List(ctx context.Context) ([]*models.Expense, error)
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	Insert(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id string) error
}
