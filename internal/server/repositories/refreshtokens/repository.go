package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	// Consume deletes the token and returns it. A token can be consumed
	// exactly once; a second use returns common.ErrorNotFound.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteForUser(ctx context.Context, userID string) error
}
