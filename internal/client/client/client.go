// Package client wraps the gRPC connection to the homeledger backend behind
// the Client interface the rest of the app (and its tests) depend on.
package client

import (
	"context"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
)

// Client is the Remote Store surface consumed by the sync core. Errors are
// mapped to the sentinel values in errors.go so callers can distinguish
// "server unreachable" from a rejected request.
type Client interface {
	Close() error

	Register(ctx context.Context, username string, password string) error
	Login(ctx context.Context, username string, password string) error
	Ping(ctx context.Context) error

	ListExpenses(ctx context.Context) ([]*models.Expense, error)
	InsertExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error

	ListReminders(ctx context.Context) ([]*models.Reminder, error)
	InsertReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder *models.Reminder) error
	DeleteReminder(ctx context.Context, id string) error

	PresignReceiptPut(ctx context.Context) (key string, url string, err error)
	PresignReceiptGet(ctx context.Context, key string) (string, error)

	// Subscribe opens the realtime change feed for the given tables. The
	// returned channel is closed when the stream ends; callers resubscribe
	// on the next connectivity edge.
	Subscribe(ctx context.Context, tables []string) (<-chan *rpc.ChangeEvent, error)
}
