package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/homeledger/internal/client/migrations"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/expenses"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/queue"
	"github.com/dmitrijs2005/homeledger/internal/client/repositories/reminders"
	"github.com/pressly/goose/v3"
)

// Repositories bundles everything backed by the client's local SQLite file:
// the durable mutation queue and the per-table caches of confirmed rows.
type Repositories struct {
	DB        *sql.DB
	Queue     queue.Repository
	Expenses  expenses.Repository
	Reminders reminders.Repository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

// InitDatabase opens (or creates) the local database at dsn and brings the
// schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run local migrations: %w", err)
	}

	return &Repositories{
		DB:        db,
		Queue:     queue.NewSQLiteRepository(db),
		Expenses:  expenses.NewSQLiteRepository(db),
		Reminders: reminders.NewSQLiteRepository(db),
	}, nil
}
