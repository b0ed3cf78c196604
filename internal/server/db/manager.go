// Package db wires the PostgreSQL connection, goose migrations and the
// per-table repositories into one manager handed to the services.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/homeledger/internal/server/migrations"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/expenses"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/homeledger/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RepositoryManager exposes the storage-layer entry points.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Expenses() expenses.Repository
	Reminders() reminders.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}

type PostgresRepositoryManager struct {
	db            *sql.DB
	users         users.Repository
	refreshTokens refreshtokens.Repository
	expenses      expenses.Repository
	reminders     reminders.Repository
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	return &PostgresRepositoryManager{
		db:            db,
		users:         users.NewPostgresRepository(db),
		refreshTokens: refreshtokens.NewPostgresRepository(db),
		expenses:      expenses.NewPostgresRepository(db),
		reminders:     reminders.NewPostgresRepository(db),
	}, nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *PostgresRepositoryManager) Expenses() expenses.Repository {
	return m.expenses
}

func (m *PostgresRepositoryManager) Reminders() reminders.Repository {
	return m.reminders
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
