// Package reminders caches confirmed reminder rows in the client's local
// SQLite database.
package reminders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Reminder, error) {
	query := `SELECT id, description, amount, owner, due_day, active, created_at
		FROM cached_reminders ORDER BY due_day, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached reminders: %w", err)
	}
	defer rows.Close()

	var result []*models.Reminder
	for rows.Next() {
		m := &models.Reminder{}
		if err := rows.Scan(&m.ID, &m.Description, &m.Amount, &m.Owner, &m.DueDay, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []*models.Reminder) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cached_reminders`); err != nil {
			return fmt.Errorf("failed to clear reminder cache: %w", err)
		}
		query := `INSERT INTO cached_reminders (id, description, amount, owner, due_day, active, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
		for _, m := range items {
			if _, err := tx.ExecContext(ctx, query, m.ID, m.Description, m.Amount, m.Owner,
				m.DueDay, m.Active, m.CreatedAt); err != nil {
				return fmt.Errorf("failed to cache reminder: %w", err)
			}
		}
		return nil
	})
}
