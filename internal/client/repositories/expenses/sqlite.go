// Package expenses caches confirmed expense rows in the client's local
// SQLite database.
package expenses

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

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Expense, error) {
	query := `SELECT id, description, amount, category, spent_by, spent_at, refund, receipt_key, created_at
		FROM cached_expenses ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select cached expenses: %w", err)
	}
	defer rows.Close()

	var result []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.SpentBy,
			&e.SpentAt, &e.Refund, &e.ReceiptKey, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []*models.Expense) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cached_expenses`); err != nil {
			return fmt.Errorf("failed to clear expense cache: %w", err)
		}
		query := `INSERT INTO cached_expenses (id, description, amount, category, spent_by, spent_at, refund, receipt_key, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for _, e := range items {
			if _, err := tx.ExecContext(ctx, query, e.ID, e.Description, e.Amount, e.Category,
				e.SpentBy, e.SpentAt, e.Refund, e.ReceiptKey, e.CreatedAt); err != nil {
				return fmt.Errorf("failed to cache expense: %w", err)
			}
		}
		return nil
	})
}
