// Package reminders provides the PostgreSQL-backed repository for
// recurring-payment reminders.
package reminders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/dbx"
	"github.com/dmitrijs2005/homeledger/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reminderColumns = `id, description, amount, owner, due_day, active, created_at`

func scanReminder(row interface{ Scan(dest ...any) error }) (*models.Reminder, error) {
	m := &models.Reminder{}
	err := row.Scan(&m.ID, &m.Description, &m.Amount, &m.Owner, &m.DueDay, &m.Active, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders ORDER BY due_day, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select reminders: %w", err)
	}
	defer rows.Close()

	var result []*models.Reminder
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id=$1`
	m, err := scanReminder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select reminder: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, m *models.Reminder) error {
	query := `INSERT INTO reminders (id, description, amount, owner, due_day, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Description, m.Amount, m.Owner, m.DueDay, m.Active, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, m *models.Reminder) error {
	query := `UPDATE reminders SET description=$2, amount=$3, owner=$4, due_day=$5, active=$6 WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, m.ID, m.Description, m.Amount, m.Owner, m.DueDay, m.Active)
	if err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reminders WHERE id=$1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
