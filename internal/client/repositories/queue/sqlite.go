// Package queue persists the offline mutation queue in the client's local
// SQLite database.
package queue

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/homeledger/internal/client/models"
	"github.com/dmitrijs2005/homeledger/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx). AUTOINCREMENT guarantees sequence numbers are never reused, so
// ordering survives interleaved enqueue/remove cycles.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, m *models.QueuedMutation) error {
	query := `INSERT INTO mutation_queue (kind, tbl, target_id, payload, enqueued_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, string(m.Kind), m.Table, m.TargetID, []byte(m.Payload), m.EnqueuedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read sequence number: %w", err)
	}
	m.Seq = seq
	return nil
}

func (r *SQLiteRepository) DrainInOrder(ctx context.Context, table string) ([]*models.QueuedMutation, error) {
	query := `SELECT seq, kind, tbl, target_id, payload, enqueued_at FROM mutation_queue
		WHERE tbl=? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to select mutations: %w", err)
	}
	defer rows.Close()

	var result []*models.QueuedMutation
	for rows.Next() {
		m := &models.QueuedMutation{}
		var kind string
		var payload []byte
		if err := rows.Scan(&m.Seq, &kind, &m.Table, &m.TargetID, &payload, &m.EnqueuedAt); err != nil {
			return nil, err
		}
		m.Kind = models.MutationKind(kind)
		m.Payload = payload
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, seq int64) error {
	query := `DELETE FROM mutation_queue WHERE seq=?`
	res, err := r.db.ExecContext(ctx, query, seq)
	if err != nil {
		return fmt.Errorf("failed to remove mutation: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count: %d", ra)
	}
	return nil
}

func (r *SQLiteRepository) RemoveForTarget(ctx context.Context, table string, targetID string) (int64, error) {
	query := `DELETE FROM mutation_queue WHERE tbl=? AND target_id=?`
	res, err := r.db.ExecContext(ctx, query, table, targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to compact queue: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return ra, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT count(*) FROM mutation_queue`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count mutations: %w", err)
	}
	return n, nil
}
