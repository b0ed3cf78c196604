package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/dmitrijs2005/homeledger/internal/common"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/dmitrijs2005/homeledger/internal/server/models"
	"github.com/dmitrijs2005/homeledger/internal/server/realtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memExpenses struct {
	rows map[string]*models.Expense
}

func newMemExpenses() *memExpenses {
	return &memExpenses{rows: map[string]*models.Expense{}}
}

func (r *memExpenses) List(ctx context.Context) ([]*models.Expense, error) {
	var result []*models.Expense
	for _, e := range r.rows {
		result = append(result, e)
	}
	return result, nil
}

func (r *memExpenses) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	e, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (r *memExpenses) Insert(ctx context.Context, e *models.Expense) error {
	r.rows[e.ID] = e
	return nil
}

func (r *memExpenses) Update(ctx context.Context, e *models.Expense) error {
	if _, ok := r.rows[e.ID]; !ok {
		return common.ErrorNotFound
	}
	r.rows[e.ID] = e
	return nil
}

func (r *memExpenses) Delete(ctx context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

type memReminders struct {
	rows map[string]*models.Reminder
}

func newMemReminders() *memReminders {
	return &memReminders{rows: map[string]*models.Reminder{}}
}

func (r *memReminders) List(ctx context.Context) ([]*models.Reminder, error) {
	var result []*models.Reminder
	for _, m := range r.rows {
		result = append(result, m)
	}
	return result, nil
}

func (r *memReminders) GetByID(ctx context.Context, id string) (*models.Reminder, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (r *memReminders) Insert(ctx context.Context, m *models.Reminder) error {
	r.rows[m.ID] = m
	return nil
}

func (r *memReminders) Update(ctx context.Context, m *models.Reminder) error {
	if _, ok := r.rows[m.ID]; !ok {
		return common.ErrorNotFound
	}
	r.rows[m.ID] = m
	return nil
}

func (r *memReminders) Delete(ctx context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

func TestInsertExpense_AssignsIDAndPublishes(t *testing.T) {
	hub := realtime.NewHub()
	svc := NewLedgerService(newMemExpenses(), newMemReminders(), hub)

	events, cancel := hub.Subscribe(nil)
	defer cancel()

	e := &models.Expense{Description: "groceries", Amount: decimal.NewFromInt(42),
		Category: "food", SpentBy: "alice"}
	confirmed, err := svc.InsertExpense(context.Background(), e)
	require.NoError(t, err)
	assert.NotEmpty(t, confirmed.ID)
	assert.False(t, confirmed.CreatedAt.IsZero())

	ev := <-events
	assert.Equal(t, rpc.ChangeInsert, ev.Type)
	assert.Equal(t, common.TableExpenses, ev.Table)
	assert.Nil(t, ev.Old)

	var rec rpc.ExpenseRecord
	require.NoError(t, json.Unmarshal(ev.New, &rec))
	assert.Equal(t, confirmed.ID, rec.ID)
}

func TestUpdateExpense_PreservesCreatedAtAndPublishesOld(t *testing.T) {
	hub := realtime.NewHub()
	repo := newMemExpenses()
	svc := NewLedgerService(repo, newMemReminders(), hub)
	ctx := context.Background()

	confirmed, err := svc.InsertExpense(ctx, &models.Expense{Description: "groceries",
		Amount: decimal.NewFromInt(42), Category: "food", SpentBy: "alice"})
	require.NoError(t, err)

	events, cancel := hub.Subscribe(nil)
	defer cancel()

	patch := &models.Expense{Description: "groceries", Amount: decimal.NewFromInt(50),
		Category: "food", SpentBy: "alice"}
	require.NoError(t, svc.UpdateExpense(ctx, confirmed.ID, patch))

	stored, err := repo.GetByID(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, confirmed.CreatedAt, stored.CreatedAt)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(50)))

	ev := <-events
	assert.Equal(t, rpc.ChangeUpdate, ev.Type)
	assert.NotNil(t, ev.Old)
	assert.NotNil(t, ev.New)
}

func TestDeleteExpense_PublishesOldRow(t *testing.T) {
	hub := realtime.NewHub()
	svc := NewLedgerService(newMemExpenses(), newMemReminders(), hub)
	ctx := context.Background()

	confirmed, err := svc.InsertExpense(ctx, &models.Expense{Description: "groceries",
		Amount: decimal.NewFromInt(42), Category: "food", SpentBy: "alice"})
	require.NoError(t, err)

	events, cancel := hub.Subscribe(nil)
	defer cancel()

	require.NoError(t, svc.DeleteExpense(ctx, confirmed.ID))

	ev := <-events
	assert.Equal(t, rpc.ChangeDelete, ev.Type)
	assert.Nil(t, ev.New)

	var rec rpc.ExpenseRecord
	require.NoError(t, json.Unmarshal(ev.Old, &rec))
	assert.Equal(t, confirmed.ID, rec.ID)

	assert.ErrorIs(t, svc.DeleteExpense(ctx, confirmed.ID), common.ErrorNotFound)
}

func TestReminderRoundTrip(t *testing.T) {
	hub := realtime.NewHub()
	svc := NewLedgerService(newMemExpenses(), newMemReminders(), hub)
	ctx := context.Background()

	confirmed, err := svc.InsertReminder(ctx, &models.Reminder{Description: "electricity",
		Amount: decimal.NewFromInt(80), Owner: "alice", DueDay: 15, Active: true})
	require.NoError(t, err)
	assert.NotEmpty(t, confirmed.ID)

	require.NoError(t, svc.UpdateReminder(ctx, confirmed.ID, &models.Reminder{
		Description: "electricity", Amount: decimal.NewFromInt(90), Owner: "alice",
		DueDay: 15, Active: true}))

	items, err := svc.ListReminders(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Amount.Equal(decimal.NewFromInt(90)))

	require.NoError(t, svc.DeleteReminder(ctx, confirmed.ID))
	items, err = svc.ListReminders(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
